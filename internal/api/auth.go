package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Login 登录并保存会话
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

// Register 注册并保存会话
func (c *Client) Register(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*model.AuthResponse, error) {
	resp, err := call[model.AuthResponse](ctx, c, request{
		method: http.MethodPost,
		path:   path,
		body:   model.Credentials{Email: email, Password: password},
		public: true,
	})
	if err != nil {
		return nil, err
	}

	if err := c.session.SetSession(ctx, resp.AccessToken, resp.User); err != nil {
		return nil, fmt.Errorf("保存会话失败: %w", err)
	}
	c.logger.Info("登录成功", zap.String("email", resp.User.Email))
	return resp, nil
}

// Logout 通知后端登出，无论结果如何都清除本地会话
func (c *Client) Logout(ctx context.Context) error {
	token, err := c.session.Token(ctx)
	if err == nil && token != "" {
		if _, err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/logout", public: true}); err != nil {
			c.logger.Warn("后端登出失败", zap.Error(err))
		}
	}
	return c.session.ClearSession(ctx)
}

// Me 当前用户
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	return call[model.User](ctx, c, request{method: http.MethodGet, path: "/api/auth/me"})
}

// VerifySession 校验已保存的token，后端拒绝时清除会话；网络错误不清除
func (c *Client) VerifySession(ctx context.Context) (bool, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	if _, err := c.Me(ctx); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			if clearErr := c.session.ClearSession(ctx); clearErr != nil {
				return false, clearErr
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ForgotPassword 申请重置密码
func (c *Client) ForgotPassword(ctx context.Context, email string) (*model.MessageResult, error) {
	return call[model.MessageResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/auth/forgot-password",
		body:   map[string]string{"email": email},
		public: true,
	})
}

// ChangePassword 修改密码
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*model.MessageResult, error) {
	return call[model.MessageResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/api/auth/change-password",
		body: map[string]string{
			"current_password": currentPassword,
			"new_password":     newPassword,
		},
	})
}
