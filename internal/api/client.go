package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/session"
)

// ErrUnauthorized 会话失效（HTTP 401）
var ErrUnauthorized = errors.New("unauthorized")

// Error 后端返回的非2xx响应
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

// Unwrap 401错误可以用 errors.Is(err, ErrUnauthorized) 判断
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client 交易后端REST客户端
type Client struct {
	baseURL        string
	httpClient     *http.Client
	streamClient   *http.Client
	session        session.Provider
	logger         *zap.Logger
	onUnauthorized func()
	streamPath     string
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout 设置普通请求超时，不影响日志流
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithUnauthorizedHandler 会话失效时的全局回调，通常跳转到登录
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithStreamPath 修改日志流路径
func WithStreamPath(path string) Option {
	return func(c *Client) { c.streamPath = path }
}

// NewClient 创建后端客户端
func NewClient(baseURL string, provider session.Provider, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		streamClient: &http.Client{},
		session:      provider,
		logger:       logger,
		streamPath:   "/api/trading/logs",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request 一次后端调用
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	// public 为true时401不视为会话失效（登录、注册等接口）
	public bool
}

// call 执行请求并把JSON响应解码到T
func call[T any](ctx context.Context, c *Client, req request) (*T, error) {
	raw, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("解析响应失败 %s: %w", req.path, err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("请求后端失败 %s: %w", req.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败 %s: %w", req.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Detail: errorDetail(raw, resp.StatusCode)}
		if resp.StatusCode == http.StatusUnauthorized && !req.public {
			c.invalidateSession(ctx)
		}
		c.logger.Debug("后端返回错误",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return nil, apiErr
	}

	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, req request) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("序列化请求失败 %s: %w", req.path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败 %s: %w", req.path, err)
	}
	c.setHeaders(ctx, httpReq)
	return httpReq, nil
}

// setHeaders 附加通用请求头，有token时附加Bearer认证
func (c *Client) setHeaders(ctx context.Context, httpReq *http.Request) {
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.session.Token(ctx)
	if err != nil {
		c.logger.Warn("读取会话token失败", zap.Error(err))
		return
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
}

// invalidateSession 401是全局事件：清除会话并通知跳转登录
func (c *Client) invalidateSession(ctx context.Context) {
	if err := c.session.ClearSession(ctx); err != nil {
		c.logger.Error("清除会话失败", zap.Error(err))
	}
	c.logger.Warn("会话已失效，需要重新登录")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// errorDetail 优先使用响应体的detail字段
func errorDetail(raw []byte, status int) string {
	var body struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if detail, ok := body.Detail.(string); ok && detail != "" {
			return detail
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// modeQuery 构造只含mode的查询参数
func modeQuery(mode string) url.Values {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	return q
}
