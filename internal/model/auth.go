package model

// User 登录用户
type User struct {
	ID        int64  `json:"id" yaml:"id"`
	Email     string `json:"email" yaml:"email"`
	IsActive  bool   `json:"is_active" yaml:"is_active"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// AuthResponse 登录、注册返回
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Credentials 登录、注册请求
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
