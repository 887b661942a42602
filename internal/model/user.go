package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID            int        `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"` // 密码哈希不应在JSON中暴露
	AvatarURL     string     `json:"avatar_url"`
	Bio           string     `json:"bio"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	IsOAuthUser   bool       `json:"is_oauth_user"`
	UsernameSet   bool       `json:"username_set"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// 用户角色
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)
