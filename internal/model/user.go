package model

import (
	"time"
)

// Role 用户角色（封闭枚举，避免散落的字符串比较）
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// IsAdmin 管理员判定，所有角色检查统一走这里
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid 角色是否合法
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Username              string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                 *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash          *string    `gorm:"size:255" json:"-"`
	AvatarURL             string     `gorm:"size:500" json:"avatar_url"`
	Role                  Role       `gorm:"size:20;default:MEMBER;index" json:"role"`
	GithubID              *string    `gorm:"column:github_id;size:50;uniqueIndex" json:"-"`
	EmailVerified         bool       `gorm:"default:false" json:"email_verified"`
	VerificationCode      *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
