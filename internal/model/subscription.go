package model

import (
	"time"
)

// Subscription 订阅记录。每个用户同一时刻最多一条 is_active=true，
// 历史记录只停用不删除。
type Subscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	PlanID    int64      `gorm:"not null;index" json:"plan_id"`
	StartsAt  time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// 关联
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
