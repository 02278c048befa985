package model

import (
	"time"
)

// PlanType 套餐档位
type PlanType string

const (
	PlanFree       PlanType = "FREE"
	PlanPlusReader PlanType = "PLUS_READER"
	PlanProReader  PlanType = "PRO_READER"
)

// Valid 档位是否合法
func (t PlanType) Valid() bool {
	return t == PlanFree || t == PlanPlusReader || t == PlanProReader
}

// 每日限额哨兵值：-1 不限量，0 完全不可访问，正数为精确上限。
// API 负载中必须原样保留 -1，不做 null 转换。
const LimitUnlimited = -1

type Plan struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Slug              string    `gorm:"size:120;uniqueIndex" json:"slug"`
	Description       string    `gorm:"type:text" json:"description"`
	Type              PlanType  `gorm:"size:20;not null" json:"type"`
	Price             float64   `gorm:"type:decimal(10,2)" json:"price"`
	DailyArticleLimit int       `gorm:"not null" json:"daily_article_limit"`
	DailyVideoLimit   int       `gorm:"not null" json:"daily_video_limit"`
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// DailyLimitFor 按内容类型取当日限额
func (p *Plan) DailyLimitFor(kind ContentKind) int {
	if kind == KindVideo {
		return p.DailyVideoLimit
	}
	return p.DailyArticleLimit
}
