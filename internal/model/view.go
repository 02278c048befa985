package model

import (
	"time"
)

// ContentKind 计量的内容类型
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindVideo   ContentKind = "video"
)

// ContentView 去重的阅读记录：同一用户对同一内容只存一行，
// 唯一索引是去重的最终裁决，应用层检查只是快路径。
type ContentView struct {
	ID          int64       `gorm:"primaryKey" json:"id"`
	UserID      int64       `gorm:"not null;uniqueIndex:idx_user_content" json:"user_id"`
	ContentType ContentKind `gorm:"size:20;not null;uniqueIndex:idx_user_content" json:"content_type"`
	ContentID   int64       `gorm:"not null;uniqueIndex:idx_user_content" json:"content_id"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (ContentView) TableName() string {
	return "content_views"
}
