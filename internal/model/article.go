package model

import (
	"time"
)

type Article struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Slug          string    `gorm:"size:300;index" json:"slug"`
	Content       string    `gorm:"type:longtext" json:"content"`
	FeaturedImage string    `gorm:"size:500" json:"featured_image,omitempty"`
	IsPublished   bool      `gorm:"default:false;index" json:"is_published"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}
