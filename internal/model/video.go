package model

import (
	"time"
)

type Video struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Slug            string    `gorm:"size:300;index" json:"slug"`
	Description     string    `gorm:"type:text" json:"description"`
	VideoURL        string    `gorm:"size:500;not null" json:"video_url"`
	Thumbnail       string    `gorm:"size:500" json:"thumbnail,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	IsPublished     bool      `gorm:"default:false;index" json:"is_published"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
