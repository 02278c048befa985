package dto

// CreateVideoRequest 创建视频请求
type CreateVideoRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url" binding:"required,max=500"`
	Thumbnail       string `json:"thumbnail"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=0"`
	IsPublished     bool   `json:"is_published"`
}

// UpdateVideoRequest 更新视频请求
type UpdateVideoRequest struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description     *string `json:"description,omitempty"`
	VideoURL        *string `json:"video_url,omitempty" binding:"omitempty,max=500"`
	Thumbnail       *string `json:"thumbnail,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty" binding:"omitempty,min=0"`
	IsPublished     *bool   `json:"is_published,omitempty"`
}
