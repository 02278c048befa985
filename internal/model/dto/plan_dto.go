package dto

// CreatePlanRequest 创建套餐请求。
// 限额字段最小值 -1：-1 不限量，0 禁止访问。
type CreatePlanRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	Description       string  `json:"description"`
	Type              string  `json:"type" binding:"required"`
	Price             float64 `json:"price" binding:"omitempty,min=0"`
	DailyArticleLimit *int    `json:"daily_article_limit" binding:"required,min=-1"`
	DailyVideoLimit   *int    `json:"daily_video_limit" binding:"required,min=-1"`
	IsActive          *bool   `json:"is_active"`
}

// UpdatePlanRequest 更新套餐请求（全部可选）
type UpdatePlanRequest struct {
	Name              *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description       *string  `json:"description,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Price             *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	DailyArticleLimit *int     `json:"daily_article_limit,omitempty" binding:"omitempty,min=-1"`
	DailyVideoLimit   *int     `json:"daily_video_limit,omitempty" binding:"omitempty,min=-1"`
	IsActive          *bool    `json:"is_active,omitempty"`
}
