package dto

// CreateArticleRequest 创建文章请求
type CreateArticleRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Content       string `json:"content" binding:"required,min=10"`
	FeaturedImage string `json:"featured_image"`
	IsPublished   bool   `json:"is_published"`
}

// UpdateArticleRequest 更新文章请求
type UpdateArticleRequest struct {
	Title         *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Content       *string `json:"content,omitempty" binding:"omitempty,min=10"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	IsPublished   *bool   `json:"is_published,omitempty"`
}

// ListRequest 列表分页参数
type ListRequest struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10"`
}
