package service

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var ErrArticleNotFound = errors.New("文章不存在")

type ArticleService struct {
	articleRepo *repository.ArticleRepository
}

func NewArticleService(articleRepo *repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// Create 创建文章
func (s *ArticleService) Create(authorID int64, req *dto.CreateArticleRequest) (*model.Article, error) {
	article := &model.Article{
		UserID:        authorID,
		Title:         req.Title,
		Slug:          slug.Make(req.Title),
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	return article, nil
}

// Get 获取文章，发布状态的判定交给访问闸门
func (s *ArticleService) Get(id int64) (*model.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// List 分页列表
func (s *ArticleService) List(page, pageSize int) ([]*model.Article, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.articleRepo.List(page, pageSize)
}

// Update 更新文章，标题变更时重新生成 slug
func (s *ArticleService) Update(id int64, req *dto.UpdateArticleRequest) (*model.Article, error) {
	article, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
		article.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = *req.FeaturedImage
	}
	if req.IsPublished != nil {
		article.IsPublished = *req.IsPublished
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete 删除文章
func (s *ArticleService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.articleRepo.Delete(id)
}
