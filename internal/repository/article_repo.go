package repository

import (
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(article *model.Article) error {
	return r.db.Create(article).Error
}

func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var article model.Article
	err := r.db.Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List 分页列表，新的在前
func (r *ArticleRepository) List(page, pageSize int) ([]*model.Article, int64, error) {
	var total int64
	var articles []*model.Article

	query := r.db.Model(&model.Article{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&articles).Error
	return articles, total, err
}

func (r *ArticleRepository) Update(article *model.Article) error {
	return r.db.Save(article).Error
}

func (r *ArticleRepository) Delete(id int64) error {
	return r.db.Delete(&model.Article{}, id).Error
}
