package repository

import (
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List 分页列表，新的在前
func (r *VideoRepository) List(page, pageSize int) ([]*model.Video, int64, error) {
	var total int64
	var videos []*model.Video

	query := r.db.Model(&model.Video{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&videos).Error
	return videos, total, err
}

func (r *VideoRepository) Update(video *model.Video) error {
	return r.db.Save(video).Error
}

func (r *VideoRepository) Delete(id int64) error {
	return r.db.Delete(&model.Video{}, id).Error
}
