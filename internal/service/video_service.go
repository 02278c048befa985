package service

import (
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var ErrVideoNotFound = errors.New("视频不存在")

type VideoService struct {
	videoRepo *repository.VideoRepository
}

func NewVideoService(videoRepo *repository.VideoRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo}
}

// Create 创建视频
func (s *VideoService) Create(authorID int64, req *dto.CreateVideoRequest) (*model.Video, error) {
	video := &model.Video{
		UserID:          authorID,
		Title:           req.Title,
		Slug:            slug.Make(req.Title),
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		Thumbnail:       req.Thumbnail,
		DurationSeconds: req.DurationSeconds,
		IsPublished:     req.IsPublished,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	return video, nil
}

// Get 获取视频，发布状态的判定交给访问闸门
func (s *VideoService) Get(id int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// List 分页列表
func (s *VideoService) List(page, pageSize int) ([]*model.Video, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.videoRepo.List(page, pageSize)
}

// Update 更新视频，标题变更时重新生成 slug
func (s *VideoService) Update(id int64, req *dto.UpdateVideoRequest) (*model.Video, error) {
	video, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
		video.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.VideoURL != nil {
		video.VideoURL = *req.VideoURL
	}
	if req.Thumbnail != nil {
		video.Thumbnail = *req.Thumbnail
	}
	if req.DurationSeconds != nil {
		video.DurationSeconds = *req.DurationSeconds
	}
	if req.IsPublished != nil {
		video.IsPublished = *req.IsPublished
	}

	if err := s.videoRepo.Update(video); err != nil {
		return nil, err
	}

	return video, nil
}

// Delete 删除视频
func (s *VideoService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.videoRepo.Delete(id)
}
