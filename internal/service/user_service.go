package service

import (
	"errors"
	"io"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/oss"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

type UserService struct {
	userRepo  *repository.UserRepository
	ossClient *oss.Client
	cfg       *config.Config
}

func NewUserService(userRepo *repository.UserRepository, ossClient *oss.Client, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:  userRepo,
		ossClient: ossClient,
		cfg:       cfg,
	}
}

// GetProfile 获取用户详情
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UpdateProfile 更新用户信息
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 检查用户名是否已被占用
	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = *req.Username
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UpdateAvatar 更新用户头像 URL
func (s *UserService) UpdateAvatar(userID int64, avatarURL string) error {
	return s.userRepo.UpdateFields(userID, map[string]interface{}{
		"avatar_url": avatarURL,
	})
}

// UploadAvatar 上传用户头像到 OSS
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	avatarURL, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.UpdateAvatar(userID, avatarURL); err != nil {
		return "", err
	}

	return avatarURL, nil
}

func buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:            user.ID,
		Username:      user.Username,
		AvatarURL:     user.AvatarURL,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
	}

	if user.Email != nil {
		info.Email = *user.Email
	}

	return info
}
