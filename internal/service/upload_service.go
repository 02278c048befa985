package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuheng2/reader_go_server/config"
	"github.com/yuheng2/reader_go_server/internal/pkg/oss"
)

var (
	ErrFileTooLarge    = errors.New("文件过大")
	ErrInvalidFileType = errors.New("不支持的文件类型")
)

// UploadService 内容素材上传（封面图、视频文件）
type UploadService struct {
	ossClient *oss.Client
	cfg       *config.Config
}

func NewUploadService(ossClient *oss.Client, cfg *config.Config) *UploadService {
	return &UploadService{
		ossClient: ossClient,
		cfg:       cfg,
	}
}

// UploadMedia 上传素材到 OSS，返回访问 URL。
// category 用作对象键前缀（images / videos）。
func (s *UploadService) UploadMedia(category string, file io.Reader, filename string, size int64) (string, error) {
	if s.cfg.Upload.MaxSize > 0 && size > s.cfg.Upload.MaxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extAllowed(ext) {
		return "", ErrInvalidFileType
	}

	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	// 对象键用 UUID，避免文件名冲突和路径注入
	objectKey := fmt.Sprintf("%s/%s/%s%s", category, time.Now().Format("2006/01"), uuid.NewString(), ext)

	return s.ossClient.UploadMedia(objectKey, data, ext)
}

func (s *UploadService) extAllowed(ext string) bool {
	if len(s.cfg.Upload.AllowedExtensions) == 0 {
		return ext != ""
	}
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
