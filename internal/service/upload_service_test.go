package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuheng2/reader_go_server/config"
)

func newUploadService(maxSize int64, exts []string) *UploadService {
	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxSize:           maxSize,
			AllowedExtensions: exts,
		},
	}
	return NewUploadService(nil, cfg)
}

func TestUploadService_FileTooLarge(t *testing.T) {
	service := newUploadService(10, []string{".jpg"})

	_, err := service.UploadMedia("images", strings.NewReader("data"), "big.jpg", 11)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadService_InvalidExtension(t *testing.T) {
	service := newUploadService(1024, []string{".jpg", ".png"})

	_, err := service.UploadMedia("images", strings.NewReader("data"), "script.exe", 4)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestUploadService_ExtensionCaseInsensitive(t *testing.T) {
	service := newUploadService(1024, []string{".jpg"})

	// 扩展名合法但客户端未配置，报客户端错误而非类型错误
	_, err := service.UploadMedia("images", strings.NewReader("data"), "photo.JPG", 4)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidFileType)
	assert.NotErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadService_NoExtension(t *testing.T) {
	service := newUploadService(1024, nil)

	_, err := service.UploadMedia("images", strings.NewReader("data"), "noext", 4)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}
