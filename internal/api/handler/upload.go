package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadMedia 上传内容素材（管理端）
// POST /api/v1/admin/upload
func (h *UploadHandler) UploadMedia(c *gin.Context) {
	category := c.DefaultPostForm("category", "images")
	if category != "images" && category != "videos" {
		response.Validation(c, gin.H{"category": "只支持 images / videos"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "请选择文件")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}
	defer f.Close()

	url, err := h.uploadService.UploadMedia(category, f, file.Filename, file.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.Validation(c, gin.H{"file": err.Error()})
		case errors.Is(err, service.ErrInvalidFileType):
			response.Validation(c, gin.H{"file": err.Error()})
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}

	response.OK(c, gin.H{
		"url": url,
	})
}
