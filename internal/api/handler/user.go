package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile 获取当前用户信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, response.CodeUserNotFound, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, profile)
}

// UpdateProfile 更新用户信息
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Validation(c, gin.H{"username": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, response.CodeUserNotFound, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, profile)
}

// UploadAvatar 上传头像
// POST /api/v1/user/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "请选择文件")
		return
	}

	// 验证文件大小 (5MB)
	if file.Size > 5*1024*1024 {
		response.Validation(c, gin.H{"file": "文件大小不能超过5MB"})
		return
	}

	// 验证文件类型
	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		response.Validation(c, gin.H{"file": "只支持 jpg/png/webp 格式"})
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}
	defer f.Close()

	avatarURL, err := h.userService.UploadAvatar(userID, f, file.Filename)
	if err != nil {
		response.ServerError(c, "上传失败")
		return
	}

	response.OK(c, gin.H{
		"avatar_url": avatarURL,
	})
}
