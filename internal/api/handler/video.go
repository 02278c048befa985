package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type VideoHandler struct {
	videoService  *service.VideoService
	accessService *service.AccessService
}

func NewVideoHandler(videoService *service.VideoService, accessService *service.AccessService) *VideoHandler {
	return &VideoHandler{
		videoService:  videoService,
		accessService: accessService,
	}
}

// List 视频列表，需要订阅资格，不消耗额度
// GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.accessService.AuthorizeList(userID); err != nil {
		writeAccessError(c, err, model.KindVideo)
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	videos, total, err := h.videoService.List(req.Page, req.PageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Page(c, total, req.Page, req.PageSize, videos)
}

// Get 视频详情，过访问闸门并计入当日额度
// GET /api/v1/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "视频 ID 不合法")
		return
	}

	video, err := h.videoService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, response.CodeNotFound, "视频不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	if err := h.accessService.AuthorizeDetail(c.Request.Context(), userID, model.KindVideo, video.ID, video.IsPublished); err != nil {
		writeAccessError(c, err, model.KindVideo)
		return
	}

	response.OK(c, video)
}

// Create 创建视频（管理端）
// POST /api/v1/admin/videos
func (h *VideoHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	video, err := h.videoService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Created(c, video)
}

// Update 更新视频（管理端）
// PUT /api/v1/admin/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "视频 ID 不合法")
		return
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	video, err := h.videoService.Update(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, response.CodeNotFound, "视频不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, video)
}

// Delete 删除视频（管理端）
// DELETE /api/v1/admin/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "视频 ID 不合法")
		return
	}

	if err := h.videoService.Delete(id); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, response.CodeNotFound, "视频不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.NoContent(c)
}
