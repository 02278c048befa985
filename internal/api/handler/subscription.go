package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
	}
}

// Subscribe 订阅套餐
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	sub, err := h.subService.Subscribe(userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFound(c, response.CodePlanNotFound, "")
		case errors.Is(err, service.ErrPlanInactive):
			response.BadRequest(c, response.CodePlanInactive, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, sub)
}

// Current 当前订阅（含今日用量）
// GET /api/v1/subscriptions/current
func (h *SubscriptionHandler) Current(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	current, err := h.subService.Current(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, response.CodeUserNotFound, "")
		case errors.Is(err, service.ErrNoActiveSubscription):
			response.NotFound(c, response.CodeNoActiveSubscription, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, current)
}

// List 订阅历史
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subs, err := h.subService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.OK(c, subs)
}

// Cancel 取消订阅
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "订阅 ID 不合法")
		return
	}

	role, _ := middleware.GetRole(c)

	if err := h.subService.Cancel(subID, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			response.NotFound(c, response.CodeNotFound, "")
		case errors.Is(err, service.ErrNotSubscriptionOwner):
			response.Forbidden(c, response.CodeUnauthorized, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.NoContent(c)
}
