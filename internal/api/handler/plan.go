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

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// List 套餐列表。管理员看到全部，会员只看到在售的。
// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	role, _ := middleware.GetRole(c)

	if role.IsAdmin() {
		plans, err := h.planService.ListAll()
		if err != nil {
			response.ServerError(c, "")
			return
		}
		response.OK(c, plans)
		return
	}

	plans, err := h.planService.ListActive()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.OK(c, plans)
}

// Get 套餐详情
// GET /api/v1/plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "套餐 ID 不合法")
		return
	}

	role, _ := middleware.GetRole(c)

	plan, err := h.planService.Get(id, role.IsAdmin())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.NotFound(c, response.CodePlanNotFound, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, plan)
}

// Create 创建套餐（管理端）
// POST /api/v1/admin/plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	plan, err := h.planService.Create(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanType) {
			response.Validation(c, gin.H{"type": err.Error()})
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Created(c, plan)
}

// Update 更新套餐（管理端）
// PUT /api/v1/admin/plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "套餐 ID 不合法")
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	plan, err := h.planService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFound(c, response.CodePlanNotFound, "")
		case errors.Is(err, service.ErrInvalidPlanType):
			response.Validation(c, gin.H{"type": err.Error()})
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, plan)
}

// Delete 停售套餐（管理端）。只下架不删数据，已订阅用户不受影响。
// DELETE /api/v1/admin/plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "套餐 ID 不合法")
		return
	}

	if err := h.planService.Deactivate(id); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.NotFound(c, response.CodePlanNotFound, "")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.NoContent(c)
}
