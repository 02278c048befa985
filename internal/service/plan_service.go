package service

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var (
	ErrPlanNotFound    = errors.New("套餐不存在")
	ErrInvalidPlanType = errors.New("套餐档位不合法")
)

type PlanService struct {
	planRepo *repository.PlanRepository
}

func NewPlanService(planRepo *repository.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// ListActive 在售套餐（会员端）
func (s *PlanService) ListActive() ([]*model.Plan, error) {
	return s.planRepo.ListActive()
}

// ListAll 全部套餐（管理端，含停售）
func (s *PlanService) ListAll() ([]*model.Plan, error) {
	return s.planRepo.ListAll()
}

// Get 获取套餐详情。停售套餐对会员不可见，与不存在同样返回未找到，
// 不泄露套餐是否存在过。
func (s *PlanService) Get(id int64, isAdmin bool) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if !plan.IsActive && !isAdmin {
		return nil, ErrPlanNotFound
	}

	return plan, nil
}

// Create 创建套餐
func (s *PlanService) Create(req *dto.CreatePlanRequest) (*model.Plan, error) {
	planType := model.PlanType(req.Type)
	if !planType.Valid() {
		return nil, ErrInvalidPlanType
	}

	planSlug, err := s.uniqueSlug(req.Name)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		Name:              req.Name,
		Slug:              planSlug,
		Description:       req.Description,
		Type:              planType,
		Price:             req.Price,
		DailyArticleLimit: *req.DailyArticleLimit,
		DailyVideoLimit:   *req.DailyVideoLimit,
		IsActive:          true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Update 更新套餐，只修改请求中出现的字段
func (s *PlanService) Update(id int64, req *dto.UpdatePlanRequest) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if req.Type != nil {
		planType := model.PlanType(*req.Type)
		if !planType.Valid() {
			return nil, ErrInvalidPlanType
		}
		plan.Type = planType
	}
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DailyArticleLimit != nil {
		plan.DailyArticleLimit = *req.DailyArticleLimit
	}
	if req.DailyVideoLimit != nil {
		plan.DailyVideoLimit = *req.DailyVideoLimit
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// Deactivate 停售套餐。已订阅用户保留权益直到订阅自然结束。
func (s *PlanService) Deactivate(id int64) error {
	if _, err := s.planRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	return s.planRepo.Deactivate(id)
}

// uniqueSlug 由名称生成唯一 slug，冲突时追加序号
func (s *PlanService) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.planRepo.ExistsBySlug(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
