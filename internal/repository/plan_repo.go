package repository

import (
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(plan *model.Plan) error {
	return r.db.Create(plan).Error
}

func (r *PlanRepository) GetByID(id int64) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive 在售套餐，按创建顺序返回
func (r *PlanRepository) ListActive() ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&plans).Error
	return plans, err
}

// ListAll 全部套餐（管理端）
func (r *PlanRepository) ListAll() ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.Order("id ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Update(plan *model.Plan) error {
	return r.db.Save(plan).Error
}

// Deactivate 停售套餐；已有订阅不受影响（老用户保留权益）
func (r *PlanRepository) Deactivate(id int64) error {
	return r.db.Model(&model.Plan{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *PlanRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Plan{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
