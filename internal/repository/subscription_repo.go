package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetActiveByUser 返回用户当前生效的订阅（含套餐），没有则返回 nil
func (r *SubscriptionRepository) GetActiveByUser(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Preload("Plan").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByUser 用户的全部订阅历史，新的在前
func (r *SubscriptionRepository) ListByUser(userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&subs).Error
	return subs, err
}

// Activate 原子切换订阅：同一事务内先停掉该用户所有生效订阅，再插入新订阅。
// 先执行的 UPDATE 会锁住旧的生效行，并发订阅时后提交者胜出，
// 任意时刻每个用户最多只有一条 is_active=true。
func (r *SubscriptionRepository) Activate(userID, planID int64, now time.Time) (*model.Subscription, error) {
	sub := &model.Subscription{
		UserID:   userID,
		PlanID:   planID,
		StartsAt: now,
		IsActive: true,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Subscription{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Updates(map[string]interface{}{
				"is_active": false,
				"ends_at":   now,
			}).Error; err != nil {
			return err
		}

		return tx.Create(sub).Error
	})
	if err != nil {
		return nil, err
	}

	// 带上套餐返回
	if err := r.db.Preload("Plan").First(sub, sub.ID).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Deactivate 停用单条订阅
func (r *SubscriptionRepository) Deactivate(id int64, now time.Time) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active": false,
			"ends_at":   now,
		}).Error
}

// CountActiveByUser 用户生效订阅数（用于一致性校验）
func (r *SubscriptionRepository) CountActiveByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
