package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/clock"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var (
	ErrNoActiveSubscription = errors.New("没有生效中的订阅")
	ErrSubscriptionNotFound = errors.New("订阅记录不存在")
	ErrNotSubscriptionOwner = errors.New("无权操作该订阅")
	ErrPlanInactive         = errors.New("套餐已停售，不再接受新订阅")
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.PlanRepository
	userRepo *repository.UserRepository
	quota    *QuotaService
	clk      clock.Clock
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
	userRepo *repository.UserRepository,
	quota *QuotaService,
	clk clock.Clock,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		planRepo: planRepo,
		userRepo: userRepo,
		quota:    quota,
		clk:      clk,
	}
}

// Subscribe 订阅套餐。已有订阅时原子替换，换套餐当天已产生的
// 阅读记录仍计入新套餐的当日额度。
func (s *SubscriptionService) Subscribe(userID, planID int64) (*model.Subscription, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	// 停售套餐不接受新订阅
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	return s.subRepo.Activate(userID, planID, s.clk.Now())
}

// Cancel 取消订阅。仅本人或管理员可操作；
// 已结束的订阅重复取消是幂等的无操作。
func (s *SubscriptionService) Cancel(subID, actorID int64, actorRole model.Role) error {
	sub, err := s.subRepo.GetByID(subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}

	if sub.UserID != actorID && !actorRole.IsAdmin() {
		return ErrNotSubscriptionOwner
	}

	if !sub.IsActive {
		return nil
	}

	return s.subRepo.Deactivate(subID, s.clk.Now())
}

// Current 当前订阅详情，附带今日文章/视频用量
func (s *SubscriptionService) Current(userID int64) (*dto.CurrentSubscription, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sub, err := s.subRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}

	articles, err := s.quota.CountToday(userID, model.KindArticle)
	if err != nil {
		return nil, err
	}
	videos, err := s.quota.CountToday(userID, model.KindVideo)
	if err != nil {
		return nil, err
	}

	return &dto.CurrentSubscription{
		Subscription:       sub,
		ArticlesReadToday:  articles,
		VideosWatchedToday: videos,
	}, nil
}

// List 订阅历史
func (s *SubscriptionService) List(userID int64) ([]*model.Subscription, error) {
	return s.subRepo.ListByUser(userID)
}
