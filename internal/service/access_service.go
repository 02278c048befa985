package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/pkg/pubsub"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var (
	ErrNotPublished         = errors.New("内容未发布")
	ErrSubscriptionRequired = errors.New("需要订阅后才能访问")
)

// DailyLimitError 今日限额已用完。Limit 为套餐限额，Used 为今日已读数，
// 两者都要透传给客户端。
type DailyLimitError struct {
	Limit int
	Used  int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("今日限额已用完（%d/%d）", e.Used, e.Limit)
}

// AccessService 访问闸门：串联订阅、套餐限额和阅读记录，
// 决定一次内容访问放行还是拒绝。角色以数据库为准，不信任 token 快照。
type AccessService struct {
	userRepo  *repository.UserRepository
	subRepo   *repository.SubscriptionRepository
	quota     *QuotaService
	publisher *pubsub.Publisher
}

func NewAccessService(
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	quota *QuotaService,
	publisher *pubsub.Publisher,
) *AccessService {
	return &AccessService{
		userRepo:  userRepo,
		subRepo:   subRepo,
		quota:     quota,
		publisher: publisher,
	}
}

// AuthorizeDetail 详情页访问判定，按顺序检查：
//  1. 管理员全量放行，不计用量
//  2. 未发布内容对会员不可见
//  3. 必须有生效订阅；套餐停售不影响已有订阅
//  4. 限额 -1 不限量，0 完全不可访问
//  5. 正数限额下已读过的内容重读放行，否则比较今日已读数
//
// 放行后写入阅读记录并推送实时事件。
func (s *AccessService) AuthorizeDetail(ctx context.Context, userID int64, kind model.ContentKind, contentID int64, isPublished bool) error {
	user, err := s.loadUser(userID)
	if err != nil {
		return err
	}

	if user.Role.IsAdmin() {
		return nil
	}

	if !isPublished {
		return ErrNotPublished
	}

	sub, err := s.subRepo.GetActiveByUser(user.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionRequired
	}
	if sub.Plan == nil {
		return fmt.Errorf("订阅 %d 缺少套餐数据", sub.ID)
	}

	limit := sub.Plan.DailyLimitFor(kind)

	if limit != model.LimitUnlimited {
		if limit == 0 {
			return &DailyLimitError{Limit: 0, Used: 0}
		}

		// 重读不占额度
		viewed, err := s.quota.HasViewed(user.ID, kind, contentID)
		if err != nil {
			return err
		}

		if !viewed {
			used, err := s.quota.CountToday(user.ID, kind)
			if err != nil {
				return err
			}
			if used >= limit {
				return &DailyLimitError{Limit: limit, Used: used}
			}
		}
	}

	created, err := s.quota.RecordView(user.ID, kind, contentID)
	if err != nil {
		return err
	}

	// 只有新记录才推事件；推送失败不影响放行
	if created && s.publisher != nil {
		event := &pubsub.ViewEvent{
			UserID:      user.ID,
			ContentType: string(kind),
			ContentID:   contentID,
			OccurredAt:  s.quota.clk.Now(),
		}
		if err := s.publisher.PublishView(ctx, event); err != nil {
			log.Printf("Failed to publish view event: %v", err)
		}
	}

	return nil
}

// AuthorizeList 列表页访问判定：只要求订阅资格，不消耗限额
func (s *AccessService) AuthorizeList(userID int64) error {
	user, err := s.loadUser(userID)
	if err != nil {
		return err
	}

	if user.Role.IsAdmin() {
		return nil
	}

	sub, err := s.subRepo.GetActiveByUser(user.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionRequired
	}

	return nil
}

func (s *AccessService) loadUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
