package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/pkg/clock"
	"github.com/yuheng2/reader_go_server/internal/repository"
	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T, clk clock.Clock) (*SubscriptionService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	userRepo := repository.NewUserRepository(db)
	viewRepo := repository.NewViewRepository(db)

	quota, err := NewQuotaService(viewRepo, clk, "UTC")
	require.NoError(t, err)

	service := NewSubscriptionService(subRepo, planRepo, userRepo, quota, clk)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := service.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Equal(t, plan.ID, sub.PlanID)
	require.NotNil(t, sub.Plan)
}

func TestSubscriptionService_Subscribe_PlanNotFound(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Subscribe(user.ID, 99999)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSubscriptionService_Subscribe_InactivePlan(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithInactive())

	_, err := service.Subscribe(user.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPlanInactive)
}

func TestSubscriptionService_Subscribe_ReplacesPrevious(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	planA := testutil.TestPlan(t, db)
	planB := testutil.TestPlan(t, db)

	_, err := service.Subscribe(user.ID, planA.ID)
	require.NoError(t, err)

	sub, err := service.Subscribe(user.ID, planB.ID)
	require.NoError(t, err)
	assert.Equal(t, planB.ID, sub.PlanID)

	var count int64
	db.Model(&model.Subscription{}).Where("user_id = ? AND is_active = ?", user.ID, true).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionService_Subscribe_Concurrent(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// SQLite 写并发有限，失败的请求允许报错，但不能破坏唯一生效约束
			_, _ = service.Subscribe(user.ID, plan.ID)
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&model.Subscription{}).Where("user_id = ? AND is_active = ?", user.ID, true).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionService_Cancel(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := service.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)

	require.NoError(t, service.Cancel(sub.ID, user.ID, model.RoleMember))

	// 重复取消是无操作
	require.NoError(t, service.Cancel(sub.ID, user.ID, model.RoleMember))

	_, err = service.Current(user.ID)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestSubscriptionService_Cancel_NotOwner(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := service.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)

	err = service.Cancel(sub.ID, other.ID, model.RoleMember)
	assert.ErrorIs(t, err, ErrNotSubscriptionOwner)

	// 管理员可代为取消
	require.NoError(t, service.Cancel(sub.ID, other.ID, model.RoleAdmin))
}

func TestSubscriptionService_Cancel_NotFound(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)

	err := service.Cancel(99999, user.ID, model.RoleMember)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestSubscriptionService_Current(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(10, 10))

	_, err := service.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)

	// 今日读两篇文章、看一条视频
	_, err = service.quota.RecordView(user.ID, model.KindArticle, 1)
	require.NoError(t, err)
	_, err = service.quota.RecordView(user.ID, model.KindArticle, 2)
	require.NoError(t, err)
	_, err = service.quota.RecordView(user.ID, model.KindVideo, 1)
	require.NoError(t, err)

	current, err := service.Current(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, current.PlanID)
	assert.Equal(t, 2, current.ArticlesReadToday)
	assert.Equal(t, 1, current.VideosWatchedToday)
}

func TestSubscriptionService_Current_UserNotFound(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, _, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	_, err := service.Current(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubscriptionService_List(t *testing.T) {
	clk := clock.NewMock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	service, db, cleanup := setupSubscriptionService(t, clk)
	defer cleanup()

	user := testutil.TestUser(t, db)
	planA := testutil.TestPlan(t, db)
	planB := testutil.TestPlan(t, db)

	_, err := service.Subscribe(user.ID, planA.ID)
	require.NoError(t, err)
	_, err = service.Subscribe(user.ID, planB.ID)
	require.NoError(t, err)

	subs, err := service.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}
