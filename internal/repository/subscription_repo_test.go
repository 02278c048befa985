package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func TestSubscriptionRepository_GetActiveByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	sub, err := repo.GetActiveByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, user.ID, sub.UserID)
	require.NotNil(t, sub.Plan)
	assert.Equal(t, plan.ID, sub.Plan.ID)
}

func TestSubscriptionRepository_GetActiveByUser_None(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)

	sub, err := repo.GetActiveByUser(user.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubscriptionRepository_GetActiveByUser_IgnoresEnded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, plan.ID, testutil.WithEnded(time.Now().Add(-time.Minute)))

	sub, err := repo.GetActiveByUser(user.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubscriptionRepository_Activate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	now := time.Now()
	sub, err := repo.Activate(user.ID, plan.ID, now)
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Nil(t, sub.EndsAt)
	require.NotNil(t, sub.Plan)
	assert.Equal(t, plan.ID, sub.Plan.ID)
}

func TestSubscriptionRepository_Activate_ReplacesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	planA := testutil.TestPlan(t, db)
	planB := testutil.TestPlan(t, db)

	first, err := repo.Activate(user.ID, planA.ID, time.Now())
	require.NoError(t, err)

	second, err := repo.Activate(user.ID, planB.ID, time.Now())
	require.NoError(t, err)

	// 旧订阅被停用并打上结束时间
	old, err := repo.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)
	assert.NotNil(t, old.EndsAt)

	// 任意时刻只有一条生效
	count, err := repo.CountActiveByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err := repo.GetActiveByUser(user.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, planB.ID, active.PlanID)
}

func TestSubscriptionRepository_Activate_SamePlanRenews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	first, err := repo.Activate(user.ID, plan.ID, time.Now())
	require.NoError(t, err)

	second, err := repo.Activate(user.ID, plan.ID, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	count, err := repo.CountActiveByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	_, err := repo.Activate(user.ID, plan.ID, time.Now())
	require.NoError(t, err)
	_, err = repo.Activate(user.ID, plan.ID, time.Now())
	require.NoError(t, err)
	_, err = repo.Activate(other.ID, plan.ID, time.Now())
	require.NoError(t, err)

	subs, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, user.ID, s.UserID)
		assert.NotNil(t, s.Plan)
	}
}

func TestSubscriptionRepository_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := repo.Activate(user.ID, plan.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(sub.ID, time.Now()))

	found, err := repo.GetByID(sub.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.NotNil(t, found.EndsAt)
}
