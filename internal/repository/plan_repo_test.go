package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/testutil"
)

func TestPlanRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	plan := &model.Plan{
		Name:              "Pro Reader",
		Slug:              "pro-reader",
		Type:              model.PlanProReader,
		Price:             19.99,
		DailyArticleLimit: model.LimitUnlimited,
		DailyVideoLimit:   model.LimitUnlimited,
		IsActive:          true,
	}
	require.NoError(t, repo.Create(plan))
	assert.NotZero(t, plan.ID)

	found, err := repo.GetByID(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, found.DailyArticleLimit)
}

func TestPlanRepository_ListActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	active := testutil.TestPlan(t, db)
	testutil.TestPlan(t, db, testutil.WithInactive())

	plans, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, active.ID, plans[0].ID)
}

func TestPlanRepository_ListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	testutil.TestPlan(t, db)
	testutil.TestPlan(t, db, testutil.WithInactive())

	plans, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestPlanRepository_Deactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	plan := testutil.TestPlan(t, db)

	require.NoError(t, repo.Deactivate(plan.ID))

	found, err := repo.GetByID(plan.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestPlanRepository_ExistsBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	plan := testutil.TestPlan(t, db)

	exists, err := repo.ExistsBySlug(plan.Slug)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug("no-such-plan")
	require.NoError(t, err)
	assert.False(t, exists)
}
