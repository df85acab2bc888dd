package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Spring Launch", testutil.WithChannel("social"))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Spring Launch", got.Name)
	assert.Equal(t, "social", got.Channel)
	assert.Equal(t, domain.PlanActive, got.Status)
	assert.Equal(t, p.StartDate.Format("2006-01-02"), got.StartDate.Format("2006-01-02"))
}

func TestPlanRepo_GetMissingReturnsErrNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanRepo_ListExcludesArchivedByDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRepo(database)
	ctx := context.Background()

	active := testutil.NewTestPlan("Active")
	archived := testutil.NewTestPlan("Old", testutil.WithPlanStatus(domain.PlanArchived))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	plans, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Active", plans[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPlanRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Draft")
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Final"
	p.Notes = "approved by the channel lead"
	p.Status = domain.PlanPaused
	p.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
	assert.Equal(t, "approved by the channel lead", got.Notes)
	assert.Equal(t, domain.PlanPaused, got.Status)
}

func TestPlanRepo_ArchiveSetsTimestamp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Ephemeral")
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Archive(ctx, p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanArchived, got.Status)
	require.NotNil(t, got.ArchivedAt)
}

func TestPlanRepo_DeleteCascadesToUnits(t *testing.T) {
	database := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(database)
	units := repository.NewSQLiteUnitRepo(database)
	ctx := context.Background()

	p := testutil.NewTestPlan("Doomed")
	require.NoError(t, plans.Create(ctx, p))
	u := testutil.NewTestActivity(p.ID, "Task")
	require.NoError(t, units.Create(ctx, u))

	require.NoError(t, plans.Delete(ctx, p.ID))

	_, err := units.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
