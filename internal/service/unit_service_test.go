package service

import (
	"context"
	"testing"
	"time"

	"github.com/jordanmvolk/marquee/internal/db"
	"github.com/jordanmvolk/marquee/internal/domain"
	"github.com/jordanmvolk/marquee/internal/repository"
	"github.com/jordanmvolk/marquee/internal/scheduler"
	"github.com/jordanmvolk/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (repository.PlanRepo, repository.UnitRepo, repository.DependencyRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLitePlanRepo(database),
		repository.NewSQLiteUnitRepo(database),
		repository.NewSQLiteDependencyRepo(database),
		testutil.NewTestUoW(database)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newActivity(planID, title string, duration int, start time.Time, deps ...string) *domain.Unit {
	return &domain.Unit{
		PlanID:       planID,
		Title:        title,
		Kind:         domain.KindActivity,
		Duration:     duration,
		StartDate:    start,
		Dependencies: deps,
	}
}

func TestUnitService_CreateDerivesWindow(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	a := newActivity(p.ID, "Write brief", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, a))

	assert.Equal(t, date(2024, 1, 1), a.StartDate)
	assert.Equal(t, date(2024, 1, 3), a.DueDate, "due is start plus duration days")

	stored, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.DueDate, stored.DueDate)
}

func TestUnitService_CreateWithZeroStartDefaultsToToday(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	a := newActivity(p.ID, "Kickoff", 1, time.Time{})
	require.NoError(t, svc.Create(ctx, a))

	today := scheduler.DayOf(time.Now().UTC())
	assert.Equal(t, today, a.StartDate)
	assert.Equal(t, today.AddDate(0, 0, 1), a.DueDate)
}

func TestUnitService_CreateDependentStartsAfterLatestDependency(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))

	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	assert.Equal(t, date(2024, 1, 4), y.StartDate, "day after the dependency's due date")
	assert.Equal(t, date(2024, 1, 7), y.DueDate)
}

func TestUnitService_SetDurationCascadesDownstream(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))
	z := newActivity(p.ID, "Review", 1, time.Time{}, y.ID)
	require.NoError(t, svc.Create(ctx, z))

	require.NoError(t, svc.SetDuration(ctx, x.ID, 5))

	gotX, err := svc.GetByID(ctx, x.ID)
	require.NoError(t, err)
	gotY, err := svc.GetByID(ctx, y.ID)
	require.NoError(t, err)
	gotZ, err := svc.GetByID(ctx, z.ID)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 1, 6), gotX.DueDate)
	assert.Equal(t, date(2024, 1, 7), gotY.StartDate, "cascade reaches the direct dependent")
	assert.Equal(t, date(2024, 1, 10), gotY.DueDate)
	assert.Equal(t, date(2024, 1, 11), gotZ.StartDate, "cascade reaches the transitive dependent")
}

func TestUnitService_SetDueDateBeforeStartRejected(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	a := newActivity(p.ID, "Design", 2, date(2024, 3, 10))
	require.NoError(t, svc.Create(ctx, a))

	err := svc.SetDueDate(ctx, a.ID, date(2024, 3, 5))
	assert.ErrorIs(t, err, scheduler.ErrDueBeforeStart)

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 12), got.DueDate, "rejected edit leaves the window untouched")
}

func TestUnitService_SetDueDateAdjustsActivityDuration(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	a := newActivity(p.ID, "Design", 2, date(2024, 3, 10))
	require.NoError(t, svc.Create(ctx, a))

	require.NoError(t, svc.SetDueDate(ctx, a.ID, date(2024, 3, 20)))

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 20), got.DueDate)
	assert.Equal(t, 10, got.Duration)
}

func TestUnitService_SetStartRejectedWhenDerived(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	assert.Error(t, svc.SetStart(ctx, y.ID, date(2024, 2, 1)))
	require.NoError(t, svc.SetStart(ctx, x.ID, date(2024, 2, 1)))

	gotY, err := svc.GetByID(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 4), gotY.StartDate, "moving the root moves the dependent")
}

func TestUnitService_SetDependenciesCycleRollsBack(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	var cycleErr *scheduler.CycleError
	err := svc.SetDependencies(ctx, x.ID, []string{y.ID})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cycleErr)

	got, err := svc.GetByID(ctx, x.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Dependencies, "rejected edit restores the previous edges")
}

func TestUnitService_SetStatusEnforcesReadiness(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	assert.ErrorIs(t, svc.SetStatus(ctx, y.ID, domain.UnitInProgress), ErrBlocked)

	require.NoError(t, svc.SetStatus(ctx, x.ID, domain.UnitDone))
	require.NoError(t, svc.SetStatus(ctx, y.ID, domain.UnitInProgress))

	got, err := svc.GetByID(ctx, y.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitInProgress, got.Status)
}

func TestUnitService_CancelledDependencyStillBlocks(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	require.NoError(t, svc.SetStatus(ctx, x.ID, domain.UnitCancelled))

	assert.ErrorIs(t, svc.SetStatus(ctx, y.ID, domain.UnitInProgress), ErrBlocked)
}

func TestUnitService_DeletedDependencyIsIgnored(t *testing.T) {
	plans, units, deps, uow := setup(t)
	ctx := context.Background()

	p := testutil.NewTestPlan("Launch")
	require.NoError(t, plans.Create(ctx, p))

	svc := NewUnitService(units, deps, uow)
	x := newActivity(p.ID, "Design", 2, date(2024, 1, 1))
	require.NoError(t, svc.Create(ctx, x))
	y := newActivity(p.ID, "Build", 3, time.Time{}, x.ID)
	require.NoError(t, svc.Create(ctx, y))

	require.NoError(t, svc.Delete(ctx, x.ID))

	// The dangling edge still exists but no longer resolves, so the
	// dependent is free to begin.
	require.NoError(t, svc.SetStatus(ctx, y.ID, domain.UnitInProgress))
}
