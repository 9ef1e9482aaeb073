package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/settings"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanService(t *testing.T, observers ...UseCaseObserver) (PlanService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewPlanService(
		repository.NewSQLitePlanItemRepo(database),
		settings.Static(domain.DefaultSettings()),
		testutil.NewTestUoW(database),
		observers...,
	)
	return svc, database
}

func TestAddItem_DefaultsDuration(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 9*60, 0, "Standup")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, domain.DefaultSettings().DefaultDurationMinutes, item.DurationMinutes)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Text)
}

func TestAddItem_RejectsInvalidStart(t *testing.T) {
	svc, _ := newPlanService(t)

	_, err := svc.AddItem(context.Background(), testutil.TestDay, 24*60, 30, "late")
	assert.ErrorIs(t, err, domain.ErrInvalidStart)
}

func TestUpdateItem_PersistsCommittedSnapshot(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "Focus")
	require.NoError(t, err)

	moved, err := item.WithStartMinutes(645)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateItem(ctx, moved))

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:45", got.RawStartTime)
	assert.Equal(t, 30, got.DurationMinutes)
}

func TestUpdateItem_RejectsBrokenInvariant(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "Focus")
	require.NoError(t, err)

	broken := item
	broken.EndTime = broken.StartTime
	assert.ErrorIs(t, svc.UpdateItem(ctx, broken), domain.ErrInvalidDuration)
}

func TestUpdateItem_UnknownItem(t *testing.T) {
	svc, _ := newPlanService(t)

	err := svc.UpdateItem(context.Background(), testutil.NewTestPlanItem("never stored"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMoveResizeRename(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "Review")
	require.NoError(t, err)

	moved, err := svc.Move(ctx, item.ID, 14*60)
	require.NoError(t, err)
	assert.Equal(t, "14:00", moved.RawStartTime)
	assert.Equal(t, 30, moved.DurationMinutes)

	resized, err := svc.Resize(ctx, item.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, 14*60, resized.StartMinutes)
	assert.True(t, testutil.At(15, 30).Equal(resized.EndTime))

	renamed, err := svc.Rename(ctx, item.ID, "Code review")
	require.NoError(t, err)
	assert.Equal(t, 90, renamed.DurationMinutes)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Code review", got.Text)
	assert.Equal(t, 90, got.DurationMinutes)
}

func TestMove_UnknownItem(t *testing.T) {
	svc, _ := newPlanService(t)

	_, err := svc.Move(context.Background(), "missing", 600)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResize_RejectsZeroDuration(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "x")
	require.NoError(t, err)

	_, err = svc.Resize(ctx, item.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestDelete(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "x")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, item.ID))

	items, err := svc.ListDay(ctx, testutil.TestDay)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.ErrorIs(t, svc.Delete(ctx, item.ID), repository.ErrNotFound)
}

func TestShiftFrom_MovesLaterItemsOnly(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	early, err := svc.AddItem(ctx, testutil.TestDay, 8*60, 30, "early")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testutil.TestDay, 10*60, 30, "a")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testutil.TestDay, 11*60, 30, "b")
	require.NoError(t, err)

	shifted, err := svc.ShiftFrom(ctx, testutil.TestDay, 10*60, 20)
	require.NoError(t, err)
	assert.Len(t, shifted, 2)

	items, err := svc.ListDay(ctx, testutil.TestDay)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, early.ID, items[0].ID)
	assert.Equal(t, "08:00", items[0].RawStartTime)
	assert.Equal(t, "10:20", items[1].RawStartTime)
	assert.Equal(t, "11:20", items[2].RawStartTime)
}

func TestShiftFrom_PastMidnightRollsBack(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, testutil.TestDay, 20*60, 30, "evening")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, testutil.TestDay, 23*60, 30, "night")
	require.NoError(t, err)

	_, err = svc.ShiftFrom(ctx, testutil.TestDay, 0, 90)
	assert.ErrorIs(t, err, domain.ErrInvalidStart)

	items, err := svc.ListDay(ctx, testutil.TestDay)
	require.NoError(t, err)
	assert.Equal(t, "20:00", items[0].RawStartTime, "first update rolled back")
	assert.Equal(t, "23:00", items[1].RawStartTime)
}

func TestShiftFrom_RollbackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := repository.NewSQLitePlanItemRepo(database)
	ctx := context.Background()

	a := testutil.NewTestPlanItem("a", testutil.WithStart(9, 0))
	b := testutil.NewTestPlanItem("b", testutil.WithStart(10, 0))
	require.NoError(t, items.Create(ctx, a))
	require.NoError(t, items.Create(ctx, b))

	injected := errors.New("injected update failure")
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	svc := NewPlanService(items, settings.Static(domain.DefaultSettings()), failUoW)

	_, err := svc.ShiftFrom(ctx, testutil.TestDay, 0, 15)
	assert.ErrorIs(t, err, injected)

	got, err := items.ListByDay(ctx, testutil.TestDay)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got[0].RawStartTime)
	assert.Equal(t, "10:00", got[1].RawStartTime)
}

func TestOverlaps(t *testing.T) {
	svc, _ := newPlanService(t)
	ctx := context.Background()

	a, err := svc.AddItem(ctx, testutil.TestDay, 600, 60, "a")
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, testutil.TestDay, 630, 30, "b")
	require.NoError(t, err)

	got, err := svc.Overlaps(ctx, b)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestPlanService_ObservesUseCases(t *testing.T) {
	var buf bytes.Buffer
	svc, _ := newPlanService(t, NewLogUseCaseObserver(&buf))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, testutil.TestDay, 600, 30, "x")
	require.NoError(t, err)
	_, err = svc.Move(ctx, "missing", 600)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=add-item")
	assert.Contains(t, out, "use_case=move-item")
	assert.Contains(t, out, "success=false")
}
