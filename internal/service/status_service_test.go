package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CurrentAndNext(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := repository.NewSQLitePlanItemRepo(database)
	ctx := context.Background()

	a := testutil.NewTestPlanItem("A", testutil.WithStart(10, 0), testutil.WithDuration(30))
	b := testutil.NewTestPlanItem("B", testutil.WithStart(10, 30), testutil.WithDuration(30))
	require.NoError(t, items.Create(ctx, b))
	require.NoError(t, items.Create(ctx, a))

	svc := NewStatusService(items)
	snap, day, err := svc.Status(ctx, testutil.At(10, 15))
	require.NoError(t, err)
	assert.Len(t, day, 2)
	require.NotNil(t, snap.Current)
	assert.Equal(t, a.ID, snap.Current.ID)
	require.NotNil(t, snap.Next)
	assert.Equal(t, b.ID, snap.Next.ID)
	assert.Equal(t, 50.0, snap.PercentComplete)
	assert.Equal(t, 15, snap.MinutesUntilNext)
	assert.False(t, snap.NotifyTransition)
}

func TestStatus_EndedAfterLastItem(t *testing.T) {
	database := testutil.NewTestDB(t)
	items := repository.NewSQLitePlanItemRepo(database)
	ctx := context.Background()
	require.NoError(t, items.Create(ctx, testutil.NewTestPlanItem("A", testutil.WithStart(10, 0))))

	snap, _, err := NewStatusService(items).Status(ctx, testutil.At(11, 5))
	require.NoError(t, err)
	assert.True(t, snap.Ended)
	assert.Nil(t, snap.Current)
}
