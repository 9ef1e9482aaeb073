package progress

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func twoItems(t *testing.T) []domain.PlanItem {
	t.Helper()
	a, err := domain.NewPlanItem("a", testDay, 600, 30, "A")
	require.NoError(t, err)
	b, err := domain.NewPlanItem("b", testDay, 630, 30, "B")
	require.NoError(t, err)
	return []domain.PlanItem{a, b}
}

type captureNotifier struct {
	sent []Notification
	err  error
}

func (c *captureNotifier) Notify(_ context.Context, n Notification) error {
	c.sent = append(c.sent, n)
	return c.err
}

func TestEvaluate_MidItem(t *testing.T) {
	items := twoItems(t)

	snap, state := Evaluate(items, at(10, 15), State{})
	require.NotNil(t, snap.Current)
	assert.Equal(t, "a", snap.Current.ID)
	assert.Equal(t, 50.0, snap.PercentComplete)
	require.NotNil(t, snap.Next)
	assert.Equal(t, "b", snap.Next.ID)
	assert.Equal(t, 15, snap.MinutesUntilNext)
	assert.Equal(t, 15, snap.MinutesLeft)
	assert.False(t, snap.Ended)
	assert.False(t, snap.NotifyTransition, "first evaluation never notifies")
	require.NotNil(t, state.LastCurrentStart)
	assert.True(t, state.LastCurrentStart.Equal(at(10, 0)))
}

func TestEvaluate_TransitionFiresOnce(t *testing.T) {
	items := twoItems(t)

	_, state := Evaluate(items, at(10, 15), State{})
	snap, state := Evaluate(items, at(10, 45), state)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "b", snap.Current.ID)
	assert.True(t, snap.NotifyTransition)
	assert.Nil(t, snap.Next)

	snap, _ = Evaluate(items, at(10, 46), state)
	assert.Equal(t, "b", snap.Current.ID)
	assert.False(t, snap.NotifyTransition)
}

func TestEvaluate_PastAllItems(t *testing.T) {
	items := twoItems(t)
	_, state := Evaluate(items, at(10, 45), State{})

	snap, next := Evaluate(items, at(11, 5), state)
	assert.True(t, snap.Ended)
	assert.Nil(t, snap.Current)
	assert.Nil(t, snap.Next)
	assert.False(t, snap.NotifyTransition)
	assert.Equal(t, state, next, "remembered start is kept while idle")
}

func TestEvaluate_BoundaryBelongsToLaterItem(t *testing.T) {
	snap, _ := Evaluate(twoItems(t), at(10, 30), State{})
	require.NotNil(t, snap.Current)
	assert.Equal(t, "b", snap.Current.ID)
	assert.Equal(t, 0.0, snap.PercentComplete)
}

func TestEvaluate_EmptyList(t *testing.T) {
	snap, state := Evaluate(nil, at(9, 0), State{})
	assert.True(t, snap.Ended)
	assert.Nil(t, state.LastCurrentStart)
}

func TestSnapshot_ClampedPercent(t *testing.T) {
	assert.Equal(t, 100.0, Snapshot{PercentComplete: 130}.ClampedPercent())
	assert.Equal(t, 0.0, Snapshot{PercentComplete: -4}.ClampedPercent())
	assert.Equal(t, 42.0, Snapshot{PercentComplete: 42}.ClampedPercent())
}

func TestTracker_NotifiesOnTransitionOnly(t *testing.T) {
	store, err := settings.NewStore(domain.DefaultSettings())
	require.NoError(t, err)
	notifier := &captureNotifier{}
	tr := NewTracker(store, notifier)
	ctx := context.Background()
	items := twoItems(t)

	for _, now := range []time.Time{at(10, 15), at(10, 20)} {
		_, err := tr.Tick(ctx, items, now)
		require.NoError(t, err)
	}
	assert.Empty(t, notifier.sent)

	_, err = tr.Tick(ctx, items, at(10, 45))
	require.NoError(t, err)
	_, err = tr.Tick(ctx, items, at(10, 46))
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Task started, 10:30 B", notifier.sent[0].Title)
	assert.Empty(t, notifier.sent[0].Body)
}

func TestTracker_RespectsNotificationSetting(t *testing.T) {
	s := domain.DefaultSettings()
	s.ShowTaskNotification = false
	notifier := &captureNotifier{}
	tr := NewTracker(settings.Static(s), notifier)
	items := twoItems(t)

	_, err := tr.Tick(context.Background(), items, at(10, 15))
	require.NoError(t, err)
	snap, err := tr.Tick(context.Background(), items, at(10, 45))
	require.NoError(t, err)

	assert.True(t, snap.NotifyTransition)
	assert.Empty(t, notifier.sent)
	require.NotNil(t, tr.State().LastCurrentStart)
	assert.True(t, tr.State().LastCurrentStart.Equal(at(10, 30)))
}

func TestTracker_NotifierError(t *testing.T) {
	notifier := &captureNotifier{err: errors.New("no display")}
	tr := NewTracker(settings.Static(domain.DefaultSettings()), notifier)
	items := twoItems(t)

	_, err := tr.Tick(context.Background(), items, at(10, 15))
	require.NoError(t, err)
	snap, err := tr.Tick(context.Background(), items, at(10, 45))
	assert.ErrorIs(t, err, notifier.err)
	assert.Equal(t, "b", snap.Current.ID)
}

func TestStatusText(t *testing.T) {
	items := twoItems(t)
	items[0] = items[0].WithText("A very long task title here")
	snap, _ := Evaluate(items, at(10, 15), State{})

	s := domain.DefaultSettings()
	s.NowAndNextInStatusBar = false
	assert.Equal(t, "Minutes left: 15", StatusText(snap, s))

	s.NowAndNextInStatusBar = true
	assert.Equal(t, "Now: 10:00 A very long tas...  Next: 10:30 B", StatusText(snap, s))

	ended, _ := Evaluate(items, at(12, 0), State{})
	assert.Equal(t, s.EndLabel, StatusText(ended, s))
}

func TestCardText(t *testing.T) {
	snap, _ := Evaluate(twoItems(t), at(10, 15), State{})

	current, next := CardText(snap)
	assert.Equal(t, "Current Task (50% complete): 10:00 A", current)
	assert.Equal(t, "Next Task (in 15 mins): 10:30 B", next)

	current, next = CardText(Snapshot{Ended: true})
	assert.Empty(t, current)
	assert.Empty(t, next)
}

func TestMinutesText(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "1 min"},
		{1, "1 min"},
		{2, "2 mins"},
		{45, "45 mins"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinutesText(tt.minutes))
	}
}

func TestEllipsis(t *testing.T) {
	assert.Equal(t, "short", Ellipsis("short", EllipsisLimit))
	assert.Equal(t, "exactly fifteen", Ellipsis("exactly fifteen", EllipsisLimit))
	assert.Equal(t, "abc...", Ellipsis("abcdef", 3))
	assert.Equal(t, "héll...", Ellipsis("héllo wörld", 4))
	assert.Equal(t, "日本...", Ellipsis("日本語のメモ", 4), "wide runes take two cells")
}

func TestLogNotifier(t *testing.T) {
	var n Notifier = LogNotifier{Logger: slog.New(slog.DiscardHandler)}
	assert.NoError(t, n.Notify(context.Background(), Notification{Title: "x"}))
}
