package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/interaction"
	"github.com/alexanderramin/dayplan/internal/progress"
	"github.com/alexanderramin/dayplan/internal/teatest"
	"github.com/alexanderramin/dayplan/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One row per minute from 08:00 keeps the arithmetic readable: an item at
// 09:00 starts on body row 60, i.e. screen row 60+headerRows.
func timelineApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	require.NoError(t, app.Store.Update(func(s *domain.Settings) {
		s.ZoomLevel = 1
		s.SnapStepMinutes = 15
		s.StartHour = 8
		s.EndHour = 18
	}))
	return app
}

func screenRow(bodyRow int) int { return bodyRow + headerRows }

func newTimelineDriver(t *testing.T, app *App) (*teatest.Driver, *timelineModel) {
	t.Helper()
	m := newTimelineModel(context.Background(), app, testutil.TestDay)
	d := teatest.New(t, m, teatest.WithSize(100, 120))
	d.DrainInit()
	return d, m
}

func TestTimeline_RendersItems(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")

	d, m := newTimelineDriver(t, app)
	require.Len(t, m.tasks, 1)

	view := d.View()
	assert.Contains(t, view, "Sun 15 Jun 2025")
	assert.Contains(t, view, "09:00 Focus")
	assert.Contains(t, view, "08:00")
	assert.Contains(t, view, "Minutes left: 20")
}

func TestTimeline_DragMovesItem(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.Drag(20, screenRow(65), screenRow(95))

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 570, got.StartMinutes, "row 95 snaps to row 90, i.e. 09:30")
	assert.Equal(t, 30, got.DurationMinutes)
	assert.Equal(t, domain.StateIdle, m.tasks[0].State())
	assert.Equal(t, "09:30", m.tasks[0].Item().RawStartTime)
	assert.Nil(t, m.err)
}

func TestTimeline_DragUpwards(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 10, 0, 30, "Focus")
	d, _ := newTimelineDriver(t, app)

	d.Drag(20, screenRow(125), screenRow(100))

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 570, got.StartMinutes)
}

func TestTimeline_CommitUsesReleasePosition(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.MousePress(20, screenRow(65))
	for row := 66; row <= 95; row++ {
		d.MouseMotion(20, screenRow(row))
	}
	_, commit := m.Update(tea.MouseMsg{X: 20, Y: screenRow(95), Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	require.NotNil(t, commit)
	_, ok := m.cursor.OffsetY()
	assert.False(t, ok, "cursor is absent once the pointer is up")

	// a press on empty space reaches Update before the commit runs
	m.Update(tea.MouseMsg{X: 20, Y: screenRow(20), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	geo, err := m.tasks[0].Geometry()
	require.NoError(t, err)
	assert.Equal(t, 90.0, geo.Offset, "released block does not follow the new press")

	d.Send(commit())

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 570, got.StartMinutes)
	assert.Nil(t, m.err)
}

func TestTimeline_ClickLeavesNoCursor(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.Click(20, screenRow(70))
	_, ok := m.cursor.OffsetY()
	assert.False(t, ok)

	d.MouseMotion(20, screenRow(30))
	_, ok = m.cursor.OffsetY()
	assert.False(t, ok, "hover without a pressed item does not set the cursor")
}

func TestTimeline_BottomEdgeResizes(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, _ := newTimelineDriver(t, app)

	d.Drag(20, screenRow(89), screenRow(119))

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 540, got.StartMinutes)
	assert.Equal(t, 60, got.DurationMinutes)
}

func TestTimeline_ResizeNeverBelowOneStep(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, _ := newTimelineDriver(t, app)

	d.Drag(20, screenRow(89), screenRow(55))

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.DurationMinutes)
}

func TestTimeline_ClickSelectsAndDeletes(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.Click(20, screenRow(70))
	assert.Equal(t, item.ID, m.selected)

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 540, got.StartMinutes, "a click does not move the item")

	d.PressKey('x')
	assert.Empty(t, listDay(t, app))
	assert.Empty(t, m.tasks)
}

func TestTimeline_EscClearsSelection(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.Click(20, screenRow(70))
	require.NotEmpty(t, m.selected)
	d.PressEsc()
	assert.Empty(t, m.selected)
}

func TestTimeline_ClickEmptySlotCreatesItem(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")
	d, m := newTimelineDriver(t, app)

	d.MousePress(20, screenRow(20))
	require.NotNil(t, m.ghost)
	assert.Contains(t, d.View(), ghostText)

	d.MouseRelease(20, screenRow(20))
	assert.Nil(t, m.ghost)

	items := listDay(t, app)
	require.Len(t, items, 2)
	assert.Equal(t, 495, items[0].StartMinutes, "row 20 snaps to 08:15")
	assert.Equal(t, ghostText, items[0].Text)
	assert.Equal(t, 30, items[0].DurationMinutes)
}

func TestTimeline_GhostFollowsCursor(t *testing.T) {
	app := timelineApp(t)
	d, m := newTimelineDriver(t, app)

	d.MousePress(20, screenRow(20))
	d.MouseMotion(20, screenRow(200))
	d.MouseRelease(20, screenRow(200))
	require.Nil(t, m.ghost)

	items := listDay(t, app)
	require.Len(t, items, 1)
	assert.Equal(t, 675, items[0].StartMinutes)
}

func TestTimeline_HeaderClicksIgnored(t *testing.T) {
	app := timelineApp(t)
	d, m := newTimelineDriver(t, app)

	d.Click(20, 0)
	assert.Nil(t, m.ghost)
	assert.Empty(t, listDay(t, app))
}

func TestTimeline_ZoomKeys(t *testing.T) {
	app := timelineApp(t)
	d, _ := newTimelineDriver(t, app)

	d.PressKey('+')
	assert.InDelta(t, 1.1, app.Store.Current().ZoomLevel, 1e-9)

	for range 20 {
		d.PressKey('-')
	}
	assert.InDelta(t, minZoom, app.Store.Current().ZoomLevel, 1e-9)
}

func TestTimeline_ZoomChangesGeometry(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")
	_, m := newTimelineDriver(t, app)

	require.NoError(t, app.Store.Update(func(s *domain.Settings) { s.ZoomLevel = 2 }))

	geo, err := m.tasks[0].Geometry()
	require.NoError(t, err)
	assert.Equal(t, 120.0, geo.Offset)
	assert.Equal(t, 60.0, geo.Height)
}

func TestTimeline_ScrollShiftsHitTesting(t *testing.T) {
	app := timelineApp(t)
	item := seedItem(t, app, 9, 0, 30, "Focus")
	d, _ := newTimelineDriver(t, app)

	for range 10 {
		d.PressDown()
	}
	d.Drag(20, screenRow(55), screenRow(85))

	got, err := app.Plan.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 570, got.StartMinutes)
}

func TestTimeline_ScrollStopsAtEndOfDay(t *testing.T) {
	app := timelineApp(t)
	d, m := newTimelineDriver(t, app)

	for range 1000 {
		d.PressDown()
	}
	assert.Equal(t, 600-m.bodyHeight(), m.scroll, "08:00 to 18:00 at one row per minute")

	d.PressKey('-')
	assert.Equal(t, 540-m.bodyHeight(), m.scroll, "zooming out pulls the view back")

	for range 1000 {
		d.PressUp()
	}
	assert.Equal(t, 0, m.scroll)
}

type recordingNotifier struct{ sent []progress.Notification }

func (r *recordingNotifier) Notify(_ context.Context, n progress.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func TestTimeline_TickNotifiesOnNewItem(t *testing.T) {
	app := timelineApp(t)
	seedItem(t, app, 9, 0, 30, "Focus")
	seedItem(t, app, 9, 30, 30, "Email")
	notifier := &recordingNotifier{}
	app.Notifier = notifier

	d, m := newTimelineDriver(t, app)
	require.NotNil(t, m.snap.Current)
	assert.Equal(t, "Focus", m.snap.Current.Text)

	app.Clock.(*interaction.ManualClock).Set(testutil.At(9, 31))
	d.Send(progressTickMsg(time.Now()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Task started, 09:30 Email", notifier.sent[0].Title)
	assert.Equal(t, "Email", m.snap.Current.Text)
	assert.Contains(t, d.View(), "Task started, 09:30 Email")
}

func TestTimeline_Quit(t *testing.T) {
	app := timelineApp(t)
	d, _ := newTimelineDriver(t, app)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
