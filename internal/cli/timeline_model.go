package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
	"github.com/alexanderramin/dayplan/internal/interaction"
	"github.com/alexanderramin/dayplan/internal/progress"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerRows = 2
	footerRows = 3

	ghostText = "New item"
	zoomStep  = 0.1
	minZoom   = 0.1
)

type itemsLoadedMsg struct {
	items []domain.PlanItem
	err   error
}

// committedMsg reports the end of a drag, resize or create commit.
type committedMsg struct{ err error }

type progressTickMsg time.Time

// timelineModel is the interactive day view. Each item is driven by its own
// interaction.Task; rows on screen are timeline pixels.
type timelineModel struct {
	ctx context.Context
	app *App
	day time.Time

	cursor  *interaction.Cursor
	tracker *progress.Tracker
	keys    timelineKeyMap
	help    help.Model

	items  []domain.PlanItem
	tasks  []*interaction.Task
	ghost  *interaction.Task
	active *interaction.Task

	selected string
	notice   string
	snap     progress.Snapshot
	scroll   int
	width    int
	height   int
	err      error
}

func newTimelineModel(ctx context.Context, app *App, day time.Time) *timelineModel {
	m := &timelineModel{
		ctx:    ctx,
		app:    app,
		day:    domain.DayStart(day),
		cursor: &interaction.Cursor{},
		keys:   newTimelineKeyMap(),
		help:   help.New(),
	}
	m.tracker = progress.NewTracker(app.Store, footerNotifier{m: m, next: app.Notifier})
	return m
}

// footerNotifier shows the latest notification in the footer and forwards
// it. Tracker ticks run inside Update, so writing to the model is safe.
type footerNotifier struct {
	m    *timelineModel
	next progress.Notifier
}

func (f footerNotifier) Notify(ctx context.Context, n progress.Notification) error {
	f.m.notice = n.Title
	if f.next == nil {
		return nil
	}
	return f.next.Notify(ctx, n)
}

func (m *timelineModel) Init() tea.Cmd {
	return tea.Batch(m.loadItems(), progressTick())
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setItems(msg.items)
		m.refreshProgress()
		return m, nil

	case committedMsg:
		m.err = msg.err
		return m, m.loadItems()

	case progressTickMsg:
		m.refreshProgress()
		return m, progressTick()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scroll--
		m.clampScroll()
	case key.Matches(msg, m.keys.Down):
		m.scroll++
		m.clampScroll()
	case key.Matches(msg, m.keys.Now):
		m.scrollToNow()
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(-zoomStep)
	case key.Matches(msg, m.keys.Cancel):
		m.selected = ""
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Delete):
		if m.selected == "" {
			return m, nil
		}
		id := m.selected
		m.selected = ""
		return m, func() tea.Msg {
			return committedMsg{err: m.app.Plan.Delete(m.ctx, id)}
		}
	}
	return m, nil
}

func (m *timelineModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y < headerRows {
		return nil
	}
	y := float64(msg.Y - headerRows + m.scroll)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.active != nil {
			return nil
		}
		m.cursor.Set(y)
		m.press(int(y))
		if m.active == nil {
			m.cursor.Clear()
		}
	case tea.MouseActionMotion:
		if m.active == nil {
			return nil
		}
		m.cursor.Set(y)
		if err := m.active.PointerMove(); err != nil {
			m.err = err
		}
	case tea.MouseActionRelease:
		if m.active != nil {
			m.cursor.Set(y)
		}
		return m.release()
	}
	return nil
}

// press hit-tests row against the drawn blocks. The last row of a block is
// its resize handle; empty space starts a ghost item.
func (m *timelineModel) press(row int) {
	for i := len(m.tasks) - 1; i >= 0; i-- {
		t := m.tasks[i]
		geo, err := t.Geometry()
		if err != nil {
			m.err = err
			return
		}
		top, rows := blockRows(geo)
		if row < top || row >= top+rows {
			continue
		}
		part := interaction.PartBody
		if rows > 1 && row == top+rows-1 {
			part = interaction.PartBottomEdge
		}
		if err := t.PointerDown(part); err != nil {
			if !errors.Is(err, interaction.ErrBusy) {
				m.err = err
			}
			return
		}
		m.active = t
		return
	}

	ghost, err := m.newGhost(row)
	if err != nil {
		m.err = err
		return
	}
	m.ghost, m.active = ghost, ghost
}

// release ends the active interaction. The release position is recorded
// before any commit Cmd is returned, and the cursor is absent afterwards.
func (m *timelineModel) release() tea.Cmd {
	t := m.active
	m.active = nil
	if t == nil {
		return nil
	}
	defer m.cursor.Clear()

	if t == m.ghost {
		m.ghost = nil
		return m.createAt(t)
	}

	switch t.State() {
	case domain.StateDragging, domain.StateResizing:
		if err := t.PointerMove(); err != nil {
			m.err = err
		}
		t.PointerUp()
		return func() tea.Msg {
			return committedMsg{err: t.Release(m.ctx)}
		}
	default:
		if err := t.HandleMouseUp(m.ctx); err != nil {
			m.err = err
		}
		return nil
	}
}

// createAt commits a ghost at its snapped cursor position.
func (m *timelineModel) createAt(ghost *interaction.Task) tea.Cmd {
	s := m.app.Store.Current()
	g, err := geometry.GridFor(s)
	if err != nil {
		m.err = err
		return nil
	}
	geo, err := ghost.Geometry()
	if err != nil {
		m.err = err
		return nil
	}
	start := g.MinutesAt(geo.Offset + s.HiddenHoursOffset())
	if start < 0 || start >= domain.MinutesPerDay {
		return nil
	}
	day := m.day
	return func() tea.Msg {
		_, err := m.app.Plan.AddItem(m.ctx, day, start, 0, ghostText)
		return committedMsg{err: err}
	}
}

func (m *timelineModel) newGhost(row int) (*interaction.Task, error) {
	s := m.app.Store.Current()
	g, err := geometry.GridFor(s)
	if err != nil {
		return nil, err
	}
	start := g.MinutesAt(g.Snap(float64(row)) + s.HiddenHoursOffset())
	start = min(max(start, 0), domain.MinutesPerDay-1)
	item, err := domain.NewPlanItem("", m.day, start, s.DefaultDurationMinutes, ghostText)
	if err != nil {
		return nil, err
	}
	return interaction.NewTask(domain.PlacedPlanItem{PlanItem: item, IsGhost: true}, m.taskDeps()), nil
}

func (m *timelineModel) taskDeps() interaction.Deps {
	return interaction.Deps{
		Settings: m.app.Store,
		Clock:    m.app.clock(),
		Cursor:   m.cursor,
		OnUpdate: m.app.Plan.UpdateItem,
		OnMouseUp: func(_ context.Context, item domain.PlanItem) error {
			m.selected = item.ID
			return nil
		},
		Color:  formatter.TimelineColor,
		Logger: m.app.logger(),
	}
}

// setItems replaces the plan, keeping the Task of any item that survived so
// its interaction state carries over.
func (m *timelineModel) setItems(items []domain.PlanItem) {
	byID := make(map[string]*interaction.Task, len(m.tasks))
	for _, t := range m.tasks {
		byID[t.Item().ID] = t
	}

	tasks := make([]*interaction.Task, 0, len(items))
	for _, item := range items {
		placed := domain.PlacedPlanItem{PlanItem: item}
		if t, ok := byID[item.ID]; ok {
			t.SetItem(placed)
			tasks = append(tasks, t)
			continue
		}
		tasks = append(tasks, interaction.NewTask(placed, m.taskDeps()))
	}
	m.items, m.tasks = items, tasks
}

func (m *timelineModel) refreshProgress() {
	snap, err := m.tracker.Tick(m.ctx, m.items, m.app.clock().Now())
	if err != nil {
		m.err = err
	}
	m.snap = snap
}

func (m *timelineModel) zoom(delta float64) {
	err := m.app.Store.Update(func(s *domain.Settings) {
		s.ZoomLevel = math.Max(minZoom, math.Round((s.ZoomLevel+delta)*100)/100)
	})
	if err != nil {
		m.err = fmt.Errorf("changing zoom: %w", err)
	}
	m.clampScroll()
}

func (m *timelineModel) scrollToNow() {
	s := m.app.Store.Current()
	g, err := geometry.GridFor(s)
	if err != nil {
		m.err = err
		return
	}
	now := m.app.clock().Now()
	row := int(g.PixelsFor(now.Hour()*60+now.Minute()) - s.HiddenHoursOffset())
	m.scroll = row - m.bodyHeight()/3
	m.clampScroll()
}

// clampScroll keeps the body inside the visible part of the day.
func (m *timelineModel) clampScroll() {
	last := int(math.Ceil(m.app.Store.Current().VisibleHeight())) - m.bodyHeight()
	m.scroll = min(max(m.scroll, 0), max(last, 0))
}

func (m *timelineModel) loadItems() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		items, err := m.app.Plan.ListDay(m.ctx, day)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

// blockRows converts pixel geometry to the screen rows a block covers.
func blockRows(geo interaction.Geometry) (top, rows int) {
	top = int(math.Floor(geo.Offset))
	rows = max(int(math.Round(geo.Height)), 1)
	return top, rows
}
