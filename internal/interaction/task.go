// Package interaction derives an item's live timeline geometry from its
// snapshot, the live settings, clock and cursor, and runs the drag and
// resize commit protocol.
package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
	"github.com/alexanderramin/dayplan/internal/settings"
)

// Part is the region of an item block the pointer went down on.
type Part int

const (
	PartBody Part = iota
	PartBottomEdge
)

// Deps are the live inputs and callbacks a Task reads from.
type Deps struct {
	Settings  settings.View
	Clock     Clock
	Cursor    CursorSource
	OnUpdate  UpdateFunc
	OnMouseUp TapFunc
	Color     ColorFunc

	// DragThreshold is how far, in pixels, the pointer must travel after
	// pointer-down before a drag starts. Zero means any movement.
	DragThreshold float64

	Logger *slog.Logger
}

// Geometry is everything a presentation layer needs to draw one item.
type Geometry struct {
	Offset   float64
	Height   float64
	Relation domain.RelationToNow
	State    domain.InteractionState
	Color    domain.ItemColor
}

// Task is the positioning engine for one item. Every derived value is
// recomputed from current inputs on each call; nothing is memoised.
type Task struct {
	deps   Deps
	st     *interactionState
	drag   *DragController
	resize *ResizeController

	mu   sync.RWMutex
	item domain.PlacedPlanItem
}

// NewTask builds the engine for item. Settings is required; other nil deps
// get inert defaults.
func NewTask(item domain.PlacedPlanItem, deps Deps) *Task {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Cursor == nil {
		deps.Cursor = &Cursor{}
	}
	if deps.OnUpdate == nil {
		deps.OnUpdate = func(context.Context, domain.PlanItem) error { return nil }
	}
	if deps.OnMouseUp == nil {
		deps.OnMouseUp = func(context.Context, domain.PlanItem) error { return nil }
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	st := newInteractionState()
	return &Task{
		deps:   deps,
		st:     st,
		drag:   &DragController{st: st, onUpdate: deps.OnUpdate, threshold: deps.DragThreshold},
		resize: &ResizeController{st: st, onUpdate: deps.OnUpdate},
		item:   item,
	}
}

// Item returns the current snapshot.
func (t *Task) Item() domain.PlacedPlanItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.item
}

// SetItem replaces the snapshot, e.g. after the plan was reloaded.
func (t *Task) SetItem(item domain.PlacedPlanItem) {
	t.mu.Lock()
	t.item = item
	t.mu.Unlock()
}

// State returns the current interaction state.
func (t *Task) State() domain.InteractionState {
	return t.st.current()
}

// Offset is the top of the item block in timeline pixels.
func (t *Task) Offset() (float64, error) {
	g, s, err := t.grid()
	if err != nil {
		return 0, err
	}
	return t.offset(g, s), nil
}

// Height is the item block height in timeline pixels.
func (t *Task) Height() (float64, error) {
	g, s, err := t.grid()
	if err != nil {
		return 0, err
	}
	return t.height(g, t.offset(g, s)), nil
}

// RelationToNow classifies the committed start/end against the clock. An
// in-progress drag does not change it.
func (t *Task) RelationToNow() domain.RelationToNow {
	item := t.Item()
	return geometry.Classify(t.deps.Clock.Now(), item.StartTime, item.EndTime)
}

// Color runs colour enrichment for the current settings.
func (t *Task) Color() domain.ItemColor {
	if t.deps.Color == nil {
		return domain.ItemColor{}
	}
	return t.deps.Color(t.deps.Settings.Current(), t.Item().PlanItem)
}

// Geometry derives all outputs from a single settings read.
func (t *Task) Geometry() (Geometry, error) {
	g, s, err := t.grid()
	if err != nil {
		return Geometry{}, err
	}
	offset := t.offset(g, s)
	item := t.Item()

	var color domain.ItemColor
	if t.deps.Color != nil {
		color = t.deps.Color(s, item.PlanItem)
	}
	return Geometry{
		Offset:   offset,
		Height:   t.height(g, offset),
		Relation: geometry.Classify(t.deps.Clock.Now(), item.StartTime, item.EndTime),
		State:    t.State(),
		Color:    color,
	}, nil
}

// PointerDown starts an interaction on part of the item. Ghost items ignore
// pointer-down; they follow the cursor regardless.
func (t *Task) PointerDown(part Part) error {
	if t.Item().IsGhost {
		return nil
	}
	switch part {
	case PartBottomEdge:
		return t.resize.Start()
	default:
		y, ok := t.deps.Cursor.OffsetY()
		if !ok {
			return ErrNoCursor
		}
		return t.drag.Arm(y)
	}
}

// PointerMove feeds the current cursor position to the active controller.
func (t *Task) PointerMove() error {
	y, ok := t.deps.Cursor.OffsetY()
	if !ok {
		return nil
	}
	g, s, err := t.grid()
	if err != nil {
		return err
	}
	t.drag.Track(y, g.Snap(math.Floor(y)))
	if t.resize.Resizing() {
		t.resize.Track(resizeHeight(g, math.Floor(y)-t.offset(g, s)))
	}
	return nil
}

// PointerUp freezes an active drag or resize at its last tracked position.
// Cursor movement after this no longer moves the item, and the commit uses
// the frozen value. Feed the release position through PointerMove first.
func (t *Task) PointerUp() {
	t.st.release()
}

// HandleMouseUp runs the tap callback for a plain click. A release that ends
// a drag or resize, or any release on a ghost item, is not a tap.
func (t *Task) HandleMouseUp(ctx context.Context) error {
	item := t.Item()
	if item.IsGhost || t.State() != domain.StateIdle {
		return nil
	}
	t.drag.Disarm()
	if err := t.deps.OnMouseUp(ctx, item.PlanItem); err != nil {
		return fmt.Errorf("handling tap on item %s: %w", item.ID, err)
	}
	return nil
}

// ConfirmDrag commits the last tracked start time and adopts the committed
// snapshot on success. It does not read the cursor.
func (t *Task) ConfirmDrag(ctx context.Context) (domain.PlanItem, error) {
	g, s, err := t.grid()
	if err != nil {
		t.st.abort()
		return domain.PlanItem{}, err
	}

	item := t.Item()
	next, err := t.drag.Confirm(ctx, item.PlanItem, g, s.HiddenHoursOffset())
	if err != nil {
		t.deps.Logger.WarnContext(ctx, "item_move_failed", "item_id", item.ID, "error", err.Error())
		return domain.PlanItem{}, err
	}
	t.adopt(next)
	t.deps.Logger.InfoContext(ctx, "item_moved",
		"item_id", next.ID, "from", item.RawStartTime, "to", next.RawStartTime)
	return next, nil
}

// ConfirmResize commits the last tracked duration and adopts the committed
// snapshot on success. It does not read the cursor.
func (t *Task) ConfirmResize(ctx context.Context) (domain.PlanItem, error) {
	g, _, err := t.grid()
	if err != nil {
		t.st.abort()
		return domain.PlanItem{}, err
	}

	item := t.Item()
	next, err := t.resize.Confirm(ctx, item.PlanItem, g)
	if err != nil {
		t.deps.Logger.WarnContext(ctx, "item_resize_failed", "item_id", item.ID, "error", err.Error())
		return domain.PlanItem{}, err
	}
	t.adopt(next)
	t.deps.Logger.InfoContext(ctx, "item_resized",
		"item_id", next.ID, "from_min", item.DurationMinutes, "to_min", next.DurationMinutes)
	return next, nil
}

// Release handles pointer-up: it commits an active resize or drag at its
// tracked position, or otherwise treats the release as a tap.
func (t *Task) Release(ctx context.Context) error {
	t.PointerUp()
	switch t.State() {
	case domain.StateResizing:
		_, err := t.ConfirmResize(ctx)
		return err
	case domain.StateDragging:
		_, err := t.ConfirmDrag(ctx)
		return err
	default:
		return t.HandleMouseUp(ctx)
	}
}

func (t *Task) adopt(next domain.PlanItem) {
	t.mu.Lock()
	t.item.PlanItem = next
	t.mu.Unlock()
}

func (t *Task) grid() (geometry.Grid, domain.Settings, error) {
	s := t.deps.Settings.Current()
	g, err := geometry.GridFor(s)
	if err != nil {
		return geometry.Grid{}, s, fmt.Errorf("deriving geometry: %w", err)
	}
	return g, s, nil
}

func (t *Task) offset(g geometry.Grid, s domain.Settings) float64 {
	item := t.Item()
	dragging := t.drag.Dragging()
	if dragging && t.st.frozen() {
		if off, ok := t.drag.tracked(); ok {
			return off
		}
	}
	if item.IsGhost || dragging {
		if y, ok := t.deps.Cursor.OffsetY(); ok {
			return g.Snap(math.Floor(y))
		}
		if off, ok := t.drag.tracked(); ok && dragging {
			return off
		}
	}
	return g.PixelsFor(item.StartMinutes) - s.HiddenHoursOffset()
}

func (t *Task) height(g geometry.Grid, offset float64) float64 {
	if t.resize.Resizing() {
		h, tracked := t.resize.tracked()
		if tracked && t.st.frozen() {
			return h
		}
		if y, ok := t.deps.Cursor.OffsetY(); ok && !t.st.frozen() {
			return resizeHeight(g, math.Floor(y)-offset)
		}
		if tracked {
			return h
		}
	}
	return g.PixelsFor(t.Item().DurationMinutes)
}
