package interaction

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
)

// DragController moves an item's start time.
//
// Pointer-down on the body arms the drag; the first move that travels more
// than threshold pixels enters Dragging. Once dragging, release always
// commits, even when the cursor came back to where it started.
type DragController struct {
	st        *interactionState
	onUpdate  UpdateFunc
	threshold float64
}

// Arm records the pointer-down position.
func (d *DragController) Arm(cursorY float64) error {
	d.st.mu.Lock()
	defer d.st.mu.Unlock()
	if d.st.committing || d.st.state != domain.StateIdle {
		return ErrBusy
	}
	d.st.armed = true
	d.st.originY = cursorY
	return nil
}

// Disarm forgets a pointer-down that never turned into a drag.
func (d *DragController) Disarm() {
	d.st.mu.Lock()
	d.st.armed = false
	d.st.mu.Unlock()
}

// Track follows the cursor. snapped is the grid-snapped cursor offset.
func (d *DragController) Track(cursorY, snapped float64) {
	d.st.mu.Lock()
	defer d.st.mu.Unlock()
	if d.st.committing || d.st.released {
		return
	}
	switch {
	case d.st.state == domain.StateDragging:
	case d.st.state == domain.StateIdle && d.st.armed && math.Abs(cursorY-d.st.originY) > d.threshold:
		d.st.state = domain.StateDragging
		d.st.armed = false
	default:
		return
	}
	d.st.offset = snapped
	d.st.hasOffset = true
}

// Dragging reports whether a drag is in progress, including while its
// commit is being awaited.
func (d *DragController) Dragging() bool {
	return d.st.current() == domain.StateDragging
}

func (d *DragController) tracked() (float64, bool) {
	d.st.mu.Lock()
	defer d.st.mu.Unlock()
	return d.st.offset, d.st.hasOffset
}

// Confirm commits the last tracked offset as a new start time. It waits for
// onUpdate and returns to Idle afterwards whether or not onUpdate failed.
func (d *DragController) Confirm(ctx context.Context, item domain.PlanItem, g geometry.Grid, hiddenOffset float64) (domain.PlanItem, error) {
	if err := d.st.beginCommit(domain.StateDragging, ErrNotDragging); err != nil {
		return domain.PlanItem{}, err
	}
	defer d.st.finish()

	offset, ok := d.tracked()
	if !ok {
		offset = g.PixelsFor(item.StartMinutes) - hiddenOffset
	}
	minutes := clampStart(g.MinutesAt(offset+hiddenOffset), item.DurationMinutes)

	next, err := item.WithStartMinutes(minutes)
	if err != nil {
		return domain.PlanItem{}, fmt.Errorf("moving item %s: %w", item.ID, err)
	}
	if err := d.onUpdate(ctx, next); err != nil {
		return domain.PlanItem{}, fmt.Errorf("committing move of item %s: %w", item.ID, err)
	}
	return next, nil
}

// clampStart keeps a moved item inside the day.
func clampStart(minutes, duration int) int {
	latest := domain.MinutesPerDay - duration
	if latest < 0 {
		latest = 0
	}
	if minutes > latest {
		minutes = latest
	}
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}
