package interaction

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
)

// ResizeController changes an item's duration by dragging its bottom edge.
type ResizeController struct {
	st       *interactionState
	onUpdate UpdateFunc
}

// Start enters Resizing.
func (r *ResizeController) Start() error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.committing || r.st.state != domain.StateIdle {
		return ErrBusy
	}
	r.st.state = domain.StateResizing
	r.st.armed = false
	return nil
}

// Resizing reports whether a resize is in progress, including while its
// commit is being awaited.
func (r *ResizeController) Resizing() bool {
	return r.st.current() == domain.StateResizing
}

// Track records the latest displayed height.
func (r *ResizeController) Track(height float64) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.committing || r.st.released || r.st.state != domain.StateResizing {
		return
	}
	r.st.height = height
	r.st.hasHeight = true
}

func (r *ResizeController) tracked() (float64, bool) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.st.height, r.st.hasHeight
}

// Confirm commits the last tracked height as a new duration. It waits for
// onUpdate and returns to Idle afterwards whether or not onUpdate failed.
func (r *ResizeController) Confirm(ctx context.Context, item domain.PlanItem, g geometry.Grid) (domain.PlanItem, error) {
	if err := r.st.beginCommit(domain.StateResizing, ErrNotResizing); err != nil {
		return domain.PlanItem{}, err
	}
	defer r.st.finish()

	height, ok := r.tracked()
	if !ok {
		height = g.PixelsFor(item.DurationMinutes)
	}
	minutes := g.MinutesAt(height)
	if minutes < g.StepMinutes() {
		minutes = g.StepMinutes()
	}

	next, err := item.WithDurationMinutes(minutes)
	if err != nil {
		return domain.PlanItem{}, fmt.Errorf("resizing item %s: %w", item.ID, err)
	}
	if err := r.onUpdate(ctx, next); err != nil {
		return domain.PlanItem{}, fmt.Errorf("committing resize of item %s: %w", item.ID, err)
	}
	return next, nil
}

// resizeHeight is the displayed height for a cursor fromTop pixels below the
// item's top edge: whole grid steps, never less than one step.
func resizeHeight(g geometry.Grid, fromTop float64) float64 {
	return math.Max(g.RoundToStep(fromTop), g.Spacing())
}
