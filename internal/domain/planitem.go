package domain

import (
	"fmt"
	"time"
)

// RawTimeLayout is the display layout of PlanItem.RawStartTime.
const RawTimeLayout = "15:04"

// PlanItem is an immutable snapshot of one time-boxed entry on the day
// timeline. Edits produce a new value via the With* methods.
type PlanItem struct {
	ID              string
	StartTime       time.Time
	EndTime         time.Time
	StartMinutes    int
	DurationMinutes int
	Text            string
	RawStartTime    string
}

// PlacedPlanItem is a PlanItem positioned on the timeline. Ghost items are
// uncommitted previews that track the live cursor instead of their own time.
type PlacedPlanItem struct {
	PlanItem
	IsGhost bool
}

// NewPlanItem builds a PlanItem starting startMinutes after midnight of day.
func NewPlanItem(id string, day time.Time, startMinutes, durationMinutes int, text string) (PlanItem, error) {
	if durationMinutes <= 0 {
		return PlanItem{}, fmt.Errorf("duration %d: %w", durationMinutes, ErrInvalidDuration)
	}
	if startMinutes < 0 || startMinutes >= MinutesPerDay {
		return PlanItem{}, fmt.Errorf("start minute %d: %w", startMinutes, ErrInvalidStart)
	}
	start := DayStart(day).Add(time.Duration(startMinutes) * time.Minute)
	return PlanItem{
		ID:              id,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMinutes) * time.Minute),
		StartMinutes:    startMinutes,
		DurationMinutes: durationMinutes,
		Text:            text,
		RawStartTime:    start.Format(RawTimeLayout),
	}, nil
}

// DayStart returns local midnight of t's calendar day in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Day returns midnight of the day the item belongs to.
func (p PlanItem) Day() time.Time {
	return p.StartTime.Add(-time.Duration(p.StartMinutes) * time.Minute)
}

// WithStartMinutes returns a copy moved to a new start minute with the
// duration preserved.
func (p PlanItem) WithStartMinutes(startMinutes int) (PlanItem, error) {
	return NewPlanItem(p.ID, p.Day(), startMinutes, p.DurationMinutes, p.Text)
}

// WithDurationMinutes returns a copy with the same start and a new duration.
func (p PlanItem) WithDurationMinutes(durationMinutes int) (PlanItem, error) {
	return NewPlanItem(p.ID, p.Day(), p.StartMinutes, durationMinutes, p.Text)
}

// WithText returns a copy with replaced text.
func (p PlanItem) WithText(text string) PlanItem {
	p.Text = text
	return p
}

// Validate checks the start/end/duration invariants.
func (p PlanItem) Validate() error {
	if !p.EndTime.After(p.StartTime) {
		return fmt.Errorf("item %q ends before it starts: %w", p.ID, ErrInvalidDuration)
	}
	if got := int(p.EndTime.Sub(p.StartTime) / time.Minute); got != p.DurationMinutes {
		return fmt.Errorf("item %q duration %d does not match span %d: %w", p.ID, p.DurationMinutes, got, ErrInvalidDuration)
	}
	if p.StartMinutes < 0 || p.StartMinutes >= MinutesPerDay {
		return fmt.Errorf("item %q start minute %d: %w", p.ID, p.StartMinutes, ErrInvalidStart)
	}
	return nil
}

// Contains reports whether now falls in [StartTime, EndTime).
func (p PlanItem) Contains(now time.Time) bool {
	return !now.Before(p.StartTime) && now.Before(p.EndTime)
}
