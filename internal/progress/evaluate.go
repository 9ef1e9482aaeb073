// Package progress finds the item in progress for a given moment and
// derives percent-complete, time-to-next and transition notifications.
package progress

import (
	"math"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// State is the only memory carried between evaluations: the start of the
// last item seen as current.
type State struct {
	LastCurrentStart *time.Time
}

// Snapshot is the full result of one evaluation. It is rebuilt on every
// tick, never patched.
type Snapshot struct {
	Current *domain.PlanItem
	Next    *domain.PlanItem

	// PercentComplete may fall outside [0,100] if clocks drift. Use
	// ClampedPercent for display.
	PercentComplete  float64
	MinutesUntilNext int
	MinutesLeft      int

	NotifyTransition bool
	Ended            bool
}

// ClampedPercent is PercentComplete limited to [0,100].
func (s Snapshot) ClampedPercent() float64 {
	return math.Min(100, math.Max(0, s.PercentComplete))
}

// Evaluate scans items, which must be ordered by start time, for the one in
// progress at now. It returns the snapshot and the state to pass to the next
// call.
func Evaluate(items []domain.PlanItem, now time.Time, prev State) (Snapshot, State) {
	idx := -1
	for i := range items {
		if items[i].Contains(now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Snapshot{Ended: true}, prev
	}

	current := items[idx]
	snap := Snapshot{
		Current:         &current,
		PercentComplete: float64(wholeMinutes(now.Sub(current.StartTime))) / (float64(current.DurationMinutes) / 100),
		MinutesLeft:     wholeMinutes(current.EndTime.Sub(now)),
	}
	if idx+1 < len(items) {
		next := items[idx+1]
		snap.Next = &next
		snap.MinutesUntilNext = wholeMinutes(next.StartTime.Sub(now))
	}

	start := current.StartTime
	snap.NotifyTransition = prev.LastCurrentStart != nil && !prev.LastCurrentStart.Equal(start)
	return snap, State{LastCurrentStart: &start}
}

func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}
