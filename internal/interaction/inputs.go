package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Clock supplies the live current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// CursorSource supplies the live vertical pointer offset in timeline pixels.
// ok is false when no pointer interaction is active.
type CursorSource interface {
	OffsetY() (y float64, ok bool)
}

// Cursor is a CursorSource fed by the host's pointer events.
type Cursor struct {
	mu sync.RWMutex
	y  float64
	ok bool
}

func (c *Cursor) OffsetY() (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.y, c.ok
}

// Set records a pointer position.
func (c *Cursor) Set(y float64) {
	c.mu.Lock()
	c.y, c.ok = y, true
	c.mu.Unlock()
}

// Clear marks the cursor absent.
func (c *Cursor) Clear() {
	c.mu.Lock()
	c.ok = false
	c.mu.Unlock()
}

// UpdateFunc persists a committed item snapshot.
type UpdateFunc func(ctx context.Context, item domain.PlanItem) error

// TapFunc handles a plain click on an item.
type TapFunc func(ctx context.Context, item domain.PlanItem) error

// ColorFunc attaches styling to an item. The engine passes the result
// through untouched.
type ColorFunc func(s domain.Settings, item domain.PlanItem) domain.ItemColor
