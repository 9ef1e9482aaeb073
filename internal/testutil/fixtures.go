package testutil

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

// TestDay is the calendar day fixtures are placed on unless overridden.
var TestDay = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

type planItemConfig struct {
	id       string
	day      time.Time
	start    int
	duration int
}

type PlanItemOption func(*planItemConfig)

func WithItemID(id string) PlanItemOption {
	return func(c *planItemConfig) { c.id = id }
}

func WithDay(day time.Time) PlanItemOption {
	return func(c *planItemConfig) { c.day = day }
}

// WithStart places the item at h:m.
func WithStart(h, m int) PlanItemOption {
	return func(c *planItemConfig) { c.start = h*60 + m }
}

func WithDuration(minutes int) PlanItemOption {
	return func(c *planItemConfig) { c.duration = minutes }
}

// NewTestPlanItem returns a valid 30 minute item at 09:00 on TestDay. It
// panics on options that produce an invalid item.
func NewTestPlanItem(text string, opts ...PlanItemOption) domain.PlanItem {
	cfg := planItemConfig{
		id:       uuid.New().String(),
		day:      TestDay,
		start:    9 * 60,
		duration: 30,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	item, err := domain.NewPlanItem(cfg.id, cfg.day, cfg.start, cfg.duration, text)
	if err != nil {
		panic(err)
	}
	return item
}

// At returns h:m on TestDay.
func At(h, m int) time.Time {
	return TestDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}
