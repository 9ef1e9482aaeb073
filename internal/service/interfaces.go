package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/progress"
)

type PlanService interface {
	// AddItem creates an item on day. A non-positive duration falls back to
	// the configured default duration.
	AddItem(ctx context.Context, day time.Time, startMinutes, durationMinutes int, text string) (domain.PlanItem, error)
	GetItem(ctx context.Context, id string) (domain.PlanItem, error)
	ListDay(ctx context.Context, day time.Time) ([]domain.PlanItem, error)
	// UpdateItem persists a committed snapshot. It is the sink for timeline
	// drag and resize commits.
	UpdateItem(ctx context.Context, item domain.PlanItem) error
	Move(ctx context.Context, id string, startMinutes int) (domain.PlanItem, error)
	Resize(ctx context.Context, id string, durationMinutes int) (domain.PlanItem, error)
	Rename(ctx context.Context, id, text string) (domain.PlanItem, error)
	Delete(ctx context.Context, id string) error
	// ShiftFrom moves every item on day starting at or after fromMinutes by
	// deltaMinutes, all or nothing.
	ShiftFrom(ctx context.Context, day time.Time, fromMinutes, deltaMinutes int) ([]domain.PlanItem, error)
	Overlaps(ctx context.Context, item domain.PlanItem) ([]domain.PlanItem, error)
}

type StatusService interface {
	// Status evaluates the plan of now's day at now, with no remembered
	// current item.
	Status(ctx context.Context, now time.Time) (progress.Snapshot, []domain.PlanItem, error)
}

type SettingsService interface {
	// Load overlays the persisted settings, if any, on base.
	Load(ctx context.Context, base domain.Settings) (domain.Settings, error)
	// Save validates, persists and publishes s.
	Save(ctx context.Context, s domain.Settings) error
}
