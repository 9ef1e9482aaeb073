package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

type PlanItemRepo interface {
	Create(ctx context.Context, item domain.PlanItem) error
	GetByID(ctx context.Context, id string) (domain.PlanItem, error)
	// ListByDay returns the day's items ordered by start time.
	ListByDay(ctx context.Context, day time.Time) ([]domain.PlanItem, error)
	// ListOverlapping returns the items on item's day whose span intersects
	// item's, excluding item itself.
	ListOverlapping(ctx context.Context, item domain.PlanItem) ([]domain.PlanItem, error)
	Update(ctx context.Context, item domain.PlanItem) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (domain.Settings, error)
	Upsert(ctx context.Context, s domain.Settings) error
}
