package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/settings"
	"github.com/google/uuid"
)

type planService struct {
	items    repository.PlanItemRepo
	settings settings.View
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(
	items repository.PlanItemRepo,
	view settings.View,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		items:    items,
		settings: view,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) AddItem(ctx context.Context, day time.Time, startMinutes, durationMinutes int, text string) (item domain.PlanItem, err error) {
	defer s.observe(ctx, "add-item", time.Now(), &err, map[string]any{"start_min": startMinutes})()

	if durationMinutes <= 0 {
		durationMinutes = s.settings.Current().DefaultDurationMinutes
	}
	item, err = domain.NewPlanItem(uuid.New().String(), day, startMinutes, durationMinutes, text)
	if err != nil {
		return domain.PlanItem{}, fmt.Errorf("building plan item: %w", err)
	}
	if err = s.items.Create(ctx, item); err != nil {
		return domain.PlanItem{}, err
	}
	return item, nil
}

func (s *planService) GetItem(ctx context.Context, id string) (domain.PlanItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *planService) ListDay(ctx context.Context, day time.Time) ([]domain.PlanItem, error) {
	return s.items.ListByDay(ctx, day)
}

func (s *planService) UpdateItem(ctx context.Context, item domain.PlanItem) (err error) {
	defer s.observe(ctx, "update-item", time.Now(), &err, map[string]any{
		"item_id":      item.ID,
		"start_min":    item.StartMinutes,
		"duration_min": item.DurationMinutes,
	})()

	if err = item.Validate(); err != nil {
		return err
	}
	return s.items.Update(ctx, item)
}

func (s *planService) Move(ctx context.Context, id string, startMinutes int) (domain.PlanItem, error) {
	return s.modify(ctx, "move-item", id, func(item domain.PlanItem) (domain.PlanItem, error) {
		return item.WithStartMinutes(startMinutes)
	})
}

func (s *planService) Resize(ctx context.Context, id string, durationMinutes int) (domain.PlanItem, error) {
	return s.modify(ctx, "resize-item", id, func(item domain.PlanItem) (domain.PlanItem, error) {
		return item.WithDurationMinutes(durationMinutes)
	})
}

func (s *planService) Rename(ctx context.Context, id, text string) (domain.PlanItem, error) {
	return s.modify(ctx, "rename-item", id, func(item domain.PlanItem) (domain.PlanItem, error) {
		return item.WithText(text), nil
	})
}

// modify reads, edits and writes one item inside a transaction.
func (s *planService) modify(ctx context.Context, name, id string, edit func(domain.PlanItem) (domain.PlanItem, error)) (next domain.PlanItem, err error) {
	defer s.observe(ctx, name, time.Now(), &err, map[string]any{"item_id": id})()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLitePlanItemRepo(tx)

		item, err := txItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		next, err = edit(item)
		if err != nil {
			return err
		}
		return txItems.Update(ctx, next)
	})
	if err != nil {
		return domain.PlanItem{}, err
	}
	return next, nil
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete-item", time.Now(), &err, map[string]any{"item_id": id})()
	return s.items.Delete(ctx, id)
}

func (s *planService) ShiftFrom(ctx context.Context, day time.Time, fromMinutes, deltaMinutes int) (shifted []domain.PlanItem, err error) {
	fields := map[string]any{"from_min": fromMinutes, "delta_min": deltaMinutes}
	defer s.observe(ctx, "shift-items", time.Now(), &err, fields)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLitePlanItemRepo(tx)

		items, err := txItems.ListByDay(ctx, day)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.StartMinutes < fromMinutes {
				continue
			}
			next, err := item.WithStartMinutes(item.StartMinutes + deltaMinutes)
			if err != nil {
				return fmt.Errorf("shifting item %s: %w", item.ID, err)
			}
			if err := txItems.Update(ctx, next); err != nil {
				return err
			}
			shifted = append(shifted, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["count"] = len(shifted)
	return shifted, nil
}

func (s *planService) Overlaps(ctx context.Context, item domain.PlanItem) ([]domain.PlanItem, error) {
	return s.items.ListOverlapping(ctx, item)
}

// observe reports a use case to the observer when the returned func runs.
func (s *planService) observe(ctx context.Context, name string, startedAt time.Time, errp *error, fields map[string]any) func() {
	return func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   *errp == nil,
			Err:       *errp,
			Fields:    fields,
		})
	}
}
