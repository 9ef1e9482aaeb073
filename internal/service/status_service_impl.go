package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/progress"
	"github.com/alexanderramin/dayplan/internal/repository"
)

type statusService struct {
	items repository.PlanItemRepo
}

func NewStatusService(items repository.PlanItemRepo) StatusService {
	return &statusService{items: items}
}

func (s *statusService) Status(ctx context.Context, now time.Time) (progress.Snapshot, []domain.PlanItem, error) {
	items, err := s.items.ListByDay(ctx, now)
	if err != nil {
		return progress.Snapshot{}, nil, fmt.Errorf("loading plan for %s: %w", now.Format("2006-01-02"), err)
	}
	snap, _ := progress.Evaluate(items, now, progress.State{})
	return snap, items, nil
}
