package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/settings"
)

type settingsService struct {
	repo     repository.SettingsRepo
	store    *settings.Store
	observer UseCaseObserver
}

// NewSettingsService persists settings through repo and publishes saved
// values to store. store may be nil.
func NewSettingsService(repo repository.SettingsRepo, store *settings.Store, observers ...UseCaseObserver) SettingsService {
	return &settingsService{repo: repo, store: store, observer: useCaseObserverOrNoop(observers)}
}

func (s *settingsService) Load(ctx context.Context, base domain.Settings) (domain.Settings, error) {
	saved, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading saved settings: %w", err)
	}
	if err := saved.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("saved settings: %w", err)
	}
	return saved, nil
}

func (s *settingsService) Save(ctx context.Context, next domain.Settings) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-settings",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"zoom": next.ZoomLevel, "snap_min": next.SnapStepMinutes},
		})
	}()

	if err = next.Validate(); err != nil {
		return err
	}
	if err = s.repo.Upsert(ctx, next); err != nil {
		return err
	}
	if s.store != nil {
		return s.store.Set(next)
	}
	return nil
}
