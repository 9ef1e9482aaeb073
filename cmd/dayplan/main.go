package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/interaction"
	"github.com/alexanderramin/dayplan/internal/progress"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/alexanderramin/dayplan/internal/settings"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Paths: env vars (may start with ~) or defaults under ~/.dayplan
	dbPath, err := pathFromEnv("DAYPLAN_DB", "dayplan.db")
	if err != nil {
		return err
	}
	configPath, err := pathFromEnv("DAYPLAN_CONFIG", "settings.yaml")
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observers []service.UseCaseObserver
	if os.Getenv("DAYPLAN_LOG_CALLS") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	// Defaults, then the settings file and environment, then the saved row.
	base, err := settings.Load(configPath)
	if err != nil {
		return err
	}
	store, err := settings.NewStore(base)
	if err != nil {
		return err
	}

	itemRepo := repository.NewSQLitePlanItemRepo(database)
	settingsSvc := service.NewSettingsService(repository.NewSQLiteSettingsRepo(database), store, observers...)

	saved, err := settingsSvc.Load(ctx, base)
	if err != nil {
		return fmt.Errorf("loading saved settings: %w", err)
	}
	if err := store.Set(saved); err != nil {
		return fmt.Errorf("applying saved settings: %w", err)
	}
	store.Subscribe(func(s domain.Settings) {
		logger.Debug("settings_changed",
			"zoom", s.ZoomLevel, "snap_minutes", s.SnapStepMinutes,
			"start_hour", s.StartHour, "end_hour", s.EndHour)
	})

	app := &cli.App{
		Plan:     service.NewPlanService(itemRepo, store, db.NewSQLiteUnitOfWork(database), observers...),
		Status:   service.NewStatusService(itemRepo),
		Settings: settingsSvc,
		Store:    store,
		Clock:    interaction.SystemClock{},
		Notifier: progress.LogNotifier{Logger: logger},
		Logger:   logger,
	}

	// Detect interactive terminal so commands can fall back to forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func pathFromEnv(name, file string) (string, error) {
	if v := os.Getenv(name); v != "" {
		p, err := homedir.Expand(v)
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", name, err)
		}
		return p, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".dayplan", file), nil
}
