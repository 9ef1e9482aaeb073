package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SQLiteSettingsRepo stores the single persisted settings row.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

// Get returns the stored settings, or ErrNotFound if none were ever saved.
func (r *SQLiteSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	query := `SELECT zoom_level, snap_step_minutes, start_hour, end_hour, default_duration_minutes,
		end_label, now_and_next, circular_progress, show_task_notification,
		timeline_colored, timeline_start_color, timeline_end_color
		FROM planner_settings WHERE id = 'default'`

	var (
		s                                         domain.Settings
		nowNext, circular, notify, timelineColour int
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ZoomLevel,
		&s.SnapStepMinutes,
		&s.StartHour,
		&s.EndHour,
		&s.DefaultDurationMinutes,
		&s.EndLabel,
		&nowNext,
		&circular,
		&notify,
		&timelineColour,
		&s.TimelineStartColor,
		&s.TimelineEndColor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Settings{}, fmt.Errorf("planner settings: %w", ErrNotFound)
		}
		return domain.Settings{}, fmt.Errorf("scanning planner settings: %w", err)
	}
	s.NowAndNextInStatusBar = intToBool(nowNext)
	s.CircularProgress = intToBool(circular)
	s.ShowTaskNotification = intToBool(notify)
	s.TimelineColored = intToBool(timelineColour)
	return s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s domain.Settings) error {
	query := `INSERT OR REPLACE INTO planner_settings (id, zoom_level, snap_step_minutes, start_hour, end_hour,
		default_duration_minutes, end_label, now_and_next, circular_progress, show_task_notification,
		timeline_colored, timeline_start_color, timeline_end_color, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ZoomLevel,
		s.SnapStepMinutes,
		s.StartHour,
		s.EndHour,
		s.DefaultDurationMinutes,
		s.EndLabel,
		boolToInt(s.NowAndNextInStatusBar),
		boolToInt(s.CircularProgress),
		boolToInt(s.ShowTaskNotification),
		boolToInt(s.TimelineColored),
		s.TimelineStartColor,
		s.TimelineEndColor,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting planner settings: %w", err)
	}
	return nil
}
