package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/alexanderramin/dayplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors domain.Settings for YAML. Pointer fields distinguish
// "unset" from zero values.
type fileConfig struct {
	ZoomLevel              *float64 `yaml:"zoom_level"`
	SnapStepMinutes        *int     `yaml:"snap_step_minutes"`
	StartHour              *int     `yaml:"start_hour"`
	EndHour                *int     `yaml:"end_hour"`
	DefaultDurationMinutes *int     `yaml:"default_duration_minutes"`

	EndLabel              *string `yaml:"end_label"`
	NowAndNextInStatusBar *bool   `yaml:"now_and_next_in_status_bar"`
	CircularProgress      *bool   `yaml:"circular_progress"`
	ShowTaskNotification  *bool   `yaml:"show_task_notification"`

	TimelineColored    *bool   `yaml:"timeline_colored"`
	TimelineStartColor *string `yaml:"timeline_start_color"`
	TimelineEndColor   *string `yaml:"timeline_end_color"`
}

// Load builds settings from defaults, then the YAML file at path (skipped
// when path is empty or the file does not exist), then DAYPLAN_* variables.
// The result is validated.
func Load(path string) (domain.Settings, error) {
	cfg := domain.DefaultSettings()

	if path != "" {
		var err error
		cfg, err = LoadFile(path, cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, err
		}
	}

	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto base.
func LoadFile(path string, base domain.Settings) (domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading settings file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return fc.apply(base), nil
}

func (fc fileConfig) apply(s domain.Settings) domain.Settings {
	s.ZoomLevel = domain.FromPtr(s.ZoomLevel, fc.ZoomLevel)
	s.SnapStepMinutes = domain.FromPtr(s.SnapStepMinutes, fc.SnapStepMinutes)
	s.StartHour = domain.FromPtr(s.StartHour, fc.StartHour)
	s.EndHour = domain.FromPtr(s.EndHour, fc.EndHour)
	s.DefaultDurationMinutes = domain.FromPtr(s.DefaultDurationMinutes, fc.DefaultDurationMinutes)
	s.EndLabel = domain.StrFromPtr(s.EndLabel, fc.EndLabel)
	s.NowAndNextInStatusBar = domain.FromPtr(s.NowAndNextInStatusBar, fc.NowAndNextInStatusBar)
	s.CircularProgress = domain.FromPtr(s.CircularProgress, fc.CircularProgress)
	s.ShowTaskNotification = domain.FromPtr(s.ShowTaskNotification, fc.ShowTaskNotification)
	s.TimelineColored = domain.FromPtr(s.TimelineColored, fc.TimelineColored)
	s.TimelineStartColor = domain.StrFromPtr(s.TimelineStartColor, fc.TimelineStartColor)
	s.TimelineEndColor = domain.StrFromPtr(s.TimelineEndColor, fc.TimelineEndColor)
	return s
}

// ApplyEnv overlays DAYPLAN_* environment variables onto s. Unparseable
// values are ignored.
func ApplyEnv(s domain.Settings) domain.Settings {
	if v := os.Getenv("DAYPLAN_ZOOM_LEVEL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.ZoomLevel = f
		}
	}
	applyIntEnv(&s.SnapStepMinutes, "DAYPLAN_SNAP_STEP_MINUTES")
	applyIntEnv(&s.StartHour, "DAYPLAN_START_HOUR")
	applyIntEnv(&s.EndHour, "DAYPLAN_END_HOUR")
	applyIntEnv(&s.DefaultDurationMinutes, "DAYPLAN_DEFAULT_DURATION_MINUTES")
	if v := os.Getenv("DAYPLAN_END_LABEL"); v != "" {
		s.EndLabel = v
	}
	applyBoolEnv(&s.NowAndNextInStatusBar, "DAYPLAN_NOW_AND_NEXT")
	applyBoolEnv(&s.CircularProgress, "DAYPLAN_CIRCULAR_PROGRESS")
	applyBoolEnv(&s.ShowTaskNotification, "DAYPLAN_SHOW_TASK_NOTIFICATION")
	applyBoolEnv(&s.TimelineColored, "DAYPLAN_TIMELINE_COLORED")
	return s
}

func applyIntEnv(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func applyBoolEnv(dst *bool, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
