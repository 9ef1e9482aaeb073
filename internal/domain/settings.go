package domain

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Settings is the live planner configuration. Geometry reads the current
// value at derivation time and never caches it across ticks.
type Settings struct {
	// ZoomLevel is the vertical scale in pixels per minute.
	ZoomLevel       float64
	SnapStepMinutes int

	// StartHour and EndHour bound the visible part of the day. Hours before
	// StartHour are collapsed and subtracted from every offset.
	StartHour int
	EndHour   int

	DefaultDurationMinutes int

	// Status bar
	EndLabel              string
	NowAndNextInStatusBar bool
	CircularProgress      bool
	ShowTaskNotification  bool

	// Colour enrichment
	TimelineColored    bool
	TimelineStartColor string
	TimelineEndColor   string
}

// DefaultSettings returns settings tuned for a terminal timeline where one
// row is one pixel.
func DefaultSettings() Settings {
	return Settings{
		ZoomLevel:              0.2,
		SnapStepMinutes:        15,
		StartHour:              6,
		EndHour:                23,
		DefaultDurationMinutes: 30,
		EndLabel:               "All done",
		NowAndNextInStatusBar:  false,
		CircularProgress:       false,
		ShowTaskNotification:   true,
		TimelineColored:        false,
		TimelineStartColor:     "#83a598",
		TimelineEndColor:       "#d3869b",
	}
}

// Validate rejects settings that would corrupt geometry.
func (s Settings) Validate() error {
	if s.ZoomLevel <= 0 || math.IsNaN(s.ZoomLevel) || math.IsInf(s.ZoomLevel, 0) {
		return fmt.Errorf("zoom level %v: %w", s.ZoomLevel, ErrInvalidZoom)
	}
	if s.SnapStepMinutes <= 0 {
		return fmt.Errorf("snap step %d: %w", s.SnapStepMinutes, ErrInvalidSnapStep)
	}
	if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
		return fmt.Errorf("hours %d-%d: %w", s.StartHour, s.EndHour, ErrInvalidHours)
	}
	if s.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("default duration %d: %w", s.DefaultDurationMinutes, ErrInvalidDuration)
	}
	for _, c := range []string{s.TimelineStartColor, s.TimelineEndColor} {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("colour %q: %w", c, ErrInvalidColor)
		}
	}
	return nil
}

// HiddenHoursOffset is the pixel height of the collapsed range before
// StartHour. It is never negative for valid settings.
func (s Settings) HiddenHoursOffset() float64 {
	return float64(s.StartHour*60) * s.ZoomLevel
}

// VisibleHeight is the pixel height of the visible part of the day.
func (s Settings) VisibleHeight() float64 {
	return float64((s.EndHour-s.StartHour)*60) * s.ZoomLevel
}
