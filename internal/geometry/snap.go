package geometry

import (
	"fmt"
	"math"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Grid maps between pixels and minutes for one zoom level and snap step.
// A Grid can only be built through NewGrid, so its spacing is always positive.
type Grid struct {
	zoom float64
	step int
}

// NewGrid validates zoom (pixels per minute) and step (minutes per grid
// line). Invalid values are rejected, never clamped.
func NewGrid(zoomLevel float64, stepMinutes int) (Grid, error) {
	if zoomLevel <= 0 || math.IsNaN(zoomLevel) || math.IsInf(zoomLevel, 0) {
		return Grid{}, fmt.Errorf("zoom level %v: %w", zoomLevel, domain.ErrInvalidZoom)
	}
	if stepMinutes <= 0 {
		return Grid{}, fmt.Errorf("snap step %d: %w", stepMinutes, domain.ErrInvalidSnapStep)
	}
	return Grid{zoom: zoomLevel, step: stepMinutes}, nil
}

// GridFor builds the grid described by the current settings.
func GridFor(s domain.Settings) (Grid, error) {
	return NewGrid(s.ZoomLevel, s.SnapStepMinutes)
}

func (g Grid) StepMinutes() int { return g.step }

// Spacing is the pixel distance between two grid lines.
func (g Grid) Spacing() float64 {
	return float64(g.step) * g.zoom
}

// Snap moves px down to the grid line at or above it, so a dragged start
// time never lands later than the cursor.
func (g Grid) Snap(px float64) float64 {
	sp := g.Spacing()
	return math.Floor(px/sp) * sp
}

// RoundToStep rounds a pixel length to the nearest whole number of steps.
func (g Grid) RoundToStep(px float64) float64 {
	sp := g.Spacing()
	return math.Round(px/sp) * sp
}

// PixelsFor converts minutes to pixels.
func (g Grid) PixelsFor(minutes int) float64 {
	return float64(minutes) * g.zoom
}

// MinutesAt converts a pixel distance to the nearest whole minute.
func (g Grid) MinutesAt(px float64) int {
	return int(math.Round(px / g.zoom))
}
