package formatter

import (
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	lightText = "#ebdbb2"
	darkText  = "#282828"
)

// DefaultItemColor is used when timeline colouring is off.
var DefaultItemColor = domain.ItemColor{Background: "#504945", Foreground: lightText}

// TimelineColor shades an item along a gradient between the configured
// start and end colours by how far into the visible day it starts. It
// satisfies interaction.ColorFunc.
func TimelineColor(s domain.Settings, item domain.PlanItem) domain.ItemColor {
	if !s.TimelineColored {
		return DefaultItemColor
	}
	from, err := colorful.Hex(s.TimelineStartColor)
	if err != nil {
		return DefaultItemColor
	}
	to, err := colorful.Hex(s.TimelineEndColor)
	if err != nil {
		return DefaultItemColor
	}

	span := float64((s.EndHour - s.StartHour) * 60)
	t := 0.0
	if span > 0 {
		t = clampUnit(float64(item.StartMinutes-s.StartHour*60) / span)
	}
	bg := from.BlendLab(to, t).Clamped()

	fg := lightText
	if l, _, _ := bg.Lab(); l > 0.6 {
		fg = darkText
	}
	return domain.ItemColor{Background: bg.Hex(), Foreground: fg}
}
