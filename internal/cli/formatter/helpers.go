package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// DayLabel names day relative to now ("Today", "Tomorrow", "Yesterday").
// Other days get an empty label.
func DayLabel(day, now time.Time) string {
	diff := domain.DayStart(day).Sub(domain.DayStart(now))
	days := int(math.Round(diff.Hours() / 24))

	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	default:
		return ""
	}
}

// DayTitle is the long date with its relative label, e.g.
// "Sun 15 Jun 2025 (Today)".
func DayTitle(day, now time.Time) string {
	title := day.Format("Mon 2 Jan 2006")
	if label := DayLabel(day, now); label != "" {
		title += " (" + label + ")"
	}
	return title
}
