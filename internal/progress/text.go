package progress

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// EllipsisLimit is how many characters of an item title the status line shows.
const EllipsisLimit = 15

// Ellipsis truncates s to limit cells, appending "..." when it cut anything.
// The tail does not count toward limit.
func Ellipsis(s string, limit int) string {
	if ansi.PrintableRuneWidth(s) <= limit {
		return s
	}
	return truncate.String(s, uint(limit)) + "..."
}

// MinutesText renders a minutes-until count. Zero shows as "1 min" because
// the next item starts within the current minute.
func MinutesText(minutes int) string {
	if minutes <= 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", minutes)
}

// StatusText is the one-line status: the end label when nothing is in
// progress, "Now/Next" lines when enabled, otherwise the minutes left.
func StatusText(snap Snapshot, s domain.Settings) string {
	if snap.Current == nil {
		return s.EndLabel
	}
	if !s.NowAndNextInStatusBar {
		return fmt.Sprintf("Minutes left: %d", snap.MinutesLeft)
	}
	parts := []string{fmt.Sprintf("Now: %s %s", snap.Current.RawStartTime, Ellipsis(snap.Current.Text, EllipsisLimit))}
	if snap.Next != nil {
		parts = append(parts, fmt.Sprintf("Next: %s %s", snap.Next.RawStartTime, Ellipsis(snap.Next.Text, EllipsisLimit)))
	}
	return strings.Join(parts, "  ")
}

// CardText returns the detailed current and next lines. next is empty when
// there is no following item.
func CardText(snap Snapshot) (current, next string) {
	if snap.Current == nil {
		return "", ""
	}
	current = fmt.Sprintf("Current Task (%.0f%% complete): %s", snap.ClampedPercent(), timeAndText(*snap.Current))
	if snap.Next != nil {
		next = fmt.Sprintf("%s: %s", nextHeading(snap), timeAndText(*snap.Next))
	}
	return current, next
}

func nextHeading(snap Snapshot) string {
	return fmt.Sprintf("Next Task (in %s)", MinutesText(snap.MinutesUntilNext))
}

func timeAndText(item domain.PlanItem) string {
	return item.RawStartTime + " " + item.Text
}
