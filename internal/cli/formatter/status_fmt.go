package formatter

import (
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/progress"
)

// FormatProgress renders the progress indicator in the configured style.
func FormatProgress(snap progress.Snapshot, s domain.Settings, width int) string {
	if snap.Current == nil {
		return ""
	}
	if s.CircularProgress {
		return RenderCircle(snap.ClampedPercent() / 100)
	}
	return RenderProgress(snap.ClampedPercent()/100, width)
}

// FormatStatusBar renders the one-line status bar.
func FormatStatusBar(snap progress.Snapshot, s domain.Settings) string {
	text := progress.StatusText(snap, s)
	if snap.Current == nil {
		return StyleDim.Render(text)
	}
	return StyleFg.Render(text) + "  " + FormatProgress(snap, s, 10)
}

// FormatStatus renders the detailed status card for the status command.
func FormatStatus(snap progress.Snapshot, s domain.Settings) string {
	if snap.Current == nil {
		return RenderBox("Status", Dim(s.EndLabel)) + "\n"
	}

	var b strings.Builder
	current, next := progress.CardText(snap)
	b.WriteString(StyleGreen.Render(current))
	b.WriteString("\n")
	b.WriteString(FormatProgress(snap, s, 30))
	if next != "" {
		b.WriteString("\n\n")
		b.WriteString(StyleBlue.Render(next))
	}
	b.WriteString("\n\n")
	b.WriteString(Dim(progress.StatusText(snap, s)))
	return RenderBox("Status", b.String()) + "\n"
}
