package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a horizontal bar like [████░░░░] 45% for a
// fraction pct in [0,1]. Values outside that range are clamped.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	// An item in progress turns from green to yellow to red as it runs out.
	style := StyleGreen
	if pct >= 0.9 {
		style = StyleRed
	} else if pct >= 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

var pieGlyphs = []string{"○", "◔", "◑", "◕", "●"}

// RenderCircle renders a pie glyph and percentage, the compact form used
// when circular progress is enabled.
func RenderCircle(pct float64) string {
	pct = clampUnit(pct)
	idx := int(pct*float64(len(pieGlyphs)-1) + 0.5)
	return fmt.Sprintf("%s %.0f%%", StyleGreen.Render(pieGlyphs[idx]), pct*100)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
