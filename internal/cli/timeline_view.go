package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
	"github.com/alexanderramin/dayplan/internal/interaction"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const gutterWidth = 7

type block struct {
	top, rows int
	geo       interaction.Geometry
	item      domain.PlacedPlanItem
}

func (m *timelineModel) bodyHeight() int {
	if m.height == 0 {
		return 24
	}
	return max(m.height-headerRows-footerRows, 1)
}

func (m *timelineModel) View() string {
	s := m.app.Store.Current()
	width := max(m.width, 40)

	var sections []string
	sections = append(sections, m.renderHeader(s, width))

	g, err := geometry.GridFor(s)
	if err != nil {
		sections = append(sections, formatter.StyleRed.Render(err.Error()))
	} else {
		sections = append(sections, m.renderBody(g, s, width))
	}

	sections = append(sections, m.renderFooter(s, width))
	return strings.Join(sections, "\n")
}

func (m *timelineModel) renderHeader(s domain.Settings, width int) string {
	title := formatter.StylePurple.Render("dayplan") + "  " +
		formatter.Bold(formatter.DayTitle(m.day, m.app.clock().Now())) + "  " +
		formatter.Dim(fmt.Sprintf("zoom %g · snap %dm", s.ZoomLevel, s.SnapStepMinutes))
	return title + "\n" + formatter.Dim(strings.Repeat("─", width))
}

func (m *timelineModel) renderBody(g geometry.Grid, s domain.Settings, width int) string {
	hidden := s.HiddenHoursOffset()

	hourRows := make(map[int]int, s.EndHour-s.StartHour+1)
	for h := s.StartHour; h <= s.EndHour; h++ {
		hourRows[int(math.Round(g.PixelsFor(h*60)-hidden))] = h
	}

	nowRow := -1
	if now := m.app.clock().Now(); domain.DayStart(now).Equal(m.day) {
		nowRow = int(math.Floor(g.PixelsFor(now.Hour()*60+now.Minute()) - hidden))
	}

	blocks := m.blocks()
	blockWidth := max(width-gutterWidth, 10)

	bodyH := m.bodyHeight()
	lines := make([]string, 0, bodyH)
	for row := m.scroll; row < m.scroll+bodyH; row++ {
		gutter := strings.Repeat(" ", gutterWidth)
		if h, ok := hourRows[row]; ok {
			gutter = formatter.Dim(fmt.Sprintf("%02d:00  ", h%24))
		}

		if b := blockAt(blocks, row); b != nil {
			lines = append(lines, gutter+m.renderBlockRow(b, row, blockWidth))
			continue
		}
		if row == nowRow {
			lines = append(lines, gutter+formatter.StyleRed.Render(strings.Repeat("─", blockWidth)))
			continue
		}
		lines = append(lines, gutter)
	}
	return strings.Join(lines, "\n")
}

func (m *timelineModel) renderBlockRow(b *block, row, width int) string {
	color := b.geo.Color
	if color.Background == "" {
		color = formatter.DefaultItemColor
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(color.Background)).
		Foreground(lipgloss.Color(color.Foreground)).
		Width(width)

	switch {
	case b.item.IsGhost:
		style = style.Italic(true).Faint(true)
	case b.geo.State != domain.StateIdle:
		style = style.Italic(true)
	case b.geo.Relation == domain.RelationPast:
		style = style.Faint(true)
	}
	if b.item.ID != "" && b.item.ID == m.selected {
		style = style.Bold(true)
	}

	var text string
	switch row {
	case b.top:
		marker := " "
		if b.geo.Relation == domain.RelationPresent && !b.item.IsGhost {
			marker = "●"
		}
		text = fmt.Sprintf("%s %s %s", marker, b.item.RawStartTime, b.item.Text)
		if b.rows == 1 {
			text += "  " + formatter.FormatMinutes(b.item.DurationMinutes)
		}
	case b.top + 1:
		text = "  " + formatter.FormatMinutes(b.item.DurationMinutes)
	}
	if b.rows > 1 && row == b.top+b.rows-1 {
		text = strings.Repeat("╌", width)
	}
	return style.Render(truncate.StringWithTail(text, uint(width), "…"))
}

func (m *timelineModel) renderFooter(s domain.Settings, width int) string {
	status := formatter.FormatStatusBar(m.snap, s)
	if m.notice != "" {
		status = formatter.StyleYellow.Render(m.notice) + "  " + status
	}
	if m.err != nil {
		status = formatter.StyleRed.Render("error: "+m.err.Error()) + "  " + status
	}
	return formatter.Dim(strings.Repeat("─", width)) + "\n" +
		status + "\n" +
		m.help.View(m.keys)
}

// blocks returns the drawable blocks, ghost last so it paints on top.
func (m *timelineModel) blocks() []block {
	tasks := m.tasks
	if m.ghost != nil {
		tasks = append(tasks[:len(tasks):len(tasks)], m.ghost)
	}
	out := make([]block, 0, len(tasks))
	for _, t := range tasks {
		geo, err := t.Geometry()
		if err != nil {
			continue
		}
		top, rows := blockRows(geo)
		out = append(out, block{top: top, rows: rows, geo: geo, item: t.Item()})
	}
	return out
}

func blockAt(blocks []block, row int) *block {
	for i := len(blocks) - 1; i >= 0; i-- {
		if b := &blocks[i]; row >= b.top && row < b.top+b.rows {
			return b
		}
	}
	return nil
}
