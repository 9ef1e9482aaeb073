package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/geometry"
)

// FormatPlan renders a day's items as a table with their state at now.
func FormatPlan(day time.Time, items []domain.PlanItem, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Plan for " + DayTitle(day, now)))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(Dim("No items planned."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rel := geometry.Classify(now, item.StartTime, item.EndTime)
		style := RelationStyle(rel)
		rows = append(rows, []string{
			style.Render(item.RawStartTime + "–" + item.EndTime.Format(domain.RawTimeLayout)),
			FormatMinutes(item.DurationMinutes),
			RelationIndicator(rel),
			style.Render(item.Text),
			Dim(ShortID(item.ID)),
		})
	}
	b.WriteString(RenderTable([]string{"TIME", "LENGTH", "", "ITEM", "ID"}, rows))
	return b.String()
}

// FormatItem renders one item on a single line.
func FormatItem(item domain.PlanItem) string {
	return fmt.Sprintf("%s %s %s %s",
		Bold(item.RawStartTime),
		Dim("("+FormatMinutes(item.DurationMinutes)+")"),
		item.Text,
		Dim("["+ShortID(item.ID)+"]"),
	)
}

// FormatMinutes renders a duration such as "1h 30m" or "45m".
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// ShortID is the first eight characters of an ID.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
