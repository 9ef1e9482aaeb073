package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// clockValue is a pflag.Value holding a time of day as minutes after
// midnight, written HH:MM.
type clockValue struct {
	minutes int
	set     bool
}

var _ pflag.Value = (*clockValue)(nil)

func (c *clockValue) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func (c *clockValue) Set(s string) error {
	m, err := parseClock(s)
	if err != nil {
		return err
	}
	c.minutes, c.set = m, true
	return nil
}

func (c *clockValue) Type() string { return "HH:MM" }

// dateValue is a pflag.Value holding a calendar day, written YYYY-MM-DD.
type dateValue struct {
	day time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return d.day.Format(dateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	d.day, d.set = t, true
	return nil
}

func (d *dateValue) Type() string { return "YYYY-MM-DD" }

// dayOr returns the flag's day, or today's local midnight by now.
func (d *dateValue) dayOr(now time.Time) time.Time {
	if d.set {
		return d.day
	}
	return domain.DayStart(now)
}

// addDateFlag registers the shared --date flag.
func addDateFlag(fs *pflag.FlagSet, d *dateValue) {
	fs.Var(d, "date", "Day to operate on (default today)")
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
