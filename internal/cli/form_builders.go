package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dayplanHuhTheme returns a huh theme matching the CLI palette.
func dayplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// addItemInput holds the raw form values for a new item.
type addItemInput struct {
	Title    string
	Start    string
	Duration string
}

func (in addItemInput) parse() (title string, start, duration int, err error) {
	if title = strings.TrimSpace(in.Title); title == "" {
		return "", 0, 0, errors.New("title is required")
	}
	if start, err = parseClock(strings.TrimSpace(in.Start)); err != nil {
		return "", 0, 0, err
	}
	if d := strings.TrimSpace(in.Duration); d != "" {
		if duration, err = strconv.Atoi(d); err != nil {
			return "", 0, 0, errors.New("duration must be a whole number of minutes")
		}
	}
	return title, start, duration, nil
}

// addItemForm collects title, start time and length for `item add`.
func addItemForm(in *addItemInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(validateRequired),
			clockInput("Start (HH:MM)", &in.Start),
			durationInput("Length in minutes (blank for default)", &in.Duration),
		),
	).WithTheme(dayplanHuhTheme()).WithShowHelp(false)
}

func clockInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("09:30").
		Value(value).
		Validate(func(s string) error {
			_, err := parseClock(strings.TrimSpace(s))
			return err
		})
}

func durationInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("30").
		Value(value).
		Validate(validateOptionalPositiveInt)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateOptionalPositiveInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("must be a positive whole number")
	}
	return nil
}
