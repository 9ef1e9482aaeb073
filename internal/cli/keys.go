package cli

import "github.com/charmbracelet/bubbles/key"

type timelineKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Now     key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Delete  key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newTimelineKeyMap() timelineKeyMap {
	return timelineKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Now:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "jump to now")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete selected")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Now, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Now},
		{k.ZoomIn, k.ZoomOut},
		{k.Delete, k.Cancel, k.Help, k.Quit},
	}
}
