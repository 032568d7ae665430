package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Active  key.Binding
	Shift   key.Binding
	Disable key.Binding
	Expand  key.Binding
	DPIDown key.Binding
	DPIUp   key.Binding
	Commit  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Active: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "set active"),
		),
		Shift: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "set shift target"),
		),
		Disable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "disable/enable"),
		),
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		DPIDown: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "lower dpi"),
		),
		DPIUp: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "raise dpi"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Active, k.Shift, k.Expand, k.Commit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Active, k.Shift, k.Disable},
		{k.DPIDown, k.DPIUp, k.Commit},
		{k.Help, k.Quit},
	}
}
