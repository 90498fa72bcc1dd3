package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
	Add      key.Binding
	Done     key.Binding
	Delete   key.Binding
	Later    key.Binding
	Earlier  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Confirm  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
	NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	PrevWeek: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "previous week")),
	NextWeek: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "next week")),
	Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Done:     key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "cycle status")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Later:    key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move day later")),
	Earlier:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move day earlier")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Add, k.Done, k.Later, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today},
		{k.Add, k.Done, k.Delete, k.Later, k.Earlier},
		{k.Help, k.Escape, k.Quit},
	}
}
