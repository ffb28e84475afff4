package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the editor TUI.
type KeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	NewNote   key.Binding
	Delete    key.Binding
	ListNotes key.Binding
	Menu      key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.NewNote, k.ListNotes, k.Menu, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.NewNote, k.Delete},
		{k.ListNotes, k.Menu, k.Confirm, k.Back, k.Quit},
	}
}

var keys = KeyMap{
	Prev: key.NewBinding(
		key.WithKeys("ctrl+left", "ctrl+p"),
		key.WithHelp("ctrl+←", "newer note"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+right", "ctrl+n"),
		key.WithHelp("ctrl+→", "older note"),
	),
	NewNote: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "new note"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete note"),
	),
	ListNotes: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "all notes"),
	),
	Menu: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
