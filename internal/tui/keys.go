package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings of the invoice screen
type KeyMap struct {
	Submit   key.Binding
	Download key.Binding
	Dismiss  key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is used by New
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "generate"),
	),
	Download: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "download PDF"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "up"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("pgdown", "down"),
		key.WithHelp("pgdown", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Submit, k.Download, k.Dismiss, k.ScrollDn, k.Quit}
}
