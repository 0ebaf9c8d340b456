package tui

import "github.com/charmbracelet/bubbles/key"

// sessionKeys holds the key bindings for the transcript view.
type sessionKeys struct {
	Submit     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// ShortHelp returns the bindings for the help bar.
func (k sessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ScrollUp, k.ScrollDown, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k sessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit},
		{k.ScrollUp, k.ScrollDown, k.Quit},
	}
}

// SessionKeyMap returns the key bindings for the transcript view.
func SessionKeyMap() sessionKeys {
	return sessionKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
