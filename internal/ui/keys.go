package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the application shortcuts. Scrolling itself is wheel only.
type keyMap struct {
	Jump       key.Binding
	Toggle     key.Binding
	Momentum   key.Binding
	StopAtPage key.Binding
	EaseBack   key.Binding
	Open       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Jump: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "wheel on/off"),
		),
		Momentum: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "momentum"),
		),
		StopAtPage: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop at page"),
		),
		EaseBack: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "ease back"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "read page"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Toggle, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Open},
		{k.Toggle, k.Momentum, k.StopAtPage, k.EaseBack},
		{k.Help, k.Quit},
	}
}
