package ui

import "github.com/charmbracelet/bubbles/key"

type formKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Complete key.Binding
	Cancel   key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / create"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete tag / next field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp lists the bindings shown under the form
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.Prev, k.Cancel}
}
