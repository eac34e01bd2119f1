package ui

import "github.com/charmbracelet/bubbles/key"

// main
type keyMap struct {
	quit   key.Binding
	submit key.Binding
	toggle key.Binding
	scroll key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "draft/document"),
		),
		scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll preview"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.submit,
		k.toggle,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}

// helpKeys renders the focused sub-model's bindings before the main ones.
type helpKeys struct {
	sub  []key.Binding
	main keyMap
}

func (k helpKeys) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, k.sub...), k.main.ShortHelp()...)
}

func (k helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}
