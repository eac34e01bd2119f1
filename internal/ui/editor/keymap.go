package editor

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	edit   key.Binding
	retype key.Binding
	add    key.Binding
	remove key.Binding
	fold   key.Binding
	commit key.Binding
	cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:   key.NewBinding(key.WithKeys("up", "k")),
		down: key.NewBinding(key.WithKeys("down", "j")),
		edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "name/add"),
		),
		retype: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add field"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		fold: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fold"),
		),
		commit: key.NewBinding(key.WithKeys("enter")),
		cancel: key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.edit,
		k.retype,
		k.add,
		k.remove,
		k.fold,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}
