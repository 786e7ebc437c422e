package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Compose key.Binding
	Submit  key.Binding
	Leave   key.Binding
	Quit    key.Binding

	composing bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done/undo")),
		Delete:  key.NewBinding(key.WithKeys("x", "d", "delete"), key.WithHelp("x", "delete")),
		Compose: key.NewBinding(key.WithKeys("a", "i", "tab"), key.WithHelp("a", "new task")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Leave:   key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "list")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	if k.composing {
		return []key.Binding{k.Submit, k.Leave, k.quitWhileComposing()}
	}
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, k.Compose, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// "q" types a letter while the input has focus.
func (k keyMap) quitWhileComposing() key.Binding {
	return key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
}
