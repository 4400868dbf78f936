package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Theme  key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right", "next")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Theme:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset to default")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// screenKeys adapts the bindings relevant to one screen to help.KeyMap.
type screenKeys struct {
	short []key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding { return s.short }

func (s screenKeys) FullHelp() [][]key.Binding { return [][]key.Binding{s.short} }

func (m *Model) helpKeys() screenKeys {
	k := m.keys
	switch m.screen {
	case screenMenu:
		return screenKeys{[]key.Binding{k.Up, k.Down, k.Select, k.Theme, k.Quit}}
	case screenCustomTime:
		return screenKeys{[]key.Binding{k.Select, k.Back, k.Quit}}
	case screenCustomKeys:
		return screenKeys{[]key.Binding{k.Select, k.Reset, k.Back, k.Quit}}
	case screenGame:
		return screenKeys{[]key.Binding{k.Back, k.Theme, k.Quit}}
	default:
		return screenKeys{[]key.Binding{k.Left, k.Right, k.Select, k.Theme, k.Quit}}
	}
}
