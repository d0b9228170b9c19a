package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Search key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "close")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "open")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// footer renders the hint row from the binding help text.
func (k keyMap) footer() string {
	bindings := []key.Binding{k.Down, k.Right, k.Left, k.Select, k.Search, k.Back, k.Quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
