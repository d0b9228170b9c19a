package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NodeID identifies a menu entry. It is the registry key and the target of
// every focus and submenu-open toggle.
type NodeID string

// ActionKind selects how an activated item is executed.
type ActionKind string

const (
	ActionNone  ActionKind = ""
	ActionTmux  ActionKind = "tmux"
	ActionShell ActionKind = "run"
	ActionPrint ActionKind = "print"
)

// Action describes the work performed when an item is activated.
type Action struct {
	Kind     ActionKind
	Command  string
	KeepOpen bool
}

// Item represents one interactive menu entry.
type Item struct {
	Node    NodeID
	Label   string
	Key     string
	Submenu bool
	Group   bool
	Columns int
	// Children holds nested entries; present for submenus and groups only.
	Children *Registry
	// Position runs before the submenu is marked open so the host can place it.
	Position func()
	// Shortcut receives every dispatched key event and acts on its own match.
	Shortcut func(tea.KeyMsg)
	Action   Action
}

// Stride returns the grid column stride used for vertical movement inside a group.
func (i *Item) Stride() int {
	if i == nil || i.Columns <= 0 {
		return 1
	}
	return i.Columns
}

// HasChildren reports whether the item owns at least one nested entry.
func (i *Item) HasChildren() bool {
	return i != nil && (i.Submenu || i.Group) && i.Children != nil && i.Children.Len() > 0
}

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Node   NodeID
	Info   string
	Output string
	Quit   bool
	Err    error
}
