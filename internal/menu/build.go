package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Hooks supplies the host side effects attached to built records.
type Hooks struct {
	// Position is called with the submenu record before it is marked open.
	Position func(item *Item)
	// Shortcut fires when a key event matches an entry's key binding.
	Shortcut func(item *Item, msg tea.KeyMsg)
}

// Build converts a validated definition into a registry tree.
func Build(def *Definition, hooks Hooks) *Registry {
	if def == nil {
		return NewRegistry()
	}
	return buildEntries(def.Items, hooks)
}

func buildEntries(entries []EntryDef, hooks Hooks) *Registry {
	reg := NewRegistry()
	for _, entry := range entries {
		reg.Set(buildItem(entry, hooks))
	}
	return reg
}

func buildItem(entry EntryDef, hooks Hooks) *Item {
	item := &Item{
		Node:    NodeID(entry.ID),
		Label:   entry.label(),
		Key:     entry.Key,
		Submenu: entry.IsSubmenu(),
		Group:   entry.IsGroup(),
		Columns: entry.Columns,
		Action:  entry.action(),
	}
	switch {
	case item.Submenu:
		item.Children = buildEntries(entry.Submenu, hooks)
		if hooks.Position != nil {
			item.Position = func() { hooks.Position(item) }
		}
	case item.Group:
		item.Children = buildEntries(entry.Group, hooks)
	}
	if entry.Key != "" && hooks.Shortcut != nil {
		binding := entry.Key
		item.Shortcut = func(msg tea.KeyMsg) {
			if msg.String() == binding {
				hooks.Shortcut(item, msg)
			}
		}
	}
	return item
}
