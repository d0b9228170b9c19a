package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

// MatchKeys offers msg to the shortcut matcher of every record reachable from
// the current list, including entries of submenus that are not open. Each
// matcher decides on its own whether the key is a hit.
func (e *Engine) MatchKeys(msg tea.KeyMsg) int {
	visited := 0
	var walk func(items []*menu.Item)
	walk = func(items []*menu.Item) {
		for _, item := range items {
			if item.Children != nil && (item.Submenu || item.Group) {
				walk(item.Children.Values())
			}
			if item.Shortcut != nil {
				item.Shortcut(msg)
			}
			visited++
		}
	}
	walk(e.CurrentItems())
	return visited
}
