package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/focus"
	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
	"github.com/atomicstack/tmux-popup-menu/internal/nav"
	"github.com/atomicstack/tmux-popup-menu/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.search.active {
		return m.handleSearchKey(keyMsg)
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if m.loading {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Search) {
		return m.openSearch()
	}

	var handled bool
	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		handled = m.engine.MoveUp()
	case key.Matches(keyMsg, m.keys.Down):
		handled = m.engine.MoveDown()
	case key.Matches(keyMsg, m.keys.Left):
		handled = m.engine.MoveLeft()
	case key.Matches(keyMsg, m.keys.Right):
		handled = m.engine.MoveRight()
	case key.Matches(keyMsg, m.keys.Select):
		handled = m.selectFocused()
	case key.Matches(keyMsg, m.keys.Back):
		handled, cmd = m.back()
	default:
		handled = m.dispatchShortcut(keyMsg)
	}
	if handled {
		m.errMsg = ""
	}
	events.UI.Key(keyMsg.String(), handled)
	return cmd
}

// selectFocused opens a focused submenu onto its first entry or activates the
// focused record.
func (m *Model) selectFocused() bool {
	current, ok := m.engine.Focused()
	if !ok {
		return false
	}
	if current.Submenu {
		return m.engine.OpenSubmenu(m.engine.Path(), true)
	}
	return m.engine.Click()
}

// back closes the innermost open submenu, or quits when none is open.
func (m *Model) back() (bool, tea.Cmd) {
	path := m.engine.Path()
	for i := len(path) - 1; i >= 0; i-- {
		item := path[i]
		if item.Submenu && m.markers.Has(item.Node, focus.MarkerSubmenuOpen) {
			return m.engine.CloseSubmenu(path[:i+1]), nil
		}
	}
	return false, tea.Quit
}

// dispatchShortcut offers msg to every reachable matcher. The first hit in
// menu order is focused and, unless it holds entries, activated.
func (m *Model) dispatchShortcut(msg tea.KeyMsg) bool {
	m.hits = m.hits[:0]
	m.engine.MatchKeys(msg)
	if len(m.hits) == 0 {
		return false
	}
	item := m.hits[0]
	m.hits = m.hits[:0]
	events.UI.Shortcut(string(item.Node), msg.String())
	if !m.engine.FocusNode(item.Node) {
		return false
	}
	if item.Submenu || item.Group {
		return true
	}
	return m.engine.Click()
}

func (m *Model) noteShortcut(item *menu.Item, _ tea.KeyMsg) {
	m.hits = append(m.hits, item)
}

// Activate implements nav.Activator by queueing the record's action on the
// command bus.
func (m *Model) Activate(node menu.NodeID) {
	path, ok := nav.Resolve(m.root, node)
	if !ok {
		return
	}
	item := path.Last()
	cmd := m.bus.Execute(command.Request{ID: item.Node, Label: item.Label, Action: item.Action})
	if cmd == nil {
		return
	}
	m.loading = true
	m.pendingID = item.Node
	m.forceClearInfo()
	m.queued = append(m.queued, cmd)
}

// placeSubmenu records the row at which item's submenu column starts: level
// with the anchor row in the parent column.
func (m *Model) placeSubmenu(item *menu.Item) {
	path, ok := nav.Resolve(m.root, item.Node)
	if !ok {
		return
	}
	m.offsets[item.Node] = m.anchorRow(path)
}

// anchorRow returns the row of the last record of path within the cascade.
func (m *Model) anchorRow(path nav.Path) int {
	base, list, start := 0, m.root.Values(), 0
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].Submenu {
			base = m.offsets[path[i].Node]
			list = path[i].Children.Values()
			start = i + 1
			break
		}
	}
	return base + headerRows + rowWithin(list, path[start:])
}

// rowWithin returns the row offset of rest's last record inside a vertical
// list, descending through groups laid out as grids.
func rowWithin(items []*menu.Item, rest nav.Path) int {
	if len(rest) == 0 {
		return 0
	}
	row := 0
	for _, item := range items {
		if item.Node != rest[0].Node {
			row += blockHeight(item)
			continue
		}
		if len(rest) == 1 || !item.Group {
			return row
		}
		return row + rowInGrid(item, rest[1:])
	}
	return row
}

func rowInGrid(group *menu.Item, rest nav.Path) int {
	children := group.Children.Values()
	stride := group.Stride()
	row := 0
	for start := 0; start < len(children); start += stride {
		end := start + stride
		if end > len(children) {
			end = len(children)
		}
		cells := children[start:end]
		for _, cell := range cells {
			if cell.Node == rest[0].Node {
				return row + rowWithin([]*menu.Item{cell}, rest)
			}
		}
		row += gridRowHeight(cells)
	}
	return row
}

// blockHeight is the number of rows a record occupies in its column.
func blockHeight(item *menu.Item) int {
	if !item.Group || !item.HasChildren() {
		return 1
	}
	children := item.Children.Values()
	stride := item.Stride()
	rows := 0
	for start := 0; start < len(children); start += stride {
		end := start + stride
		if end > len(children) {
			end = len(children)
		}
		rows += gridRowHeight(children[start:end])
	}
	return rows
}

func gridRowHeight(cells []*menu.Item) int {
	height := 1
	for _, cell := range cells {
		if h := blockHeight(cell); h > height {
			height = h
		}
	}
	return height
}
