package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tmux-popup-menu/internal/focus"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

const (
	// headerRows is the number of rows above the first entry of a column.
	headerRows    = 1
	maxLabelWidth = 40

	focusIndicator = "▸ "
	blankIndicator = "  "
	submenuArrow   = " ›"
)

// View implements tea.Model.
func (m *Model) View() string {
	body := strings.Split(m.renderCascade(), "\n")
	bottom := m.bottomLines()
	if m.height > 0 {
		body = limitHeight(body, m.height-len(bottom))
	}
	lines := append(body, bottom...)
	return strings.Join(applyWidth(lines, m.width), "\n")
}

// renderCascade draws the root column followed by one column per open
// submenu, each pushed down to the row recorded when it opened.
func (m *Model) renderCascade() string {
	columns := []string{m.renderColumn(m.title, m.root.Values())}
	for _, item := range m.openSubmenus() {
		column := m.renderColumn(item.Label, item.Children.Values())
		if offset := m.offsets[item.Node]; offset > 0 {
			column = strings.Repeat("\n", offset) + column
		}
		columns = append(columns, column)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) openSubmenus() []*menu.Item {
	var open []*menu.Item
	for _, item := range m.engine.Path() {
		if item.Submenu && item.HasChildren() && m.markers.Has(item.Node, focus.MarkerSubmenuOpen) {
			open = append(open, item)
		}
	}
	return open
}

func (m *Model) renderColumn(title string, items []*menu.Item) string {
	rows := make([]string, 0, len(items)+headerRows)
	rows = append(rows, render(styles.Header, truncateLabel(title)))
	if len(items) == 0 {
		rows = append(rows, render(styles.Info, "(no entries)"))
	}
	width := listWidth(items)
	for _, item := range items {
		rows = append(rows, m.renderBlock(item, width))
	}
	return render(styles.Column, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderBlock(item *menu.Item, width int) string {
	if item.Group && item.HasChildren() {
		return m.renderGrid(item)
	}
	return m.renderLine(item, width)
}

// renderGrid lays a group's entries out in rows of its column count.
func (m *Model) renderGrid(group *menu.Item) string {
	children := group.Children.Values()
	stride := group.Stride()
	width := listWidth(children)
	rows := make([]string, 0, len(children)/stride+1)
	for start := 0; start < len(children); start += stride {
		end := start + stride
		if end > len(children) {
			end = len(children)
		}
		cells := make([]string, 0, end-start)
		for _, child := range children[start:end] {
			if child.Group && child.HasChildren() {
				cells = append(cells, m.renderGrid(child))
				continue
			}
			cells = append(cells, m.renderCell(child, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderLine(item *menu.Item, width int) string {
	text := m.indicator(item) + padRight(entryText(item), width)
	switch {
	case m.isFocused(item.Node):
		return render(styles.FocusedItem, text)
	case m.markers.Has(item.Node, focus.MarkerSubmenuOpen):
		return render(styles.OpenItem, text)
	default:
		return render(styles.Item, text)
	}
}

func (m *Model) renderCell(item *menu.Item, width int) string {
	text := m.indicator(item) + padRight(entryText(item), width)
	if m.isFocused(item.Node) {
		return render(styles.FocusedCell, text)
	}
	return render(styles.Cell, text)
}

func (m *Model) indicator(item *menu.Item) string {
	if m.isFocused(item.Node) {
		return focusIndicator
	}
	return blankIndicator
}

// isFocused reports whether node is highlighted under the active policy:
// every marked record for synthetic focus, the platform focus for native.
func (m *Model) isFocused(node menu.NodeID) bool {
	if m.adapter.Policy() == focus.Synthetic {
		return m.markers.Has(node, focus.MarkerFocused)
	}
	current, ok := m.platform.Node()
	return ok && current == node
}

func entryText(item *menu.Item) string {
	text := truncateLabel(item.Label)
	if item.Key != "" {
		text += "  " + render(styles.KeyHint, item.Key)
	}
	if item.Submenu {
		text += render(styles.SubmenuArrow, submenuArrow)
	}
	return text
}

func listWidth(items []*menu.Item) int {
	width := 0
	for _, item := range items {
		if item.Group && item.HasChildren() {
			continue
		}
		if w := ansi.StringWidth(entryText(item)); w > width {
			width = w
		}
	}
	return width
}

func (m *Model) bottomLines() []string {
	lines := make([]string, 0, 4)
	if m.loading {
		lines = append(lines, render(styles.Info, fmt.Sprintf("Running %s…", m.pendingID)))
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, render(styles.Info, info))
	}
	if m.errMsg != "" {
		lines = append(lines, render(styles.Error, fmt.Sprintf("Error: %s", m.errMsg)))
	}
	if m.backendError != "" {
		lines = append(lines, render(styles.Error, m.backendError))
	}
	if m.search.active {
		line := m.search.input.View()
		if match := m.searchMatch(); match != nil {
			line += render(styles.SearchMatch, " → "+match.Label)
		}
		lines = append(lines, line)
	}
	if m.showFooter {
		lines = append(lines, render(styles.Footer, m.keys.footer()))
	}
	return lines
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func truncateLabel(label string) string {
	if ansi.StringWidth(label) <= maxLabelWidth {
		return label
	}
	return truncate.StringWithTail(label, maxLabelWidth, "…")
}

func padRight(text string, width int) string {
	if gap := width - ansi.StringWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

func limitHeight(lines []string, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{"…"}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, "…")
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	result := make([]string, len(lines))
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			line = truncate.StringWithTail(line, uint(width), "…")
		}
		result[i] = line
	}
	return result
}
