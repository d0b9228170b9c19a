package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

type searchState struct {
	active bool
	input  textinput.Model
}

func newSearchState() searchState {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "jump to…"
	input.Cursor.SetMode(cursor.CursorStatic)
	if styles.SearchPrompt != nil {
		input.PromptStyle = *styles.SearchPrompt
	}
	if styles.SearchText != nil {
		input.TextStyle = *styles.SearchText
	}
	if styles.SearchPlaceholder != nil {
		input.PlaceholderStyle = *styles.SearchPlaceholder
	}
	return searchState{input: input}
}

func (m *Model) searchInputWidth() int {
	if m.width <= 4 {
		return 0
	}
	return m.width - 4
}

func (m *Model) openSearch() tea.Cmd {
	m.search.active = true
	m.search.input.Reset()
	m.search.input.Width = m.searchInputWidth()
	events.Search.Open()
	return m.search.input.Focus()
}

func (m *Model) closeSearch() {
	m.search.active = false
	m.search.input.Blur()
	m.search.input.Reset()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		events.Search.Cancel(m.search.input.Value())
		m.closeSearch()
		return nil
	case tea.KeyEnter:
		query := m.search.input.Value()
		m.closeSearch()
		item := bestMatch(m.searchable(), query)
		if item == nil {
			return nil
		}
		events.Search.Jump(query, string(item.Node))
		if m.engine.FocusNode(item.Node) {
			m.errMsg = ""
		}
		return nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return cmd
}

// searchMatch returns the record a jump would land on for the current query.
func (m *Model) searchMatch() *menu.Item {
	if !m.search.active {
		return nil
	}
	return bestMatch(m.searchable(), m.search.input.Value())
}

// searchable lists every labelled record in the tree in menu order.
func (m *Model) searchable() []*menu.Item {
	items := make([]*menu.Item, 0, 16)
	m.root.Walk(func(item *menu.Item, _ int) {
		if item.Label != "" {
			items = append(items, item)
		}
	})
	return items
}

// bestMatch ranks exact and prefix matches on label or id before falling
// back to fuzzy ranking by distance.
func bestMatch(items []*menu.Item, query string) *menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(items) == 0 {
		return nil
	}
	lower := strings.ToLower(trimmed)
	for _, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(string(item.Node), trimmed) {
			return item
		}
	}
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return item
		}
	}
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(string(item.Node)), lower) {
			return item
		}
	}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) {
			return item
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return nil
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return nil
	}
	return items[best.OriginalIndex]
}
