package ui

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/backend"
	"github.com/atomicstack/tmux-popup-menu/internal/focus"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
	"github.com/atomicstack/tmux-popup-menu/internal/nav"
	"github.com/atomicstack/tmux-popup-menu/internal/theme"
	"github.com/atomicstack/tmux-popup-menu/internal/ui/command"
)

const defaultRootTitle = "main menu"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type executor interface {
	Execute(req command.Request) tea.Cmd
}

// Options configures a Model.
type Options struct {
	SocketPath string
	ClientID   string
	Width      int
	Height     int
	ShowFooter bool
	// VirtualFocus selects the synthetic focus policy: every record on the
	// focus path is highlighted instead of only the deepest one.
	VirtualFocus bool
	Definition   *menu.Definition
	Watcher      *backend.Watcher
}

// Model implements the Bubble Tea model for the tmux popup menu.
type Model struct {
	engine   *nav.Engine
	adapter  *focus.Adapter
	markers  *focus.MarkerSet
	platform *focus.Cursor
	root     *menu.Registry
	title    string

	// offsets holds the first row of each submenu column, recorded by the
	// submenu placement hook just before the submenu opens.
	offsets map[menu.NodeID]int
	// hits collects shortcut matches during a single key dispatch.
	hits []*menu.Item
	// queued collects commands raised by activations during an engine call.
	queued []tea.Cmd

	keys   keyMap
	search searchState

	bus          executor
	loading      bool
	pendingID    menu.NodeID
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	output       string
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	backend      *backend.Watcher
	backendError string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with the menu definition and configuration.
func NewModel(opts Options) *Model {
	m := &Model{
		markers:    focus.NewMarkerSet(),
		platform:   &focus.Cursor{},
		keys:       defaultKeyMap(),
		search:     newSearchState(),
		bus:        command.New(opts.SocketPath, opts.ClientID),
		showFooter: opts.ShowFooter,
		backend:    opts.Watcher,
	}
	policy := focus.Native
	if opts.VirtualFocus {
		policy = focus.Synthetic
	}
	m.adapter = focus.New(policy, m.platform, m.markers)
	m.engine = nav.New(m.adapter, m)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.applyDefinition(opts.Definition)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.queued) > 0 {
		cmds = append(cmds, m.queued...)
		m.queued = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.search.input.Width = m.searchInputWidth()
	return nil
}

// applyDefinition rebuilds the registry tree and resets the engine to the
// unfocused root state.
func (m *Model) applyDefinition(def *menu.Definition) {
	m.title = defaultRootTitle
	if def != nil && def.Title != "" {
		m.title = def.Title
	}
	m.root = menu.Build(def, menu.Hooks{
		Position: m.placeSubmenu,
		Shortcut: m.noteShortcut,
	})
	m.markers.Reset()
	m.platform.Reset()
	m.offsets = make(map[menu.NodeID]int)
	m.engine.Init(m.root)
}

// Output returns text produced by a print action, written to stdout once the
// program exits.
func (m *Model) Output() string {
	return m.output
}

// Engine exposes the navigation engine driving the menu.
func (m *Model) Engine() *nav.Engine {
	return m.engine
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
