package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/tmux-popup-menu/internal/backend"
	"github.com/atomicstack/tmux-popup-menu/internal/logging"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
	"github.com/atomicstack/tmux-popup-menu/internal/tmux"
	"github.com/atomicstack/tmux-popup-menu/internal/ui"
)

const reloadInterval = 150 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	MenuPath     string
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	VirtualFocus bool
	Watch        bool
}

var (
	runProgram = func(model *ui.Model) (tea.Model, error) {
		return tea.NewProgram(model, programOptions(stdoutIsTerminal())...).Run()
	}
	currentClientID  = tmux.CurrentClientID
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// programOptions draws the popup on stderr when stdout is captured, leaving
// stdout to carry print output alone.
func programOptions(interactive bool) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !interactive {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	return opts
}

// Run loads the menu and executes the Bubble Tea program. It returns the text
// of a print action chosen by the user, if any.
func Run(cfg Config) (string, error) {
	def, err := menu.Load(cfg.MenuPath)
	if err != nil {
		return "", err
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return "", fmt.Errorf("resolve socket path: %w", err)
	}

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.MenuPath, reloadInterval)
		if err != nil {
			logging.Error(err)
		} else {
			defer watcher.Stop()
		}
	}

	model := ui.NewModel(ui.Options{
		SocketPath:   socketPath,
		ClientID:     currentClientID(socketPath),
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		VirtualFocus: cfg.VirtualFocus,
		Definition:   def,
		Watcher:      watcher,
	})
	final, err := runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if m, ok := final.(*ui.Model); ok {
		return m.Output(), nil
	}
	return "", nil
}
