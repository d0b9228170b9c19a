package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
	"github.com/atomicstack/tmux-popup-menu/internal/menu"
	"github.com/atomicstack/tmux-popup-menu/internal/tmux"
)

// clientPlaceholder is replaced with the name of the client that opened the
// popup. Commands sent over the control connection otherwise act on the
// control client itself.
const clientPlaceholder = "{client}"

const shellTimeout = 30 * time.Second

var (
	runTmux  = tmux.Run
	runShell = tmux.Shell
)

// Request encapsulates an action invocation.
type Request struct {
	ID     menu.NodeID
	Label  string
	Action menu.Action
}

// Bus coordinates the execution of menu actions.
type Bus struct {
	socketPath string
	clientID   string
}

// New initialises a command bus bound to a tmux server and launching client.
func New(socketPath, clientID string) *Bus {
	return &Bus{socketPath: socketPath, clientID: clientID}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace
// logs. The returned command yields a menu.ActionResult. Requests without an
// action produce no command.
func (b *Bus) Execute(req Request) tea.Cmd {
	id := string(req.ID)
	if req.Action.Kind == menu.ActionNone {
		events.Command.Skip(id, req.Label)
		return nil
	}
	events.Command.Queue(id, req.Label)
	return func() tea.Msg {
		result := b.run(req)
		events.Command.Result(id, req.Label, fmt.Sprintf("%T", result))
		return result
	}
}

func (b *Bus) run(req Request) menu.ActionResult {
	result := menu.ActionResult{Node: req.ID, Quit: !req.Action.KeepOpen}
	command := b.expand(req.Action.Command)
	switch req.Action.Kind {
	case menu.ActionTmux:
		out, err := runTmux(b.socketPath, command)
		result.Err = err
		result.Info = tmuxInfo(req, out)
	case menu.ActionShell:
		ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
		defer cancel()
		out, err := runShell(ctx, b.socketPath, command)
		result.Err = err
		result.Info = out
	case menu.ActionPrint:
		result.Output = req.Action.Command
		result.Info = fmt.Sprintf("Printed %s", req.Label)
	default:
		result.Err = fmt.Errorf("unknown action kind %q", req.Action.Kind)
	}
	if result.Err != nil {
		result.Quit = false
	}
	return result
}

func (b *Bus) expand(command string) string {
	if b.clientID == "" {
		return command
	}
	return strings.ReplaceAll(command, clientPlaceholder, b.clientID)
}

func tmuxInfo(req Request, out string) string {
	if out != "" {
		return out
	}
	return fmt.Sprintf("Ran %s", req.Label)
}
