package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

func stubRunners(t *testing.T) (*[]string, *[]string) {
	t.Helper()
	prevTmux, prevShell := runTmux, runShell
	t.Cleanup(func() {
		runTmux = prevTmux
		runShell = prevShell
	})
	var tmuxCalls, shellCalls []string
	runTmux = func(socket, command string) (string, error) {
		tmuxCalls = append(tmuxCalls, socket+"|"+command)
		return "", nil
	}
	runShell = func(ctx context.Context, socket, command string) (string, error) {
		shellCalls = append(shellCalls, socket+"|"+command)
		return "done", nil
	}
	return &tmuxCalls, &shellCalls
}

func execute(t *testing.T, b *Bus, req Request) menu.ActionResult {
	t.Helper()
	cmd := b.Execute(req)
	if cmd == nil {
		t.Fatalf("expected command for %s", req.ID)
	}
	result, ok := cmd().(menu.ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult")
	}
	return result
}

func TestExecuteRunsTmuxWithClient(t *testing.T) {
	tmuxCalls, _ := stubRunners(t)
	b := New("/tmp/sock", "/dev/pts/4")
	result := execute(t, b, Request{ID: "switch", Label: "switch", Action: menu.Action{Kind: menu.ActionTmux, Command: "switch-client -c {client} -n"}})

	if len(*tmuxCalls) != 1 || (*tmuxCalls)[0] != "/tmp/sock|switch-client -c /dev/pts/4 -n" {
		t.Fatalf("unexpected tmux calls: %#v", *tmuxCalls)
	}
	if !result.Quit || result.Err != nil {
		t.Fatalf("expected quitting success, got %#v", result)
	}
	if result.Node != "switch" {
		t.Fatalf("expected node switch, got %q", result.Node)
	}
}

func TestExecuteKeepOpen(t *testing.T) {
	_, shellCalls := stubRunners(t)
	b := New("", "")
	result := execute(t, b, Request{ID: "date", Label: "date", Action: menu.Action{Kind: menu.ActionShell, Command: "date", KeepOpen: true}})
	if result.Quit {
		t.Fatalf("expected keep-open action to stay open")
	}
	if result.Info != "done" {
		t.Fatalf("expected shell output as info, got %q", result.Info)
	}
	if len(*shellCalls) != 1 || (*shellCalls)[0] != "|date" {
		t.Fatalf("unexpected shell calls: %#v", *shellCalls)
	}
}

func TestExecutePrintCarriesOutput(t *testing.T) {
	stubRunners(t)
	result := execute(t, New("", ""), Request{ID: "id", Label: "id", Action: menu.Action{Kind: menu.ActionPrint, Command: "hello"}})
	if result.Output != "hello" || !result.Quit {
		t.Fatalf("unexpected print result: %#v", result)
	}
}

func TestExecuteErrorKeepsPopupOpen(t *testing.T) {
	stubRunners(t)
	boom := errors.New("no server")
	runTmux = func(string, string) (string, error) { return "", boom }
	result := execute(t, New("", ""), Request{ID: "kill", Action: menu.Action{Kind: menu.ActionTmux, Command: "kill-pane"}})
	if !errors.Is(result.Err, boom) {
		t.Fatalf("expected error, got %v", result.Err)
	}
	if result.Quit {
		t.Fatalf("failed actions must not quit")
	}
}

func TestExecuteSkipsItemsWithoutAction(t *testing.T) {
	if cmd := New("", "").Execute(Request{ID: "sub"}); cmd != nil {
		t.Fatalf("expected nil command for actionless request")
	}
}
