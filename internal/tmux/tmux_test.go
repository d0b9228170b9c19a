package tmux

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

type fakeClient struct {
	commands []string
	display  string
	err      error
	closed   bool
}

func (f *fakeClient) Command(parts ...string) (string, error) {
	f.commands = append(f.commands, strings.Join(parts, " "))
	if f.err != nil {
		return "", f.err
	}
	return "ok\n", nil
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	return f.display, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func useFakeClient(t *testing.T, fake *fakeClient) *string {
	t.Helper()
	restore := newClient
	t.Cleanup(func() { newClient = restore })
	var socket string
	newClient = func(socketPath string) (client, error) {
		socket = socketPath
		return fake, nil
	}
	return &socket
}

func TestRunSendsCommandLine(t *testing.T) {
	fake := &fakeClient{}
	socket := useFakeClient(t, fake)

	out, err := Run("/tmp/tmux-1/default", "  split-window -h  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("expected trimmed output, got %q", out)
	}
	if *socket != "/tmp/tmux-1/default" {
		t.Fatalf("expected socket to be forwarded, got %q", *socket)
	}
	if len(fake.commands) != 1 || fake.commands[0] != "split-window -h" {
		t.Fatalf("unexpected commands: %#v", fake.commands)
	}
	if !fake.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestRunRejectsEmptyCommand(t *testing.T) {
	fake := &fakeClient{}
	useFakeClient(t, fake)
	if _, err := Run("", "   "); err == nil {
		t.Fatalf("expected error for empty command")
	}
	if len(fake.commands) != 0 {
		t.Fatalf("expected no commands sent, got %#v", fake.commands)
	}
}

func TestRunWrapsCommandErrors(t *testing.T) {
	boom := errors.New("no server")
	useFakeClient(t, &fakeClient{err: boom})
	_, err := Run("", "kill-pane")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRunConnectError(t *testing.T) {
	restore := newClient
	t.Cleanup(func() { newClient = restore })
	boom := errors.New("dial failed")
	newClient = func(string) (client, error) { return nil, boom }
	if _, err := Run("", "list-sessions"); !errors.Is(err, boom) {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestCurrentClientIDTrimsName(t *testing.T) {
	useFakeClient(t, &fakeClient{display: " /dev/pts/3\n"})
	if got := CurrentClientID(""); got != "/dev/pts/3" {
		t.Fatalf("expected client name, got %q", got)
	}
}

func TestShellExportsSocketDir(t *testing.T) {
	restore := shellCommand
	t.Cleanup(func() { shellCommand = restore })
	var seen *exec.Cmd
	shellCommand = func(ctx context.Context, command string) *exec.Cmd {
		seen = exec.CommandContext(ctx, "sh", "-c", "printf '%s' \"$TMUX_TMPDIR\"")
		return seen
	}
	out, err := Shell(context.Background(), "/tmp/tmux-501/default", "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "/tmp/tmux-501" {
		t.Fatalf("expected TMUX_TMPDIR output, got %q", out)
	}
	if seen == nil {
		t.Fatalf("expected shell command to be built")
	}
}

func TestShellReportsFailureOutput(t *testing.T) {
	_, err := Shell(context.Background(), "", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected output in error, got %v", err)
	}
}

func TestResolveSocketPathPrefersFlag(t *testing.T) {
	t.Setenv("TMUX_POPUP_MENU_SOCKET", "/env/socket")
	got, err := ResolveSocketPath("/flag/socket")
	if err != nil || got != "/flag/socket" {
		t.Fatalf("expected flag socket, got %q (%v)", got, err)
	}
}

func TestResolveSocketPathFromTmuxEnv(t *testing.T) {
	t.Setenv("TMUX_POPUP_MENU_SOCKET", "")
	t.Setenv("TMUX", "/tmp/tmux-1000/work,1234,0")
	got, err := ResolveSocketPath("")
	if err != nil || got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from TMUX, got %q (%v)", got, err)
	}
}
