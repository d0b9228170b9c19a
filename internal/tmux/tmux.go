package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type client interface {
	Command(parts ...string) (string, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var (
	newClient = func(socketPath string) (client, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	shellCommand = func(ctx context.Context, command string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", command)
	}
)

// ResolveSocketPath determines the tmux server socket for the popup.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_POPUP_MENU_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("lookup current user: %w", err)
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// Run sends a tmux command line to the server. The line is parsed by tmux
// itself, so quoting follows tmux rules.
func Run(socketPath, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("empty tmux command")
	}
	c, err := newClient(socketPath)
	if err != nil {
		return "", fmt.Errorf("connect to tmux: %w", err)
	}
	defer c.Close()
	out, err := c.Command(command)
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", command, err)
	}
	return strings.TrimSpace(out), nil
}

// CurrentClientID returns the client name of the pane that launched the popup.
func CurrentClientID(socketPath string) string {
	c, err := newClient(socketPath)
	if err != nil {
		return ""
	}
	defer c.Close()
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := c.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// Shell runs command through sh with the socket's directory exported as
// TMUX_TMPDIR so nested tmux invocations reach the same server.
func Shell(ctx context.Context, socketPath, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("empty shell command")
	}
	cmd := shellCommand(ctx, command)
	if dir := socketDir(socketPath); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		if output != "" {
			return output, fmt.Errorf("%s failed: %w (output: %s)", command, err, output)
		}
		return "", fmt.Errorf("%s failed: %w", command, err)
	}
	return output, nil
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
