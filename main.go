package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/tmux-popup-menu/internal/app"
	"github.com/atomicstack/tmux-popup-menu/internal/config"
	"github.com/atomicstack/tmux-popup-menu/internal/logging"
	"github.com/atomicstack/tmux-popup-menu/internal/logging/events"
)

var (
	isTerminal     = term.IsTerminal
	terminalSize   = term.GetSize
	stdoutFD       = func() int { return int(os.Stdout.Fd()) }
	currentWorkdir = os.Getwd
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg, probeStdout()))

	out, err := app.Run(cfg.App)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if out != "" {
		fmt.Fprintln(os.Stdout, out)
	}
}

// popupTerminal describes the stdout the popup was started with. A captured
// stdout means print output is being collected by the caller.
type popupTerminal struct {
	Interactive bool   `json:"interactive"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Error       string `json:"error,omitempty"`
}

func probeStdout() popupTerminal {
	fd := stdoutFD()
	if fd < 0 || !isTerminal(fd) {
		return popupTerminal{}
	}
	info := popupTerminal{Interactive: true}
	width, height, err := terminalSize(fd)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Width, info.Height = width, height
	return info
}

func focusPolicyName(virtual bool) string {
	if virtual {
		return "synthetic"
	}
	return "native"
}

// startupTracePayload records how the popup was asked to run.
func startupTracePayload(cfg config.Config, tty popupTerminal) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"menu":     cfg.App.MenuPath,
		"focus":    focusPolicyName(cfg.App.VirtualFocus),
		"watch":    cfg.App.Watch,
		"terminal": tty,
	}
	if cfg.App.Width > 0 || cfg.App.Height > 0 {
		payload["size"] = fmt.Sprintf("%dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cwd, err := currentWorkdir(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}
