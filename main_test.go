package main

import (
	"errors"
	"testing"

	"github.com/atomicstack/tmux-popup-menu/internal/app"
	"github.com/atomicstack/tmux-popup-menu/internal/config"
)

func stubTerminal(t *testing.T, tty bool, width, height int, sizeErr error) {
	t.Helper()
	prevIs, prevSize, prevFD := isTerminal, terminalSize, stdoutFD
	t.Cleanup(func() {
		isTerminal = prevIs
		terminalSize = prevSize
		stdoutFD = prevFD
	})
	stdoutFD = func() int { return 1 }
	isTerminal = func(int) bool { return tty }
	terminalSize = func(int) (int, int, error) { return width, height, sizeErr }
}

func TestProbeStdoutReportsPopupSize(t *testing.T) {
	stubTerminal(t, true, 60, 18, nil)
	info := probeStdout()
	if !info.Interactive || info.Width != 60 || info.Height != 18 {
		t.Fatalf("unexpected terminal info: %#v", info)
	}
}

func TestProbeStdoutCapturedOutput(t *testing.T) {
	stubTerminal(t, false, 0, 0, nil)
	if info := probeStdout(); info.Interactive {
		t.Fatalf("expected captured stdout to be non-interactive: %#v", info)
	}
}

func TestProbeStdoutSizeError(t *testing.T) {
	stubTerminal(t, true, 0, 0, errors.New("inappropriate ioctl"))
	info := probeStdout()
	if !info.Interactive || info.Error != "inappropriate ioctl" {
		t.Fatalf("expected size error to be recorded: %#v", info)
	}
}

func TestStartupTracePayloadDescribesMenu(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			MenuPath:     "menus/main.yaml",
			Width:        80,
			Height:       24,
			VirtualFocus: true,
			Watch:        true,
		},
		Flags: map[string]string{"menu": "menus/main.yaml", "watch": "true"},
		Args:  []string{"-watch", "menus/main.yaml"},
	}
	tty := popupTerminal{Interactive: true, Width: 80, Height: 24}

	payload := startupTracePayload(cfg, tty)

	if payload["menu"] != "menus/main.yaml" {
		t.Fatalf("expected menu path, got %v", payload["menu"])
	}
	if payload["focus"] != "synthetic" {
		t.Fatalf("expected synthetic focus, got %v", payload["focus"])
	}
	if payload["watch"] != true {
		t.Fatalf("expected watch flag, got %v", payload["watch"])
	}
	if payload["size"] != "80x24" {
		t.Fatalf("expected fixed size 80x24, got %v", payload["size"])
	}
	if got, ok := payload["terminal"].(popupTerminal); !ok || got != tty {
		t.Fatalf("expected terminal info %#v, got %#v", tty, payload["terminal"])
	}
	flags, ok := payload["flags"].(map[string]string)
	if !ok || flags["watch"] != "true" {
		t.Fatalf("expected flag snapshot, got %#v", payload["flags"])
	}
}

func TestStartupTracePayloadDefaults(t *testing.T) {
	payload := startupTracePayload(config.Config{}, popupTerminal{})
	if payload["focus"] != "native" {
		t.Fatalf("expected native focus by default, got %v", payload["focus"])
	}
	if _, ok := payload["size"]; ok {
		t.Fatalf("expected no size without fixed dimensions")
	}
}
