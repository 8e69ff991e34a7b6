package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/daemon"
	"github.com/1broseidon/wlkit/internal/ipc"
)

func startHost(t *testing.T) {
	t.Helper()
	dir, err := os.MkdirTemp("", "wlkit-cmd")
	if err != nil {
		t.Fatalf("mkdtemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := daemon.NewLoop(logger)
	host := daemon.NewHost(daemon.HostConfig{Config: config.DefaultConfig(), Loop: loop, Logger: logger})
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	srv, err := ipc.NewServer(filepath.Join(dir, "s.sock"), "", host, loop)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	prev := newClient
	newClient = func() *ipc.Client { return ipc.NewClientWithPath(srv.SocketPath()) }
	t.Cleanup(func() {
		newClient = prev
		srv.Stop()
		cancel()
		<-loop.Done()
		host.Close()
	})
}

func TestControlCommands(t *testing.T) {
	startHost(t)
	var stdout, stderr bytes.Buffer

	if code := run([]string{"workspace", "2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("workspace: exit %d: %s", code, stderr.String())
	}
	if code := run([]string{"lock"}, &stdout, &stderr); code != 0 {
		t.Fatalf("lock: exit %d: %s", code, stderr.String())
	}
	if code := run([]string{"status"}, &stdout, &stderr); code != 0 {
		t.Fatalf("status: exit %d: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "workspace: 2 (1, 2, 3, 4)") || !strings.Contains(out, "locked:    true") {
		t.Fatalf("unexpected status output %q", out)
	}

	stdout.Reset()
	if code := run([]string{"tile", "--mode", "grid"}, &stdout, &stderr); code != 0 {
		t.Fatalf("tile: exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "tiled 0 windows") {
		t.Fatalf("unexpected tile output %q", stdout.String())
	}

	stderr.Reset()
	if code := run([]string{"reload"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected reload without a config file to fail, got %d", code)
	}
	if code := run([]string{"workspace"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected usage error, got %d", code)
	}
}
