package ipc

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/daemon"
)

type testEnv struct {
	host       *daemon.Host
	loop       *daemon.Loop
	client     *Client
	configPath string
}

func startServer(t *testing.T) *testEnv {
	t.Helper()
	// Unix socket paths are short; t.TempDir can exceed the limit.
	dir, err := os.MkdirTemp("", "wlkit-ipc")
	if err != nil {
		t.Fatalf("mkdtemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  workspaces: [main, web]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := daemon.NewLoop(logger)
	host := daemon.NewHost(daemon.HostConfig{Config: res.Config, Loop: loop, Logger: logger})
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	srv, err := NewServer(filepath.Join(dir, "s.sock"), configPath, host, loop)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() {
		srv.Stop()
		cancel()
		<-loop.Done()
		host.Close()
	})
	return &testEnv{host: host, loop: loop, client: NewClientWithPath(srv.SocketPath()), configPath: configPath}
}

func (e *testEnv) mapWindow(t *testing.T, title string) {
	t.Helper()
	err := e.loop.Call(context.Background(), func() error {
		_, err := e.host.MapTestWindow(daemon.TestWindowRequest{Title: title, Width: 200, Height: 100})
		return err
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
}

func TestStatusAndOutputs(t *testing.T) {
	env := startServer(t)
	env.mapWindow(t, "a")

	status, err := env.client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CurrentWorkspace != "main" || status.WindowCount != 1 || status.OutputCount != 1 || status.Locked {
		t.Fatalf("unexpected status %+v", status)
	}
	if strings.Join(status.Workspaces, ",") != "main,web" {
		t.Fatalf("unexpected workspaces %v", status.Workspaces)
	}

	outputs, err := env.client.GetOutputs()
	if err != nil {
		t.Fatalf("outputs: %v", err)
	}
	if len(outputs.Outputs) != 1 || outputs.Outputs[0].Name != "WL-1" || outputs.Outputs[0].Width != 1280 {
		t.Fatalf("unexpected outputs %+v", outputs.Outputs)
	}
}

func TestCommands(t *testing.T) {
	env := startServer(t)
	env.mapWindow(t, "a")
	env.mapWindow(t, "b")

	if err := env.client.SwitchWorkspace("web"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if err := env.client.SwitchWorkspace("nope"); err == nil || !strings.Contains(err.Error(), "unknown workspace") {
		t.Fatalf("expected unknown workspace error, got %v", err)
	}

	ids, err := env.client.Tile("main", "vertical")
	if err != nil {
		t.Fatalf("tile: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 tiled windows, got %v", ids)
	}
	if _, err := env.client.Tile("", "spiral"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}

	if err := env.client.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := env.client.Lock(); err == nil {
		t.Fatalf("expected second lock to fail")
	}
	status, err := env.client.GetStatus()
	if err != nil || !status.Locked {
		t.Fatalf("expected locked status, got %+v (%v)", status, err)
	}
	if err := env.client.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if err := env.client.Unlock(); err == nil {
		t.Fatalf("expected unlock without lock to fail")
	}
}

func TestReload(t *testing.T) {
	env := startServer(t)
	body := "outputs:\n  - name: A\n    width: 800\n    height: 600\n  - name: B\n    x: 800\n    width: 800\n    height: 600\nserver:\n  workspaces: [main, web]\n"
	if err := os.WriteFile(env.configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := env.client.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	outputs, err := env.client.GetOutputs()
	if err != nil || len(outputs.Outputs) != 2 {
		t.Fatalf("expected reloaded outputs, got %+v (%v)", outputs, err)
	}

	if err := os.WriteFile(env.configPath, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := env.client.Reload(); err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	env := startServer(t)
	_, err := env.client.sendRequest(&Request{Command: "DANCE"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestClientWithoutServer(t *testing.T) {
	c := NewClientWithPath(filepath.Join(os.TempDir(), "wlkit-missing.sock"))
	if err := c.Ping(); err == nil {
		t.Fatalf("expected connection error")
	}
}
