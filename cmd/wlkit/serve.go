package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/daemon"
	"github.com/1broseidon/wlkit/internal/hotkeys"
	"github.com/1broseidon/wlkit/internal/ipc"
	"github.com/1broseidon/wlkit/internal/mcp"
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/x11"
)

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startHotkeys grabs the configured bindings on a connection of its own,
// since the screen change watcher reads events from the first one.
func startHotkeys(ctx context.Context, cfg *config.Config, host *daemon.Host, loop *daemon.Loop, logger *slog.Logger) {
	conn, err := x11.NewConnection(cfg.Server.Display)
	if err != nil {
		logger.Warn("hotkeys unavailable", "error", err)
		return
	}
	handler := hotkeys.NewHandler(conn)
	n := hotkeys.Bind(handler, cfg.Bindings, loop.Post, host)
	logger.Info("hotkeys registered", "count", n)
	go func() {
		defer conn.Close()
		handler.Run(ctx)
	}()
}

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wlkit/config.yaml)")
	withMCP := fs.Bool("mcp", false, "Serve MCP on stdio (also enabled by server.mcp)")
	noWatch := fs.Bool("no-watch", false, "Do not reload the config file on change")
	noIPC := fs.Bool("no-ipc", false, "Do not listen on the control socket")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: wlkit serve [--path PATH] [--mcp] [--no-watch] [--no-ipc]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Run the headless host. Logs go to stderr; with --mcp, stdio carries")
		fmt.Fprintln(stderr, "the MCP session.")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	configPath := *path
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		configPath = p
	}
	res, err := config.LoadFromPath(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	logger.Info("configuration loaded", "files", res.Files, "output_source", cfg.Server.OutputSource)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := daemon.NewLoop(logger)
	hostCfg := daemon.HostConfig{Config: cfg, Loop: loop, Logger: logger}

	var conn *x11.Connection
	if cfg.Server.OutputSource == config.OutputSourceX11 {
		conn, err = x11.NewConnection(cfg.Server.Display)
		if err != nil {
			logger.Error("failed to connect to display", "error", err)
			return 1
		}
		defer conn.Close()
		outs, err := conn.Outputs()
		if err != nil {
			logger.Error("failed to read outputs", "error", err)
			return 1
		}
		hostCfg.Layout = output.NewStatic(outs...)
	}

	host := daemon.NewHost(hostCfg)
	loopDone := loop.Done()
	go loop.Run(ctx)

	if conn != nil {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: 30 * time.Second,
			Logger:   logger,
		}, host, conn.Outputs)
		go reconciler.Run(ctx)
		go func() {
			if err := conn.WatchScreenChanges(ctx, reconciler.ReconcileNow); err != nil {
				logger.Warn("screen change notifications unavailable", "error", err)
			}
		}()

		if len(cfg.Bindings) > 0 {
			startHotkeys(ctx, cfg, host, loop, logger)
		}
	}

	if !*noIPC {
		srv, err := ipc.NewServer("", configPath, host, loop)
		if err == nil {
			err = srv.Start()
		}
		if err != nil {
			logger.Warn("control socket unavailable", "error", err)
		} else {
			defer srv.Stop()
		}
	}

	if !*noWatch {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			logger.Warn("config watch unavailable", "error", err)
		} else {
			go func() {
				err := watcher.Run(ctx, func(c *config.Config) {
					if err := loop.Post(func() { host.ApplyConfig(c) }); err != nil {
						logger.Warn("dropping config reload", "error", err)
					}
				}, func(err error) {
					logger.Warn("config reload failed", "error", err)
				})
				if err != nil {
					logger.Warn("config watcher stopped", "error", err)
				}
			}()
		}
	}

	logger.Info("wlkit host started", "workspaces", cfg.Server.Workspaces)

	if *withMCP || cfg.Server.MCP {
		server := mcp.NewServer(host, loop)
		if err := server.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("MCP server error", "error", err)
			cancel()
			<-loopDone
			return 1
		}
		cancel()
	}

	<-ctx.Done()
	<-loopDone
	host.Close()
	logger.Info("wlkit host stopped")
	return 0
}
