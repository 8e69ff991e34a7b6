// Package mcp exposes the hosted workspaces over the Model Context Protocol:
// windows, outputs, workspaces, the session lock and a scene dump.
package mcp

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wlkit/internal/daemon"
)

const (
	ServerName    = "wlkit"
	ServerVersion = "0.1.0"

	defaultCallTimeout = 5 * time.Second
)

// Server is the MCP control server. Every handler runs its work on the
// host's loop.
type Server struct {
	mcpServer *mcpsdk.Server
	host      *daemon.Host
	loop      *daemon.Loop
	timeout   time.Duration
}

// NewServer creates a server controlling host through loop.
func NewServer(host *daemon.Host, loop *daemon.Loop) *Server {
	s := &Server{
		host:    host,
		loop:    loop,
		timeout: defaultCallTimeout,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single session on transport.
func (s *Server) Connect(ctx context.Context, transport mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, transport, nil)
}

// call runs fn on the loop, bounded by the server's timeout.
func (s *Server) call(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.loop.Call(ctx, fn)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List mapped windows with their id, title, workspace, box (including decorations) and state flags, top-most first per workspace.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_outputs",
		Description: "List the outputs of the layout with position, mode size, scale and logical size.",
	}, s.handleListOutputs)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List workspace names and the current workspace.",
	}, s.handleListWorkspaces)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Show the named workspace. While the session is locked the workspace stays hidden until unlock.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "activate_window",
		Description: "Activate and raise a window, switching to its workspace first.",
	}, s.handleActivateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask a window's client to close. The window disappears once the client acknowledges.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Maximize a window to its output minus panel exclusive zones, or restore it with state=false.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fullscreen_window",
		Description: "Make a window fullscreen on its output, or leave fullscreen with state=false.",
	}, s.handleFullscreenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "shade_window",
		Description: "Roll a decorated window up to its titlebar, or down with state=false.",
	}, s.handleShadeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "map_test_window",
		Description: "Map a window backed by a headless client that acknowledges every request. Returns the window after its first commit.",
	}, s.handleMapTestWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tile_windows",
		Description: "Arrange the normal windows of a workspace per output (grid, vertical, horizontal or master_stack). Maximized and fullscreen windows are left alone.",
	}, s.handleTileWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lock_session",
		Description: "Lock the session with an opaque surface on every output. Input only reaches the lock until unlock_session.",
	}, s.handleLockSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unlock_session",
		Description: "Unlock the session locked with lock_session.",
	}, s.handleUnlockSession)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "lock_status",
		Description: "Report whether the session is locked and how many lock surfaces exist.",
	}, s.handleLockStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dump_scene",
		Description: "Return an indented outline of the element tree with each element's box, position and visibility.",
	}, s.handleDumpScene)
}
