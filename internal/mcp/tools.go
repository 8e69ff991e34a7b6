package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/daemon"
	"github.com/1broseidon/wlkit/internal/tiling"
)

const (
	defaultTestWindowWidth  = 640
	defaultTestWindowHeight = 480
)

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// windowInfo looks a window up on the loop. Client replies posted before
// the lookup have been applied by then.
func (s *Server) windowInfo(ctx context.Context, id int) (daemon.WindowInfo, error) {
	var info daemon.WindowInfo
	err := s.call(ctx, func() error {
		for _, w := range s.host.Windows() {
			if w.ID == id {
				info = w
				return nil
			}
		}
		return fmt.Errorf("%w: %d", daemon.ErrUnknownWindow, id)
	})
	return info, err
}

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	out := ListWindowsOutput{Windows: []daemon.WindowInfo{}}
	err := s.call(ctx, func() error {
		if args.Workspace != "" {
			names, _ := s.host.Workspaces()
			found := false
			for _, n := range names {
				found = found || n == args.Workspace
			}
			if !found {
				return fmt.Errorf("%w: %q", daemon.ErrUnknownWorkspace, args.Workspace)
			}
		}
		for _, w := range s.host.Windows() {
			if args.Workspace == "" || w.Workspace == args.Workspace {
				out.Windows = append(out.Windows, w)
			}
		}
		return nil
	})
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleListOutputs(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListOutputsInput) (*mcpsdk.CallToolResult, ListOutputsOutput, error) {
	out := ListOutputsOutput{Outputs: []OutputInfo{}}
	err := s.call(ctx, func() error {
		for _, o := range s.host.Outputs() {
			box := o.Box()
			out.Outputs = append(out.Outputs, OutputInfo{
				ID:            string(o.ID),
				X:             o.X,
				Y:             o.Y,
				Width:         o.Width,
				Height:        o.Height,
				Scale:         o.Scale,
				LogicalWidth:  box.Width,
				LogicalHeight: box.Height,
			})
		}
		return nil
	})
	if err != nil {
		return nil, ListOutputsOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	var out ListWorkspacesOutput
	err := s.call(ctx, func() error {
		out.Workspaces, out.Current = s.host.Workspaces()
		return nil
	})
	if err != nil {
		return nil, ListWorkspacesOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleSwitchWorkspace(ctx context.Context, _ *mcpsdk.CallToolRequest, args SwitchWorkspaceInput) (*mcpsdk.CallToolResult, SwitchWorkspaceOutput, error) {
	if args.Workspace == "" {
		return nil, SwitchWorkspaceOutput{}, fmt.Errorf("workspace is required")
	}
	var out SwitchWorkspaceOutput
	err := s.call(ctx, func() error {
		if err := s.host.SwitchWorkspace(args.Workspace); err != nil {
			return err
		}
		_, out.Current = s.host.Workspaces()
		return nil
	})
	if err != nil {
		return nil, SwitchWorkspaceOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleActivateWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if err := s.call(ctx, func() error { return s.host.ActivateWindow(args.ID) }); err != nil {
		return nil, WindowOutput{}, err
	}
	info, err := s.windowInfo(ctx, args.ID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: info}, nil
}

func (s *Server) handleCloseWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if err := s.call(ctx, func() error { return s.host.CloseWindow(args.ID) }); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	_, err := s.windowInfo(ctx, args.ID)
	return nil, CloseWindowOutput{ID: args.ID, Closed: err != nil}, nil
}

// requestState runs a state request and returns the window once the client
// has replied.
func (s *Server) requestState(ctx context.Context, id int, request func(int, bool) error, state bool) (WindowOutput, error) {
	if err := s.call(ctx, func() error { return request(id, state) }); err != nil {
		return WindowOutput{}, err
	}
	info, err := s.windowInfo(ctx, id)
	if err != nil {
		return WindowOutput{}, err
	}
	return WindowOutput{Window: info}, nil
}

func (s *Server) handleMaximizeWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowStateInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	out, err := s.requestState(ctx, args.ID, s.host.MaximizeWindow, boolOr(args.State, true))
	return nil, out, err
}

func (s *Server) handleFullscreenWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowStateInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	out, err := s.requestState(ctx, args.ID, s.host.FullscreenWindow, boolOr(args.State, true))
	return nil, out, err
}

func (s *Server) handleShadeWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args WindowStateInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	out, err := s.requestState(ctx, args.ID, s.host.ShadeWindow, boolOr(args.State, true))
	return nil, out, err
}

func (s *Server) handleMapTestWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args MapTestWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	req := daemon.TestWindowRequest{
		Title:     args.Title,
		Workspace: args.Workspace,
		X:         args.X,
		Y:         args.Y,
		Width:     args.Width,
		Height:    args.Height,
		Decorated: boolOr(args.Decorated, true),
		Color:     0xffffffff,
	}
	if req.Width == 0 {
		req.Width = defaultTestWindowWidth
	}
	if req.Height == 0 {
		req.Height = defaultTestWindowHeight
	}
	if args.Color != "" {
		c, err := config.ParseColor(args.Color)
		if err != nil {
			return nil, WindowOutput{}, err
		}
		req.Color = c.ARGB()
	}

	var id int
	err := s.call(ctx, func() error {
		info, err := s.host.MapTestWindow(req)
		id = info.ID
		return err
	})
	if err != nil {
		return nil, WindowOutput{}, err
	}
	info, err := s.windowInfo(ctx, id)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: info}, nil
}

func (s *Server) handleTileWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, args TileWindowsInput) (*mcpsdk.CallToolResult, TileWindowsOutput, error) {
	mode := tiling.Mode(args.Mode)
	if mode != "" && !mode.Valid() {
		return nil, TileWindowsOutput{}, fmt.Errorf("unsupported layout mode: %q", args.Mode)
	}

	var ids []int
	err := s.call(ctx, func() error {
		var err error
		ids, err = s.host.TileWindows(args.Workspace, mode)
		return err
	})
	if err != nil {
		return nil, TileWindowsOutput{}, err
	}

	out := TileWindowsOutput{Windows: []daemon.WindowInfo{}}
	for _, id := range ids {
		info, err := s.windowInfo(ctx, id)
		if err != nil {
			return nil, TileWindowsOutput{}, err
		}
		out.Windows = append(out.Windows, info)
	}
	return nil, out, nil
}

func (s *Server) lockStatus(ctx context.Context, fn func() error) (LockStatusOutput, error) {
	var out LockStatusOutput
	err := s.call(ctx, func() error {
		if fn != nil {
			if err := fn(); err != nil {
				return err
			}
		}
		out.Status = s.host.LockStatus()
		return nil
	})
	return out, err
}

func (s *Server) handleLockSession(ctx context.Context, _ *mcpsdk.CallToolRequest, _ LockStatusInput) (*mcpsdk.CallToolResult, LockStatusOutput, error) {
	out, err := s.lockStatus(ctx, s.host.LockSession)
	return nil, out, err
}

func (s *Server) handleUnlockSession(ctx context.Context, _ *mcpsdk.CallToolRequest, _ LockStatusInput) (*mcpsdk.CallToolResult, LockStatusOutput, error) {
	out, err := s.lockStatus(ctx, s.host.UnlockSession)
	return nil, out, err
}

func (s *Server) handleLockStatus(ctx context.Context, _ *mcpsdk.CallToolRequest, _ LockStatusInput) (*mcpsdk.CallToolResult, LockStatusOutput, error) {
	out, err := s.lockStatus(ctx, nil)
	return nil, out, err
}

func (s *Server) handleDumpScene(ctx context.Context, _ *mcpsdk.CallToolRequest, _ DumpSceneInput) (*mcpsdk.CallToolResult, DumpSceneOutput, error) {
	var out DumpSceneOutput
	err := s.call(ctx, func() error {
		out.Scene = s.host.DumpScene()
		return nil
	})
	if err != nil {
		return nil, DumpSceneOutput{}, err
	}
	return nil, out, nil
}
