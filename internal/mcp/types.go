package mcp

import "github.com/1broseidon/wlkit/internal/daemon"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Workspace string `json:"workspace,omitempty" jsonschema:"Only list windows of this workspace (default: all workspaces)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []daemon.WindowInfo `json:"windows"`
}

// ListOutputsInput is the input for the list_outputs tool.
type ListOutputsInput struct{}

// OutputInfo describes one output of the layout.
type OutputInfo struct {
	ID     string  `json:"id"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
	// LogicalWidth and LogicalHeight are the size divided by the scale.
	LogicalWidth  int `json:"logical_width"`
	LogicalHeight int `json:"logical_height"`
}

// ListOutputsOutput is the output for the list_outputs tool.
type ListOutputsOutput struct {
	Outputs []OutputInfo `json:"outputs"`
}

// ListWorkspacesInput is the input for the list_workspaces tool.
type ListWorkspacesInput struct{}

// ListWorkspacesOutput is the output for the list_workspaces tool.
type ListWorkspacesOutput struct {
	Workspaces []string `json:"workspaces"`
	Current    string   `json:"current"`
}

// SwitchWorkspaceInput is the input for the switch_workspace tool.
type SwitchWorkspaceInput struct {
	Workspace string `json:"workspace" jsonschema:"Name of the workspace to show"`
}

// SwitchWorkspaceOutput is the output for the switch_workspace tool.
type SwitchWorkspaceOutput struct {
	Current string `json:"current"`
}

// WindowInput selects a window by id.
type WindowInput struct {
	ID int `json:"id" jsonschema:"Window id as returned by list_windows"`
}

// WindowStateInput selects a window and a state to request.
type WindowStateInput struct {
	ID    int   `json:"id" jsonschema:"Window id as returned by list_windows"`
	State *bool `json:"state,omitempty" jsonschema:"Requested state (default: true)"`
}

// WindowOutput is the window after the tool ran.
type WindowOutput struct {
	Window daemon.WindowInfo `json:"window"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	ID     int  `json:"id"`
	Closed bool `json:"closed"`
}

// MapTestWindowInput is the input for the map_test_window tool.
type MapTestWindowInput struct {
	Title     string `json:"title" jsonschema:"Window title"`
	Workspace string `json:"workspace,omitempty" jsonschema:"Workspace to map on (default: current workspace)"`
	X         int    `json:"x,omitempty" jsonschema:"Left edge in layout coordinates"`
	Y         int    `json:"y,omitempty" jsonschema:"Top edge in layout coordinates"`
	Width     int    `json:"width,omitempty" jsonschema:"Window width including decorations (default: 640)"`
	Height    int    `json:"height,omitempty" jsonschema:"Window height including decorations (default: 480)"`
	Decorated *bool  `json:"decorated,omitempty" jsonschema:"Draw server-side decorations (default: true)"`
	Color     string `json:"color,omitempty" jsonschema:"Surface color as #rrggbb, #aarrggbb or a color name (default: white)"`
}

// LockStatusInput is the input for the lock tools.
type LockStatusInput struct{}

// LockStatusOutput is the output for the lock tools.
type LockStatusOutput struct {
	Status daemon.LockStatus `json:"status"`
}

// DumpSceneInput is the input for the dump_scene tool.
type DumpSceneInput struct{}

// DumpSceneOutput is the output for the dump_scene tool.
type DumpSceneOutput struct {
	Scene string `json:"scene"`
}

// TileWindowsInput is the input for the tile_windows tool.
type TileWindowsInput struct {
	Workspace string `json:"workspace,omitempty" jsonschema:"Workspace to arrange (default: current workspace)"`
	Mode      string `json:"mode,omitempty" jsonschema:"grid, vertical, horizontal or master_stack (default: tiling.mode from config)"`
}

// TileWindowsOutput lists the arranged windows.
type TileWindowsOutput struct {
	Windows []daemon.WindowInfo `json:"windows"`
}
