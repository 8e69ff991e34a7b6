// Package ipc is the control socket of a running host: a newline-delimited
// JSON request and response per connection.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload          CommandType = "RELOAD"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetOutputs      CommandType = "GET_OUTPUTS"
	CommandSwitchWorkspace CommandType = "SWITCH_WORKSPACE"
	CommandTile            CommandType = "TILE"
	CommandLock            CommandType = "LOCK"
	CommandUnlock          CommandType = "UNLOCK"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Workspaces       []string `json:"workspaces"`
	CurrentWorkspace string   `json:"current_workspace"`
	WindowCount      int      `json:"window_count"`
	OutputCount      int      `json:"output_count"`
	Locked           bool     `json:"locked"`
	UptimeSeconds    int64    `json:"uptime_seconds"`
}

// OutputInfo represents information about a single output
type OutputInfo struct {
	Name   string  `json:"name"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// OutputsData represents the data returned by GET_OUTPUTS
type OutputsData struct {
	Outputs []OutputInfo `json:"outputs"`
}

type SwitchWorkspacePayload struct {
	Workspace string `json:"workspace"`
}

type TilePayload struct {
	Workspace string `json:"workspace,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

type TileData struct {
	Windows []int `json:"windows"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
