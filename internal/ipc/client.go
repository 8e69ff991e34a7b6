package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/wlkit/internal/runtimepath"
)

// Client handles IPC communication with a running host
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientWithPath(socketPath)
}

// NewClientWithPath creates a client for socketPath.
func NewClientWithPath(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host: %w (is 'wlkit serve' running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("host error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) command(cmd CommandType, payload any) (*Response, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return c.sendRequest(req)
}

// Reload asks the host to reread its config file.
func (c *Client) Reload() error {
	_, err := c.command(CommandReload, nil)
	return err
}

// GetStatus retrieves host status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.command(CommandGetStatus, nil)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// GetOutputs retrieves the host's output layout.
func (c *Client) GetOutputs() (*OutputsData, error) {
	resp, err := c.command(CommandGetOutputs, nil)
	if err != nil {
		return nil, err
	}

	var data OutputsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse outputs data: %w", err)
	}
	return &data, nil
}

// SwitchWorkspace shows the named workspace.
func (c *Client) SwitchWorkspace(name string) error {
	_, err := c.command(CommandSwitchWorkspace, SwitchWorkspacePayload{Workspace: name})
	return err
}

// Tile arranges a workspace and returns the ids of the moved windows.
func (c *Client) Tile(workspace, mode string) ([]int, error) {
	resp, err := c.command(CommandTile, TilePayload{Workspace: workspace, Mode: mode})
	if err != nil {
		return nil, err
	}

	var data TileData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse tile data: %w", err)
	}
	return data.Windows, nil
}

// Lock locks the session.
func (c *Client) Lock() error {
	_, err := c.command(CommandLock, nil)
	return err
}

// Unlock removes the session lock.
func (c *Client) Unlock() error {
	_, err := c.command(CommandUnlock, nil)
	return err
}

// Ping checks if the host is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
