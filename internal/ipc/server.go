package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/daemon"
	"github.com/1broseidon/wlkit/internal/runtimepath"
	"github.com/1broseidon/wlkit/internal/tiling"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	configPath   string
	listener     net.Listener
	host         *daemon.Host
	loop         *daemon.Loop
	timeout      time.Duration
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a control server for host. An empty socketPath uses
// the runtime directory; configPath is reread on RELOAD.
func NewServer(socketPath, configPath string, host *daemon.Host, loop *daemon.Loop) (*Server, error) {
	if socketPath == "" {
		p, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
		}
		socketPath = p
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		configPath: configPath,
		host:       host,
		loop:       loop,
		timeout:    5 * time.Second,
		startTime:  time.Now(),
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// One JSON request per line
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetOutputs:
		return s.handleGetOutputs()
	case CommandSwitchWorkspace:
		return s.handleSwitchWorkspace(req.Payload)
	case CommandTile:
		return s.handleTile(req.Payload)
	case CommandLock:
		return s.ok(s.call(s.host.LockSession))
	case CommandUnlock:
		return s.ok(s.call(s.host.UnlockSession))
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// call runs fn on the host loop.
func (s *Server) call(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.loop.Call(ctx, fn)
}

func (s *Server) ok(err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	if s.configPath == "" {
		return NewErrorResponse("no config file to reload")
	}
	res, err := config.LoadFromPath(s.configPath)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	err = s.call(func() error {
		s.host.ApplyConfig(res.Config)
		return nil
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	log.Println("IPC: Config reloaded successfully")
	return s.ok(nil)
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
	err := s.call(func() error {
		status.Workspaces, status.CurrentWorkspace = s.host.Workspaces()
		status.WindowCount = len(s.host.Windows())
		status.OutputCount = len(s.host.Outputs())
		status.Locked = s.host.LockStatus().Locked
		return nil
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetOutputs() *Response {
	data := OutputsData{Outputs: []OutputInfo{}}
	err := s.call(func() error {
		for _, o := range s.host.Outputs() {
			data.Outputs = append(data.Outputs, OutputInfo{
				Name:   string(o.ID),
				X:      o.X,
				Y:      o.Y,
				Width:  o.Width,
				Height: o.Height,
				Scale:  o.Scale,
			})
		}
		return nil
	})
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleSwitchWorkspace(payload json.RawMessage) *Response {
	var req SwitchWorkspacePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid switch payload: %v", err))
	}
	if req.Workspace == "" {
		return NewErrorResponse("workspace is required")
	}
	return s.ok(s.call(func() error { return s.host.SwitchWorkspace(req.Workspace) }))
}

func (s *Server) handleTile(payload json.RawMessage) *Response {
	var req TilePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid tile payload: %v", err))
		}
	}

	data := TileData{Windows: []int{}}
	err := s.call(func() error {
		ids, err := s.host.TileWindows(req.Workspace, tiling.Mode(req.Mode))
		data.Windows = append(data.Windows, ids...)
		return err
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to tile: %v", err))
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
