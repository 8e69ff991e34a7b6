package daemon

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/scene"
	"github.com/1broseidon/wlkit/internal/tiling"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

var (
	ErrUnknownWindow    = errors.New("unknown window")
	ErrUnknownWorkspace = errors.New("unknown workspace")
	ErrAlreadyLocked    = errors.New("session already locked")
	ErrNotLocked        = errors.New("session not locked")
)

// HostConfig holds the collaborators of a Host.
type HostConfig struct {
	Config *config.Config
	// Layout is the output layout. When nil, a static layout is built from
	// the configured outputs.
	Layout *output.Static
	Loop   *Loop
	Logger *slog.Logger
}

// Host owns the scene graph, the toolkit root and its workspaces. All
// methods must be called on the loop; NewHost may also run before the loop
// starts.
type Host struct {
	loop   *Loop
	logger *slog.Logger

	graph  *scene.Graph
	env    *toolkit.Env
	root   *toolkit.Root
	layout *output.Static

	windowStyle  toolkit.WindowStyle
	menuStyle    toolkit.MenuStyle
	outputSource config.OutputSource
	tiling       tiling.Layout

	windows map[int]*hostedWindow
	nextID  int
	cursor  toolkit.Cursor
}

type hostedWindow struct {
	id     int
	window *toolkit.Window
	client *headlessClient
}

// WindowInfo describes a hosted window.
type WindowInfo struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Workspace  string `json:"workspace"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Activated  bool   `json:"activated"`
	Maximized  bool   `json:"maximized"`
	Fullscreen bool   `json:"fullscreen"`
	Shaded     bool   `json:"shaded"`
	Decorated  bool   `json:"decorated"`
}

// LockStatus describes the session lock.
type LockStatus struct {
	Locked bool `json:"locked"`
	// Active is false while locked after the locking client went away.
	Active   bool `json:"active"`
	Surfaces int  `json:"surfaces"`
}

// TestWindowRequest describes a window backed by a headless client.
type TestWindowRequest struct {
	Title     string
	Workspace string
	X, Y      int
	Width     int
	Height    int
	Decorated bool
	Color     uint32
}

func NewHost(cfg HostConfig) *Host {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	layout := cfg.Layout
	if layout == nil {
		layout = output.NewStatic(cfg.Config.StaticOutputs()...)
	}

	h := &Host{
		loop:         cfg.Loop,
		logger:       logger,
		graph:        scene.New(),
		layout:       layout,
		windowStyle:  cfg.Config.WindowStyle(),
		menuStyle:    cfg.Config.MenuStyle(),
		outputSource: cfg.Config.Server.OutputSource,
		tiling:       cfg.Config.TilingLayout(),
		windows:      make(map[int]*hostedWindow),
	}
	h.env = &toolkit.Env{Cursor: h}
	h.root = toolkit.NewRoot(h.env, h.graph.Root())
	for _, name := range cfg.Config.Server.Workspaces {
		h.root.AddWorkspace(toolkit.NewWorkspace(h.env, name, layout))
	}

	layout.OnChange(h.handleLayoutChange)
	h.root.LockChanged.Connect(func(locked bool) {
		h.logger.Info("session lock changed", "locked", locked)
	})
	h.root.WorkspaceChanged.Connect(func(ws *toolkit.Workspace) {
		h.logger.Debug("workspace switched", "workspace", ws.Name())
	})
	return h
}

// Root returns the toolkit root.
func (h *Host) Root() *toolkit.Root { return h.root }

// Graph returns the scene graph.
func (h *Host) Graph() *scene.Graph { return h.graph }

// SetCursor records the cursor requested by the toolkit.
func (h *Host) SetCursor(c toolkit.Cursor) {
	if h.cursor == c {
		return
	}
	h.cursor = c
	h.logger.Debug("cursor changed", "cursor", c.String())
}

// Cursor returns the last requested cursor.
func (h *Host) Cursor() toolkit.Cursor { return h.cursor }

// Outputs returns the current output layout.
func (h *Host) Outputs() []output.Output { return h.layout.Outputs() }

// SetOutputs replaces the output layout.
func (h *Host) SetOutputs(outputs []output.Output) {
	h.layout.Replace(outputs)
}

func (h *Host) handleLayoutChange(l output.Layout) {
	for _, ws := range h.root.Workspaces() {
		ws.UpdateOutputLayout(l)
	}
	h.syncLockSurfaces()
	h.logger.Info("output layout changed", "outputs", len(l.Outputs()))
}

// ApplyConfig takes over a reloaded config. Styles apply to windows mapped
// afterwards; static outputs replace the layout.
func (h *Host) ApplyConfig(cfg *config.Config) {
	h.windowStyle = cfg.WindowStyle()
	h.menuStyle = cfg.MenuStyle()
	h.tiling = cfg.TilingLayout()
	if h.outputSource == config.OutputSourceStatic && cfg.Server.OutputSource == config.OutputSourceStatic {
		h.SetOutputs(cfg.StaticOutputs())
	}
	h.logger.Info("config applied", "outputs", len(cfg.Outputs))
}

func (h *Host) workspace(name string) (*toolkit.Workspace, error) {
	if name == "" {
		return h.root.CurrentWorkspace(), nil
	}
	for _, ws := range h.root.Workspaces() {
		if ws.Name() == name {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWorkspace, name)
}

// Workspaces returns the workspace names and the current one.
func (h *Host) Workspaces() (names []string, current string) {
	for _, ws := range h.root.Workspaces() {
		names = append(names, ws.Name())
	}
	if cur := h.root.CurrentWorkspace(); cur != nil {
		current = cur.Name()
	}
	return names, current
}

// SwitchWorkspace makes the named workspace current.
func (h *Host) SwitchWorkspace(name string) error {
	ws, err := h.workspace(name)
	if err != nil {
		return err
	}
	h.root.SwitchToWorkspace(ws)
	return nil
}

// MapTestWindow maps a window backed by a headless client. The window
// reaches its geometry once the loop runs the client's commit.
func (h *Host) MapTestWindow(req TestWindowRequest) (WindowInfo, error) {
	ws, err := h.workspace(req.Workspace)
	if err != nil {
		return WindowInfo{}, err
	}
	if req.Width < 1 || req.Height < 1 {
		return WindowInfo{}, fmt.Errorf("invalid window size %dx%d", req.Width, req.Height)
	}

	h.nextID++
	id := h.nextID
	surface := toolkit.NewRectangle(h.env, 0, 0, req.Color)
	surface.SetVisible(true)
	client := &headlessClient{host: h, id: id, surface: surface}
	content := toolkit.NewContent(h.env, client, surface)
	client.content = content

	w := toolkit.NewWindow(h.env, content, h.windowStyle, h.menuStyle)
	w.SetTitle(req.Title)
	w.SetServerSideDecorated(req.Decorated)
	w.StateChanged.Connect(func(w *toolkit.Window) {
		h.logger.Debug("window state changed", "id", id, "maximized", w.Maximized(), "fullscreen", w.Fullscreen(), "shaded", w.Shaded())
	})
	w.MinimizeRequested.Connect(func(w *toolkit.Window) {
		h.logger.Info("minimize requested", "id", id, "title", w.Title())
	})

	hw := &hostedWindow{id: id, window: w, client: client}
	h.windows[id] = hw
	ws.MapWindow(w)
	w.RequestPositionAndSize(req.X, req.Y, req.Width, req.Height)
	h.logger.Info("window mapped", "id", id, "title", req.Title, "workspace", ws.Name())
	return h.info(hw), nil
}

func (h *Host) info(hw *hostedWindow) WindowInfo {
	w := hw.window
	box := w.Box()
	info := WindowInfo{
		ID:         hw.id,
		Title:      w.Title(),
		X:          box.X,
		Y:          box.Y,
		Width:      box.Width,
		Height:     box.Height,
		Activated:  w.Activated(),
		Maximized:  w.Maximized(),
		Fullscreen: w.Fullscreen(),
		Shaded:     w.Shaded(),
		Decorated:  w.ServerSideDecorated(),
	}
	if ws := w.Workspace(); ws != nil {
		info.Workspace = ws.Name()
	}
	return info
}

// Windows lists the hosted windows, workspace by workspace, top-most first.
func (h *Host) Windows() []WindowInfo {
	byWindow := make(map[*toolkit.Window]*hostedWindow, len(h.windows))
	for _, hw := range h.windows {
		byWindow[hw.window] = hw
	}
	var out []WindowInfo
	for _, ws := range h.root.Workspaces() {
		for _, w := range ws.Windows() {
			if hw, ok := byWindow[w]; ok {
				out = append(out, h.info(hw))
			}
		}
	}
	return out
}

func (h *Host) window(id int) (*hostedWindow, error) {
	hw, ok := h.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWindow, id)
	}
	return hw, nil
}

// ActivateWindow switches to the window's workspace, activates and raises it.
func (h *Host) ActivateWindow(id int) error {
	hw, err := h.window(id)
	if err != nil {
		return err
	}
	ws := hw.window.Workspace()
	if ws != h.root.CurrentWorkspace() {
		h.root.SwitchToWorkspace(ws)
	}
	ws.ActivateWindow(hw.window)
	ws.RaiseWindow(hw.window)
	return nil
}

// CloseWindow asks the window's client to close.
func (h *Host) CloseWindow(id int) error {
	hw, err := h.window(id)
	if err != nil {
		return err
	}
	hw.window.RequestClose()
	return nil
}

// MaximizeWindow requests the maximized state.
func (h *Host) MaximizeWindow(id int, maximized bool) error {
	hw, err := h.window(id)
	if err != nil {
		return err
	}
	hw.window.RequestMaximized(maximized)
	return nil
}

// FullscreenWindow requests the fullscreen state.
func (h *Host) FullscreenWindow(id int, fullscreen bool) error {
	hw, err := h.window(id)
	if err != nil {
		return err
	}
	hw.window.RequestFullscreen(fullscreen)
	return nil
}

// ShadeWindow rolls the window up or down.
func (h *Host) ShadeWindow(id int, shaded bool) error {
	hw, err := h.window(id)
	if err != nil {
		return err
	}
	hw.window.RequestShaded(shaded)
	return nil
}

func (h *Host) destroyWindow(id int) {
	hw, ok := h.windows[id]
	if !ok {
		return
	}
	delete(h.windows, id)
	hw.client.closed = true
	if ws := hw.window.Workspace(); ws != nil {
		ws.UnmapWindow(hw.window)
	}
	hw.window.Destroy()
	h.logger.Info("window destroyed", "id", id)
}

// LockSession locks the session with a solid surface on every output.
func (h *Host) LockSession() error {
	if h.root.ActiveLock() != nil {
		return ErrAlreadyLocked
	}
	l := toolkit.NewLock(h.env, h.layout)
	for _, o := range h.layout.Outputs() {
		if err := addLockSurface(h.env, l, o.ID); err != nil {
			l.Destroy()
			return err
		}
	}
	if !h.root.Lock(l) {
		l.Destroy()
		return ErrAlreadyLocked
	}
	return nil
}

// UnlockSession removes the active lock.
func (h *Host) UnlockSession() error {
	l := h.root.ActiveLock()
	if l == nil {
		return ErrNotLocked
	}
	if !h.root.Unlock(l) {
		return ErrNotLocked
	}
	l.Destroy()
	return nil
}

// LockStatus reports the session lock state.
func (h *Host) LockStatus() LockStatus {
	st := LockStatus{Locked: h.root.Locked()}
	if l := h.root.ActiveLock(); l != nil {
		st.Active = true
		st.Surfaces = l.Surfaces()
	}
	return st
}

// syncLockSurfaces gives every output of the layout a lock surface while
// the session is locked.
func (h *Host) syncLockSurfaces() {
	l := h.root.ActiveLock()
	if l == nil {
		return
	}
	for _, o := range h.layout.Outputs() {
		if _, ok := l.Surface(o.ID); ok {
			continue
		}
		if err := addLockSurface(h.env, l, o.ID); err != nil {
			h.logger.Warn("failed to add lock surface", "output", o.ID, "error", err)
		}
	}
	for _, id := range l.SurfaceIDs() {
		if _, ok := output.Find(h.layout, id); !ok {
			l.RemoveSurface(id)
		}
	}
}

// DumpScene returns an outline of the element tree.
func (h *Host) DumpScene() string {
	var buf bytes.Buffer
	toolkit.Describe(&buf, h.root)
	return buf.String()
}

// Close destroys every window and the root.
func (h *Host) Close() {
	for id := range h.windows {
		h.destroyWindow(id)
	}
	h.root.Destroy()
}
