package toolkit

import (
	"math"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/output"
)

// WindowLayer is the z-layer a window is mapped in.
type WindowLayer int

const (
	WindowLayerBackground WindowLayer = iota
	WindowLayerNormal
	WindowLayerFullscreen
	WindowLayerOverlay
	numWindowLayers
)

// PanelLayer is the z-layer a panel is placed in, following layer-shell.
type PanelLayer int

const (
	PanelLayerBackground PanelLayer = iota
	PanelLayerBottom
	PanelLayerTop
	PanelLayerOverlay
	numPanelLayers
)

func (l PanelLayer) String() string {
	switch l {
	case PanelLayerBackground:
		return "background"
	case PanelLayerBottom:
		return "bottom"
	case PanelLayerTop:
		return "top"
	case PanelLayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Interaction is the workspace's interactive mode.
type Interaction int

const (
	InteractionIdle Interaction = iota
	InteractionMoving
	InteractionResizing
)

func (i Interaction) String() string {
	switch i {
	case InteractionIdle:
		return "idle"
	case InteractionMoving:
		return "moving"
	case InteractionResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// interaction is an active move or resize. A nil interaction is idle.
type interaction interface {
	mode() Interaction
	target() *Window
	motion(x, y float64)
}

type moving struct {
	window           *Window
	cursorX, cursorY float64
	windowX, windowY int
}

func (m *moving) mode() Interaction { return InteractionMoving }
func (m *moving) target() *Window   { return m.window }

func (m *moving) motion(x, y float64) {
	nx := m.windowX + int(math.Round(x-m.cursorX))
	ny := m.windowY + int(math.Round(y-m.cursorY))
	m.window.SetPosition(nx, ny)
	if !m.window.inorganic {
		m.window.organic.X, m.window.organic.Y = nx, ny
	}
}

type resizing struct {
	window           *Window
	cursorX, cursorY float64
	box              geom.Rect
	edges            Edge
}

func (r *resizing) mode() Interaction { return InteractionResizing }
func (r *resizing) target() *Window   { return r.window }

// minWindowSize keeps interactive resizes from collapsing a window.
const minWindowSize = 1

func (r *resizing) motion(x, y float64) {
	dx := int(math.Round(x - r.cursorX))
	dy := int(math.Round(y - r.cursorY))
	b := r.box
	if r.edges&EdgeLeft != 0 {
		b.X += dx
		b.Width -= dx
	} else if r.edges&EdgeRight != 0 {
		b.Width += dx
	}
	if r.edges&EdgeTop != 0 {
		b.Y += dy
		b.Height -= dy
	} else if r.edges&EdgeBottom != 0 {
		b.Height += dy
	}
	if b.Width < minWindowSize {
		if r.edges&EdgeLeft != 0 {
			b.X = r.box.Right() - minWindowSize
		}
		b.Width = minWindowSize
	}
	if b.Height < minWindowSize {
		if r.edges&EdgeTop != 0 {
			b.Y = r.box.Bottom() - minWindowSize
		}
		b.Height = minWindowSize
	}
	r.window.RequestPositionAndSize(b.X, b.Y, b.Width, b.Height)
}

// Workspace holds windows in z-layers interleaved with panel layers, the
// activated window and the interactive move/resize state.
type Workspace struct {
	BaseContainer

	name   string
	index  int
	layout output.Layout

	windowLayers [numWindowLayers]*BaseContainer
	panelLayers  [numPanelLayers]*Layer

	activated *Window
	grab      interaction
}

// NewWorkspace creates an invisible workspace for the output layout.
func NewWorkspace(env *Env, name string, layout output.Layout) *Workspace {
	ws := &Workspace{name: name, layout: layout}
	ws.InitContainer(ws, env)

	for i := range ws.windowLayers {
		ws.windowLayers[i] = NewContainer(env)
		ws.windowLayers[i].setVisibleQuiet(true)
	}
	for i := range ws.panelLayers {
		ws.panelLayers[i] = NewLayer(env, PanelLayer(i).String())
	}
	// Top-most first.
	for _, e := range []Element{
		ws.panelLayers[PanelLayerOverlay],
		ws.windowLayers[WindowLayerOverlay],
		ws.windowLayers[WindowLayerFullscreen],
		ws.panelLayers[PanelLayerTop],
		ws.windowLayers[WindowLayerNormal],
		ws.panelLayers[PanelLayerBottom],
		ws.windowLayers[WindowLayerBackground],
		ws.panelLayers[PanelLayerBackground],
	} {
		ws.appendQuiet(e)
	}
	ws.UpdateOutputLayout(layout)
	return ws
}

func (ws *Workspace) Name() string { return ws.name }

// Index returns the position of the workspace in the root's list.
func (ws *Workspace) Index() int { return ws.index }

// OutputLayout returns the output layout the workspace spans.
func (ws *Workspace) OutputLayout() output.Layout { return ws.layout }

// UpdateOutputLayout passes a changed output layout on to the panel layers.
func (ws *Workspace) UpdateOutputLayout(layout output.Layout) {
	ws.layout = layout
	for _, l := range ws.panelLayers {
		l.UpdateOutputLayout(layout)
	}
}

// PanelLayer returns one of the four panel layers.
func (ws *Workspace) PanelLayer(l PanelLayer) *Layer { return ws.panelLayers[l] }

// MapWindow puts w on top of the normal layer and activates it.
func (ws *Workspace) MapWindow(w *Window) {
	ws.MapWindowInLayer(w, WindowLayerNormal)
}

// MapWindowInLayer maps w in the given layer. Fullscreen windows always go
// to the fullscreen layer.
func (ws *Workspace) MapWindowInLayer(w *Window, layer WindowLayer) {
	if w.workspace != nil {
		panic("toolkit: window is already mapped")
	}
	if w.fullscreen {
		layer = WindowLayerFullscreen
	}
	w.workspace = ws
	w.SetVisible(true)
	ws.windowLayers[layer].AddElement(w)
	ws.ActivateWindow(w)
	w.StateChanged.Emit(w)
}

// UnmapWindow removes w. If w was activated, the top-most remaining window
// is activated.
func (ws *Workspace) UnmapWindow(w *Window) {
	if w.workspace != ws {
		panic("toolkit: unmapping a window of another workspace")
	}
	if ws.grab != nil && ws.grab.target() == w {
		ws.endInteraction()
	}
	wasActivated := ws.activated == w
	if wasActivated {
		ws.ActivateWindow(nil)
	}
	w.ParentContainer().container().RemoveElement(w)
	w.workspace = nil
	if wasActivated {
		ws.ActivateWindow(ws.topWindow())
	}
	w.StateChanged.Emit(w)
}

// Windows returns all mapped windows, top-most first.
func (ws *Workspace) Windows() []*Window {
	var out []*Window
	for l := numWindowLayers - 1; l >= 0; l-- {
		out = append(out, ws.WindowsIn(l)...)
	}
	return out
}

// WindowsIn returns the windows of one layer, top-most first.
func (ws *Workspace) WindowsIn(layer WindowLayer) []*Window {
	var out []*Window
	for _, e := range ws.windowLayers[layer].children {
		if w, ok := e.(*Window); ok {
			out = append(out, w)
		}
	}
	return out
}

// WindowAt returns the top-most visible window whose box contains (x, y),
// or nil.
func (ws *Workspace) WindowAt(x, y int) *Window {
	for _, w := range ws.Windows() {
		if w.Visible() && w.Box().Contains(x, y) {
			return w
		}
	}
	return nil
}

func (ws *Workspace) topWindow() *Window {
	for _, l := range []WindowLayer{WindowLayerFullscreen, WindowLayerNormal} {
		if wins := ws.WindowsIn(l); len(wins) > 0 {
			return wins[0]
		}
	}
	return nil
}

// ActivatedWindow returns the window holding activation.
func (ws *Workspace) ActivatedWindow() *Window { return ws.activated }

// ActivateWindow moves activation and keyboard focus to w, or clears them
// for nil.
func (ws *Workspace) ActivateWindow(w *Window) {
	if ws.activated == w {
		return
	}
	if old := ws.activated; old != nil {
		ws.activated = nil
		old.SetActivated(false)
	}
	if w == nil {
		for _, l := range ws.windowLayers {
			l.SetKeyboardFocusElement(nil)
		}
		return
	}
	ws.activated = w
	w.SetActivated(true)
	ws.focusWindow(w)
}

// focusWindow gives w the keyboard, or remembers it while the workspace is
// hidden or the session is locked.
func (ws *Workspace) focusWindow(w *Window) {
	if r := ws.root(); r != nil && !r.canFocus(ws) {
		r.deferFocus(ws, w)
		return
	}
	w.RequestKeyboardFocus()
}

// root returns the root holding ws, or nil.
func (ws *Workspace) root() *Root {
	if ws.parent == nil {
		return nil
	}
	r, _ := ws.parent.cimpl.(*Root)
	return r
}

// RaiseWindow puts w on top of its layer.
func (ws *Workspace) RaiseWindow(w *Window) {
	if w.workspace != ws {
		return
	}
	w.ParentContainer().container().RaiseElementToTop(w)
}

// ActivateNext activates the window below the activated one in the normal
// layer, wrapping around. Nothing is raised.
func (ws *Workspace) ActivateNext() { ws.cycleActivation(1) }

// ActivatePrevious activates the window above the activated one.
func (ws *Workspace) ActivatePrevious() { ws.cycleActivation(-1) }

func (ws *Workspace) cycleActivation(dir int) {
	wins := ws.WindowsIn(WindowLayerNormal)
	n := len(wins)
	if n == 0 {
		return
	}
	i := -1
	for j, w := range wins {
		if w == ws.activated {
			i = j
			break
		}
	}
	if i < 0 {
		ws.ActivateWindow(wins[0])
		return
	}
	ws.ActivateWindow(wins[((i+dir)%n+n)%n])
}

// promoteWindow moves w between the normal and the fullscreen layer.
func (ws *Workspace) promoteWindow(w *Window, fullscreen bool) {
	to := ws.windowLayers[WindowLayerNormal]
	if fullscreen {
		to = ws.windowLayers[WindowLayerFullscreen]
	}
	from := w.ParentContainer().container()
	if from == to {
		return
	}
	from.RemoveElement(w)
	to.AddElement(w)
	if ws.activated == w {
		ws.focusWindow(w)
	}
}

// referenceOutput picks the output for extents: id if given, then the
// window's preferred output, then the output nearest the window's center.
func (ws *Workspace) referenceOutput(w *Window, id output.ID) (output.Output, bool) {
	if id == "" && w != nil {
		id = w.preferredOutput
	}
	if id != "" {
		if o, ok := output.Find(ws.layout, id); ok {
			return o, true
		}
	}
	var cx, cy int
	if w != nil {
		cx, cy = w.Box().Center()
	}
	return output.Closest(ws.layout, cx, cy)
}

// MaximizeExtents returns the output area minus the exclusive zones of
// visible panels on all layers.
func (ws *Workspace) MaximizeExtents(w *Window, id output.ID) geom.Rect {
	o, ok := ws.referenceOutput(w, id)
	if !ok {
		return geom.Rect{}
	}
	usable := o.Box()
	for _, l := range ws.panelLayers {
		usable = l.UsableArea(o.ID, usable)
	}
	return usable
}

// FullscreenExtents returns the output area.
func (ws *Workspace) FullscreenExtents(w *Window, id output.ID) geom.Rect {
	o, ok := ws.referenceOutput(w, id)
	if !ok {
		return geom.Rect{}
	}
	return o.Box()
}

// Interaction returns the interactive mode.
func (ws *Workspace) Interaction() Interaction {
	if ws.grab == nil {
		return InteractionIdle
	}
	return ws.grab.mode()
}

// InteractionWindow returns the window being moved or resized.
func (ws *Workspace) InteractionWindow() *Window {
	if ws.grab == nil {
		return nil
	}
	return ws.grab.target()
}

// BeginWindowMove starts moving w with the pointer. Maximized and
// fullscreen windows do not move.
func (ws *Workspace) BeginWindowMove(w *Window) bool {
	if !ws.canInteract(w) {
		return false
	}
	wx, wy := w.Position()
	ws.grab = &moving{window: w, cursorX: ws.lastX, cursorY: ws.lastY, windowX: wx, windowY: wy}
	ws.env.SetCursor(CursorMove)
	return true
}

// BeginWindowResize starts resizing the given edges of w with the pointer.
func (ws *Workspace) BeginWindowResize(w *Window, edges Edge) bool {
	if edges == EdgeNone || !ws.canInteract(w) {
		return false
	}
	ws.grab = &resizing{window: w, cursorX: ws.lastX, cursorY: ws.lastY, box: w.Box(), edges: edges}
	return true
}

func (ws *Workspace) canInteract(w *Window) bool {
	if ws.grab != nil || w.workspace != ws || w.maximized || w.fullscreen {
		return false
	}
	return !math.IsNaN(ws.lastX) && !math.IsNaN(ws.lastY)
}

func (ws *Workspace) endInteraction() {
	if ws.grab == nil {
		return
	}
	ws.grab = nil
	ws.env.SetCursor(CursorDefault)
}

// PointerHitTest keeps the pointer while a move or resize is active.
func (ws *Workspace) PointerHitTest(x, y float64) bool {
	if ws.grab != nil && ws.visible {
		return true
	}
	return ws.BaseContainer.PointerHitTest(x, y)
}

// PointerMotion drives an active move or resize; otherwise it dispatches
// to the layers.
func (ws *Workspace) PointerMotion(ev MotionEvent) bool {
	if ws.grab != nil && !math.IsNaN(ev.X) && !math.IsNaN(ev.Y) {
		ws.recordPointer(ev)
		ws.grab.motion(ev.X, ev.Y)
		return true
	}
	return ws.BaseContainer.PointerMotion(ev)
}

// PointerButton ends a move or resize on the primary release. The release
// is still delivered to the element that saw the press. A press away from
// the activated window closes its window menu.
func (ws *Workspace) PointerButton(ev ButtonEvent) bool {
	if w := ws.activated; w != nil && ev.Type == ButtonDown && w.menu.Open() && !w.PointerInside() {
		w.MenuSetEnabled(false)
	}
	if ws.grab != nil && ev.Button == ButtonLeft && ev.Type == ButtonUp {
		ws.endInteraction()
		ws.BaseContainer.PointerButton(ev)
		return true
	}
	return ws.BaseContainer.PointerButton(ev)
}

// PointerGrabCancel returns to idle and cancels grabs below.
func (ws *Workspace) PointerGrabCancel() {
	ws.endInteraction()
	ws.BaseContainer.PointerGrabCancel()
}
