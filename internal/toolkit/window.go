package toolkit

import (
	"log"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/output"
)

// WindowProperty is a bitmask of window capabilities.
type WindowProperty uint32

const (
	WindowPropertyClosable WindowProperty = 1 << iota
	WindowPropertyIconifiable
	WindowPropertyResizable
	// WindowPropertyRightClick marks windows opened by a secondary-button
	// press; a secondary release that nothing inside takes closes them.
	WindowPropertyRightClick
)

// WindowMaxPending bounds the queue of size requests awaiting a commit.
const WindowMaxPending = 64

type pendingUpdate struct {
	serial uint32
	x, y   int
	width  int
	height int
}

// Window composes a Content with server-side decorations: a border around
// a vertical box of titlebar, content and resize bar.
//
// Placement changes go through the client: RequestPositionAndSize asks the
// content for a new size and applies the position once the client
// committed the matching serial.
type Window struct {
	BaseContainer

	style     WindowStyle
	menuStyle MenuStyle

	content   *Content
	box       *Box
	bordered  *Bordered
	titlebar  *Titlebar
	resizebar *Resizebar
	menu      *PopupMenu
	items     windowMenuItems

	title      string
	properties WindowProperty
	organic    geom.Rect
	pending    []pendingUpdate
	// inorganic is set while maximized or fullscreen sizing is in effect;
	// the organic box is then left alone.
	inorganic bool

	activated  bool
	maximized  bool
	fullscreen bool
	shaded     bool
	ssd        bool

	preferredOutput output.ID
	workspace       *Workspace
	inLayout        bool

	StateChanged      Signal[*Window]
	MinimizeRequested Signal[*Window]
}

type windowMenuItems struct {
	maximize   *MenuItem
	fullscreen *MenuItem
	shade      *MenuItem
	minimize   *MenuItem
	close      *MenuItem
}

// NewWindow creates an invisible window around content. Windows are
// closable, iconifiable and resizable by default.
func NewWindow(env *Env, content *Content, style WindowStyle, menuStyle MenuStyle) *Window {
	if content.window != nil {
		panic("toolkit: content already belongs to a window")
	}
	w := &Window{
		style:      style,
		menuStyle:  menuStyle,
		content:    content,
		properties: WindowPropertyClosable | WindowPropertyIconifiable | WindowPropertyResizable,
	}
	w.InitContainer(w, env)
	content.window = w

	w.box = NewBox(env, Vertical, MarginStyle{})
	w.box.SetVisible(true)
	content.SetVisible(true)
	w.box.AddElementBack(content)
	w.bordered = NewBordered(env, w.box, MarginStyle{})
	w.bordered.SetVisible(true)
	w.appendQuiet(w.bordered)

	w.buildMenu()
	w.applyDecoration()
	return w
}

func (w *Window) buildMenu() {
	w.menu = NewPopupMenu(w.env, w.menuStyle)
	m := w.menu.Menu()
	add := func(text string, action func()) *MenuItem {
		item := NewMenuItem(w.env, w.menuStyle.Item, text)
		item.Triggered.Connect(func(*MenuItem) { action() })
		m.AddItem(item)
		return item
	}
	w.items.maximize = add("Maximize", func() { w.RequestMaximized(!w.maximized) })
	w.items.fullscreen = add("Fullscreen", func() { w.RequestFullscreen(!w.fullscreen) })
	w.items.shade = add("Shade", func() { w.RequestShaded(!w.shaded) })
	w.items.minimize = add("Minimize", func() { w.RequestMinimize() })
	w.items.close = add("Close", func() { w.RequestClose() })
	m.ItemTriggered.Connect(func(*MenuItem) { w.MenuSetEnabled(false) })
	w.content.AddPopup(w.menu)
}

func (w *Window) updateMenuItems() {
	if w.maximized {
		w.items.maximize.SetText("Unmaximize")
	} else {
		w.items.maximize.SetText("Maximize")
	}
	if w.fullscreen {
		w.items.fullscreen.SetText("Exit fullscreen")
	} else {
		w.items.fullscreen.SetText("Fullscreen")
	}
	if w.shaded {
		w.items.shade.SetText("Unshade")
	} else {
		w.items.shade.SetText("Shade")
	}
	w.items.maximize.SetEnabled(!w.fullscreen)
	w.items.shade.SetEnabled(w.ssd && !w.fullscreen)
	w.items.minimize.SetEnabled(w.properties&WindowPropertyIconifiable != 0)
	w.items.close.SetEnabled(w.properties&WindowPropertyClosable != 0)
}

// Content returns the window's content.
func (w *Window) Content() *Content { return w.content }

// Titlebar returns the titlebar, nil when undecorated.
func (w *Window) Titlebar() *Titlebar { return w.titlebar }

// Resizebar returns the resize bar, nil when undecorated or not resizable.
func (w *Window) Resizebar() *Resizebar { return w.resizebar }

// Bordered returns the border container around the decorations.
func (w *Window) Bordered() *Bordered { return w.bordered }

// WindowMenu returns the popup holding the window menu.
func (w *Window) WindowMenu() *PopupMenu { return w.menu }

// Workspace returns the workspace the window is mapped on.
func (w *Window) Workspace() *Workspace { return w.workspace }

func (w *Window) Title() string { return w.title }

// SetTitle changes the title shown in the titlebar.
func (w *Window) SetTitle(title string) {
	w.title = title
	if w.titlebar != nil {
		w.titlebar.SetTitle(title)
	}
}

func (w *Window) Properties() WindowProperty { return w.properties }

// SetProperties changes the capabilities and re-applies the decoration.
func (w *Window) SetProperties(props WindowProperty) {
	w.properties = props
	w.applyDecoration()
}

// ServerSideDecorated reports whether the toolkit draws the decoration.
func (w *Window) ServerSideDecorated() bool { return w.ssd }

// SetServerSideDecorated switches between server and client decoration.
// A shaded window is unshaded when losing its decoration.
func (w *Window) SetServerSideDecorated(ssd bool) {
	if w.ssd == ssd {
		return
	}
	if !ssd && w.shaded {
		w.RequestShaded(false)
	}
	w.ssd = ssd
	w.applyDecoration()
}

// SetPreferredOutput selects the output used for maximize and fullscreen
// extents. An empty id falls back to the output nearest the window.
func (w *Window) SetPreferredOutput(id output.ID) { w.preferredOutput = id }

func (w *Window) PreferredOutput() output.ID { return w.preferredOutput }

func (w *Window) Activated() bool  { return w.activated }
func (w *Window) Maximized() bool  { return w.maximized }
func (w *Window) Fullscreen() bool { return w.fullscreen }
func (w *Window) Shaded() bool     { return w.shaded }

// OrganicBox returns the geometry the user chose, kept while maximized or
// fullscreen.
func (w *Window) OrganicBox() geom.Rect { return w.organic }

// PendingUpdates returns the number of size requests awaiting a commit.
func (w *Window) PendingUpdates() int { return len(w.pending) }

// applyDecoration adds or removes titlebar, resize bar and border to match
// the decoration mode, properties and fullscreen state.
func (w *Window) applyDecoration() {
	decorated := w.ssd && !w.fullscreen

	if decorated {
		if w.titlebar == nil {
			w.titlebar = NewTitlebar(w.env, w, w.style.Titlebar)
			w.titlebar.SetVisible(true)
			w.box.AddElementFront(w.titlebar)
		}
		w.titlebar.SetTitle(w.title)
		w.titlebar.SetProperties(w.properties)
		w.titlebar.SetActivated(w.activated)
	} else if w.titlebar != nil {
		t := w.titlebar
		w.titlebar = nil
		w.box.RemoveElement(t)
		t.Destroy()
	}

	if decorated && w.properties&WindowPropertyResizable != 0 {
		if w.resizebar == nil {
			w.resizebar = NewResizebar(w.env, w, w.style.Resizebar)
			w.resizebar.SetVisible(!w.shaded)
			w.box.AddElementBack(w.resizebar)
		}
	} else if w.resizebar != nil {
		r := w.resizebar
		w.resizebar = nil
		w.box.RemoveElement(r)
		r.Destroy()
	}

	if decorated {
		w.box.SetStyle(w.style.Margin)
		w.bordered.SetStyle(w.style.Border)
	} else {
		w.box.SetStyle(MarginStyle{})
		w.bordered.SetStyle(MarginStyle{})
	}
	w.updateMenuItems()
	w.cimpl.UpdateLayout()
}

// decorationInsets returns what the decoration adds to the content size,
// for the decoration the window has when fullscreen is as given.
func (w *Window) decorationInsets(fullscreen bool) (horizontal, vertical int) {
	if !w.ssd || fullscreen {
		return 0, 0
	}
	b := w.style.Border.Width
	m := w.style.Margin.Width
	horizontal = 2 * b
	vertical = 2*b + w.style.Titlebar.Height + m
	if w.properties&WindowPropertyResizable != 0 {
		vertical += w.style.Resizebar.Height + m
	}
	return horizontal, vertical
}

// Box returns the window's position and decorated size, derived from the
// committed content size.
func (w *Window) Box() geom.Rect {
	cw, ch := w.content.Size()
	h, v := w.decorationInsets(w.fullscreen)
	if w.shaded {
		return geom.Rect{X: w.x, Y: w.y, Width: cw + h, Height: 2*w.style.Border.Width + w.style.Titlebar.Height}
	}
	return geom.Rect{X: w.x, Y: w.y, Width: cw + h, Height: ch + v}
}

// RequestPositionAndSize asks for a new window geometry. The position is
// applied when the content commits the requested size. Outside maximized
// or fullscreen sizing the request also becomes the organic box.
func (w *Window) RequestPositionAndSize(x, y, width, height int) {
	box := geom.Rect{X: x, Y: y, Width: width, Height: height}
	if !w.inorganic {
		w.organic = box
	}
	w.requestPositionAndSize(box, w.fullscreen)
}

func (w *Window) requestPositionAndSize(box geom.Rect, fullscreen bool) {
	h, v := w.decorationInsets(fullscreen)
	cw := max(box.Width-h, 0)
	ch := max(box.Height-v, 0)
	serial := w.content.RequestSize(cw, ch)

	if len(w.pending) >= WindowMaxPending {
		dropped := w.pending[0]
		log.Printf("Warning: window %q: %d updates pending, dropping serial %d", w.title, len(w.pending), dropped.serial)
		w.pending = w.pending[1:]
	}
	w.pending = append(w.pending, pendingUpdate{serial: serial, x: box.X, y: box.Y, width: cw, height: ch})
}

// Serial is called by the content when the client committed serial. Every
// pending update up to serial is applied in request order.
func (w *Window) Serial(serial uint32) {
	if len(w.pending) == 0 {
		if !w.inorganic {
			w.organic = w.Box()
		}
		return
	}
	for len(w.pending) > 0 && w.pending[0].serial <= serial {
		p := w.pending[0]
		w.pending = w.pending[1:]
		w.SetPosition(p.x, p.y)
	}
}

// RequestMaximized asks for the maximized state. The window is sized to
// the workspace's maximize extents, or back to its organic box.
func (w *Window) RequestMaximized(maximized bool) {
	if w.workspace == nil || w.fullscreen {
		return
	}
	if maximized {
		w.inorganic = true
		w.requestPositionAndSize(w.workspace.MaximizeExtents(w, ""), false)
	} else {
		w.inorganic = false
		w.requestPositionAndSize(w.organic, false)
	}
	w.content.RequestMaximized(maximized)
}

// CommitMaximized records the maximized state the client acknowledged.
func (w *Window) CommitMaximized(maximized bool) {
	if w.maximized == maximized {
		return
	}
	w.maximized = maximized
	w.updateMenuItems()
	w.StateChanged.Emit(w)
}

// RequestFullscreen asks for the fullscreen state. Leaving fullscreen
// returns to the maximize extents if still maximized, else to the organic
// box.
func (w *Window) RequestFullscreen(fullscreen bool) {
	if w.workspace == nil {
		return
	}
	switch {
	case fullscreen:
		w.inorganic = true
		w.requestPositionAndSize(w.workspace.FullscreenExtents(w, ""), true)
	case w.maximized:
		w.inorganic = true
		w.requestPositionAndSize(w.workspace.MaximizeExtents(w, ""), false)
	default:
		w.inorganic = false
		w.requestPositionAndSize(w.organic, false)
	}
	w.content.RequestFullscreen(fullscreen)
}

// CommitFullscreen records the fullscreen state the client acknowledged,
// moves the window between the normal and fullscreen layers and removes
// or restores the decoration.
func (w *Window) CommitFullscreen(fullscreen bool) {
	if w.fullscreen == fullscreen {
		return
	}
	if fullscreen && w.shaded {
		w.RequestShaded(false)
	}
	w.fullscreen = fullscreen
	if w.workspace != nil {
		w.workspace.promoteWindow(w, fullscreen)
	}
	w.applyDecoration()
	w.StateChanged.Emit(w)
}

// RequestShaded rolls the window up to its titlebar, or back down. Only
// decorated, non-fullscreen windows shade.
func (w *Window) RequestShaded(shaded bool) {
	if w.shaded == shaded {
		return
	}
	if shaded && (!w.ssd || w.fullscreen) {
		return
	}
	w.shaded = shaded
	w.content.SetVisible(!shaded)
	if w.resizebar != nil {
		w.resizebar.SetVisible(!shaded)
	}
	w.updateMenuItems()
	w.StateChanged.Emit(w)
}

// SetActivated marks the window as the one receiving keyboard input.
// Deactivation closes the window menu.
func (w *Window) SetActivated(activated bool) {
	if w.activated == activated {
		return
	}
	w.activated = activated
	w.content.SetActivated(activated)
	if w.titlebar != nil {
		w.titlebar.SetActivated(activated)
	}
	if !activated {
		w.MenuSetEnabled(false)
		if w.workspace != nil && w.workspace.activated == w {
			w.workspace.activated = nil
		}
	}
}

// MenuSetEnabled opens or closes the window menu.
func (w *Window) MenuSetEnabled(enabled bool) {
	if w.menu.Open() == enabled {
		return
	}
	if enabled {
		w.updateMenuItems()
	}
	w.menu.SetOpen(enabled)
}

// RequestClose asks the client to close.
func (w *Window) RequestClose() { w.content.RequestClose() }

// RequestMinimize emits MinimizeRequested; minimizing is the host's job.
func (w *Window) RequestMinimize() { w.MinimizeRequested.Emit(w) }

// RequestMove starts an interactive move on the window's workspace.
func (w *Window) RequestMove() {
	if w.workspace != nil {
		w.workspace.BeginWindowMove(w)
	}
}

// RequestResize starts an interactive resize of the given edges.
func (w *Window) RequestResize(edges Edge) {
	if w.workspace != nil {
		w.workspace.BeginWindowResize(w, edges)
	}
}

// UpdateLayout sizes titlebar and resize bar to the content width.
func (w *Window) UpdateLayout() {
	if w.inLayout {
		return
	}
	w.inLayout = true
	cw, _ := w.content.Size()
	if w.titlebar != nil {
		w.titlebar.SetWidth(cw)
	}
	if w.resizebar != nil {
		w.resizebar.SetWidth(cw)
	}
	w.inLayout = false
	w.BaseContainer.UpdateLayout()
}

// PointerButton handles the move shortcut and activation before the
// regular dispatch. A press outside the open window menu closes it.
func (w *Window) PointerButton(ev ButtonEvent) bool {
	if ev.Type == ButtonDown && w.menu.Open() && !w.menu.PointerInside() {
		w.MenuSetEnabled(false)
	}
	if ev.Button == ButtonLeft && ev.Type == ButtonDown && ev.Modifiers&ModMove == ModMove {
		w.RequestMove()
		return true
	}
	if w.workspace != nil && ev.Type == ButtonDown {
		w.workspace.ActivateWindow(w)
		w.workspace.RaiseWindow(w)
	}
	rv := w.BaseContainer.PointerButton(ev)
	if !rv && w.properties&WindowPropertyRightClick != 0 &&
		ev.Button == ButtonRight && ev.Type == ButtonUp {
		w.RequestClose()
		return true
	}
	return rv
}

// KeyboardEvent goes to the window menu while it is open, else to the
// content.
func (w *Window) KeyboardEvent(ev KeyEvent) bool {
	if w.menu.Open() {
		return w.menu.Menu().KeyboardEvent(ev)
	}
	return w.content.KeyboardEvent(ev)
}

// Destroy destroys the window and its content. It must be unmapped.
func (w *Window) Destroy() {
	if w.workspace != nil {
		panic("toolkit: destroying a mapped window")
	}
	w.BaseContainer.Destroy()
}
