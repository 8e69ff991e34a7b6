package toolkit

import "github.com/1broseidon/wlkit/internal/geom"

// ContentClient is the client surface behind a window's content. All
// requests may be served asynchronously.
type ContentClient interface {
	// RequestSize asks the client to resize and returns the serial the
	// client will echo in its commit.
	RequestSize(width, height int) uint32
	RequestClose()
	RequestMaximized(maximized bool)
	RequestFullscreen(fullscreen bool)
	SetActivated(activated bool)
}

// Content adapts a client surface to a window. It holds the surface
// element and a popup container stacked above it.
type Content struct {
	Pane

	client ContentClient
	window *Window

	committedWidth  int
	committedHeight int
}

// NewContent creates invisible content for client. element is the
// client's surface and may be nil.
func NewContent(env *Env, client ContentClient, element Element) *Content {
	c := &Content{client: client}
	c.InitPane(c, env, element)
	return c
}

// Window returns the window holding the content.
func (c *Content) Window() *Window { return c.window }

func (c *Content) Client() ContentClient { return c.client }

// Size returns the last committed size.
func (c *Content) Size() (int, int) { return c.committedWidth, c.committedHeight }

// Dimensions is the committed size.
func (c *Content) Dimensions() geom.Rect {
	return geom.Rect{Width: c.committedWidth, Height: c.committedHeight}
}

// PointerArea covers the surface and the popups.
func (c *Content) PointerArea() geom.Rect {
	return c.Dimensions().Union(c.Pane.PointerArea())
}

// RequestSize forwards a size request and returns its serial.
func (c *Content) RequestSize(width, height int) uint32 {
	if c.client == nil {
		return 0
	}
	return c.client.RequestSize(width, height)
}

func (c *Content) RequestClose() {
	if c.client != nil {
		c.client.RequestClose()
	}
}

func (c *Content) RequestMaximized(maximized bool) {
	if c.client != nil {
		c.client.RequestMaximized(maximized)
	}
}

func (c *Content) RequestFullscreen(fullscreen bool) {
	if c.client != nil {
		c.client.RequestFullscreen(fullscreen)
	}
}

func (c *Content) SetActivated(activated bool) {
	if c.client != nil {
		c.client.SetActivated(activated)
	}
}

// CommitSize is called when the client committed a new size in reply to
// the request with the given serial. The window applies the matching
// placement before the layout runs.
func (c *Content) CommitSize(serial uint32, width, height int) {
	c.committedWidth, c.committedHeight = width, height
	if c.window != nil {
		c.window.Serial(serial)
	}
	c.cimpl.UpdateLayout()
}

// KeyboardEvent goes to the surface element.
func (c *Content) KeyboardEvent(ev KeyEvent) bool {
	if c.element == nil {
		return false
	}
	return c.element.KeyboardEvent(ev)
}

// PointerHitTest also accepts the committed area when the surface does not
// cover it, so the window still sees presses there.
func (c *Content) PointerHitTest(x, y float64) bool {
	if !c.visible {
		return false
	}
	return c.Pane.PointerHitTest(x, y) || c.Dimensions().ContainsFloat(x, y)
}

func (c *Content) PointerMotion(ev MotionEvent) bool {
	return c.pointerMotion(ev, c.Dimensions().ContainsFloat)
}
