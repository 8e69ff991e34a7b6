package daemon

import (
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

// headlessClient stands in for a client surface. It acknowledges every
// request on a later loop iteration, the way a well-behaved client would.
type headlessClient struct {
	host    *Host
	id      int
	surface *toolkit.Rectangle
	content *toolkit.Content

	serial    uint32
	closed    bool
	activated bool
}

func (c *headlessClient) post(fn func()) {
	err := c.host.loop.Post(func() {
		if !c.closed {
			fn()
		}
	})
	if err != nil {
		c.host.logger.Warn("dropping client reply", "id", c.id, "error", err)
	}
}

func (c *headlessClient) RequestSize(width, height int) uint32 {
	c.serial++
	serial := c.serial
	c.post(func() {
		c.surface.SetSize(width, height)
		c.content.CommitSize(serial, width, height)
	})
	return serial
}

func (c *headlessClient) RequestClose() {
	c.post(func() { c.host.destroyWindow(c.id) })
}

func (c *headlessClient) RequestMaximized(maximized bool) {
	c.post(func() { c.content.Window().CommitMaximized(maximized) })
}

func (c *headlessClient) RequestFullscreen(fullscreen bool) {
	c.post(func() { c.content.Window().CommitFullscreen(fullscreen) })
}

func (c *headlessClient) SetActivated(activated bool) { c.activated = activated }

// lockSurface is a solid surface covering one output while locked.
type lockSurface struct {
	rect *toolkit.Rectangle
}

func (s lockSurface) Configure(width, height int) { s.rect.SetSize(width, height) }

func addLockSurface(env *toolkit.Env, l *toolkit.Lock, id output.ID) error {
	rect := toolkit.NewRectangle(env, 0, 0, 0xff000000)
	return l.AddSurface(id, rect, lockSurface{rect: rect})
}
