package toolkit

import (
	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/raster"
	"github.com/1broseidon/wlkit/internal/scene"
)

// Buffer is an element showing a raster buffer. It holds a reference on
// the buffer while set.
type Buffer struct {
	BaseElement

	buf    *raster.Buffer
	cursor Cursor
}

// NewBuffer creates an empty, invisible buffer element.
func NewBuffer(env *Env) *Buffer {
	b := &Buffer{}
	b.InitBuffer(b, env)
	return b
}

// InitBuffer prepares b. self is the outermost value embedding b.
func (b *Buffer) InitBuffer(self Element, env *Env) {
	b.InitElement(self, env)
}

// SetBuffer replaces the shown buffer, taking a reference on buf and
// releasing the previous one. A nil buf clears the element.
func (b *Buffer) SetBuffer(buf *raster.Buffer) {
	if buf == b.buf {
		return
	}
	oldW, oldH := b.size()
	if buf != nil {
		buf.Lock()
	}
	if b.buf != nil {
		b.buf.Unlock()
	}
	b.buf = buf
	if n, ok := b.node.(scene.Buffer); ok {
		n.SetBuffer(buf)
	}
	if w, h := b.size(); (w != oldW || h != oldH) && b.parent != nil {
		b.parent.cimpl.UpdateLayout()
	}
}

// RasterBuffer returns the shown buffer.
func (b *Buffer) RasterBuffer() *raster.Buffer { return b.buf }

func (b *Buffer) size() (int, int) {
	if b.buf == nil {
		return 0, 0
	}
	return b.buf.Width(), b.buf.Height()
}

// SetCursor sets the cursor shown while the pointer is inside.
func (b *Buffer) SetCursor(c Cursor) { b.cursor = c }

func (b *Buffer) Dimensions() geom.Rect {
	w, h := b.size()
	return geom.Rect{Width: w, Height: h}
}

func (b *Buffer) PointerEnter() {
	b.env.SetCursor(b.cursor)
}

func (b *Buffer) CreateSceneNode(parent scene.Tree) scene.Node {
	return parent.CreateBuffer(b.buf)
}

// Destroy releases the buffer reference.
func (b *Buffer) Destroy() {
	if b.buf != nil {
		b.buf.Unlock()
		b.buf = nil
	}
	b.BaseElement.Destroy()
}
