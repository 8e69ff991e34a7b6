package toolkit

import (
	"image"
	"log"

	"github.com/1broseidon/wlkit/internal/raster"
)

// Resizebar is the window decoration below the content. Its three areas
// start resizes of the bottom-left corner, the bottom edge and the
// bottom-right corner.
type Resizebar struct {
	Box

	window *Window
	style  ResizebarStyle
	width  int

	left, center, right *resizebarArea
}

// NewResizebar creates the resize bar of window.
func NewResizebar(env *Env, window *Window, style ResizebarStyle) *Resizebar {
	r := &Resizebar{window: window, style: style}
	r.InitBox(r, env, Horizontal, style.Margin)
	r.left = newResizebarArea(env, r, EdgeLeft|EdgeBottom, CursorResizeSW)
	r.AddElementBack(r.left)
	r.center = newResizebarArea(env, r, EdgeBottom, CursorResizeS)
	r.AddElementBack(r.center)
	r.right = newResizebarArea(env, r, EdgeRight|EdgeBottom, CursorResizeSE)
	r.AddElementBack(r.right)
	return r
}

// Height returns the bar's height.
func (r *Resizebar) Height() int { return r.style.Height }

// SetWidth re-renders the bar for the given width. Corners shrink, and
// finally disappear, when the bar is narrow.
func (r *Resizebar) SetWidth(width int) bool {
	if width == r.width && r.center.RasterBuffer() != nil {
		return true
	}
	if width <= 0 {
		return false
	}
	r.width = width
	margin := max(r.style.Margin.Width, 0)
	corner := r.style.CornerWidth
	if width-2*corner-2*margin < corner {
		corner = (width - 2*margin) / 3
	}

	if corner <= 0 {
		r.left.setVisibleQuiet(false)
		r.right.setVisibleQuiet(false)
		r.center.setVisibleQuiet(true)
		r.center.redraw(width)
	} else {
		r.left.setVisibleQuiet(true)
		r.right.setVisibleQuiet(true)
		r.center.setVisibleQuiet(true)
		r.left.redraw(corner)
		r.center.redraw(width - 2*corner - 2*margin)
		r.right.redraw(corner)
	}
	r.cimpl.UpdateLayout()
	return true
}

type resizebarArea struct {
	Buffer
	bar   *Resizebar
	edges Edge

	releasedTex *raster.Buffer
	pressedTex  *raster.Buffer
	pressed     bool
}

func newResizebarArea(env *Env, bar *Resizebar, edges Edge, cursor Cursor) *resizebarArea {
	a := &resizebarArea{bar: bar, edges: edges}
	a.InitBuffer(a, env)
	a.SetCursor(cursor)
	return a
}

// Edges returns the edges a press on the area resizes.
func (a *resizebarArea) Edges() Edge { return a.edges }

func (a *resizebarArea) redraw(width int) {
	s := a.bar.style
	bounds := image.Rect(0, 0, width, s.Height)
	released, err := raster.New(width, s.Height)
	if err != nil {
		log.Printf("Warning: resize bar: %v", err)
		return
	}
	pressed, err := raster.New(width, s.Height)
	if err != nil {
		released.Unlock()
		log.Printf("Warning: resize bar: %v", err)
		return
	}
	raster.FillRect(released, bounds, s.Fill)
	raster.FillRect(pressed, bounds, s.Fill)
	raster.Bezel(released, bounds, s.BezelWidth, true)
	raster.Bezel(pressed, bounds, s.BezelWidth, false)

	a.releaseTextures()
	a.releasedTex, a.pressedTex = released, pressed
	a.show()
}

func (a *resizebarArea) releaseTextures() {
	if a.releasedTex != nil {
		a.releasedTex.Unlock()
		a.releasedTex = nil
	}
	if a.pressedTex != nil {
		a.pressedTex.Unlock()
		a.pressedTex = nil
	}
}

func (a *resizebarArea) show() {
	if a.pressed {
		a.SetBuffer(a.pressedTex)
	} else {
		a.SetBuffer(a.releasedTex)
	}
}

func (a *resizebarArea) PointerButton(ev ButtonEvent) bool {
	if ev.Button != ButtonLeft {
		return false
	}
	switch ev.Type {
	case ButtonDown:
		a.pressed = true
		a.show()
		a.bar.window.RequestResize(a.edges)
	case ButtonUp:
		a.pressed = false
		a.show()
	}
	return true
}

func (a *resizebarArea) Destroy() {
	a.releaseTextures()
	a.Buffer.Destroy()
}
