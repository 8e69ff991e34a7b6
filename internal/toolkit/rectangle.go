package toolkit

import (
	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/scene"
)

// Rectangle is a solid-color element.
type Rectangle struct {
	BaseElement

	width, height int
	argb          uint32
}

// NewRectangle creates an invisible rectangle.
func NewRectangle(env *Env, width, height int, argb uint32) *Rectangle {
	r := &Rectangle{width: width, height: height, argb: argb}
	r.InitElement(r, env)
	return r
}

// SetSize resizes the rectangle.
func (r *Rectangle) SetSize(width, height int) {
	if r.width == width && r.height == height {
		return
	}
	r.width, r.height = width, height
	if n, ok := r.node.(scene.Rect); ok {
		n.SetSize(width, height)
	}
}

// SetColor changes the rectangle's color.
func (r *Rectangle) SetColor(argb uint32) {
	r.argb = argb
	if n, ok := r.node.(scene.Rect); ok {
		n.SetColor(argb)
	}
}

func (r *Rectangle) Color() uint32 { return r.argb }

func (r *Rectangle) Dimensions() geom.Rect {
	return geom.Rect{Width: r.width, Height: r.height}
}

func (r *Rectangle) CreateSceneNode(parent scene.Tree) scene.Node {
	return parent.CreateRect(r.width, r.height, r.argb)
}
