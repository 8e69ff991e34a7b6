package toolkit

// Bordered frames a single element with four rectangles. The northern and
// southern rectangles span the corners.
type Bordered struct {
	BaseContainer

	element Element
	style   MarginStyle

	north, east, south, west *Rectangle
}

// NewBordered wraps element in an invisible border container.
func NewBordered(env *Env, element Element, style MarginStyle) *Bordered {
	b := &Bordered{}
	b.InitBordered(b, env, element, style)
	return b
}

// InitBordered prepares b. self is the outermost value embedding b.
func (b *Bordered) InitBordered(self Container, env *Env, element Element, style MarginStyle) {
	b.InitContainer(self, env)
	b.style = style
	b.element = element
	b.appendQuiet(element)
	b.north = b.newEdge()
	b.east = b.newEdge()
	b.south = b.newEdge()
	b.west = b.newEdge()
	b.layout()
}

func (b *Bordered) newEdge() *Rectangle {
	r := NewRectangle(b.env, 0, 0, b.style.Color)
	r.setVisibleQuiet(b.style.Width > 0)
	b.appendQuiet(r)
	return r
}

// Element returns the framed element.
func (b *Bordered) Element() Element { return b.element }

// Edges returns the northern, eastern, southern and western rectangles.
func (b *Bordered) Edges() (north, east, south, west *Rectangle) {
	return b.north, b.east, b.south, b.west
}

func (b *Bordered) Style() MarginStyle { return b.style }

// SetStyle changes the border width and color.
func (b *Bordered) SetStyle(style MarginStyle) {
	b.style = style
	for _, r := range []*Rectangle{b.north, b.east, b.south, b.west} {
		r.SetColor(style.Color)
		r.setVisibleQuiet(style.Width > 0)
	}
	b.cimpl.UpdateLayout()
}

// UpdateLayout frames the element's current dimensions.
func (b *Bordered) UpdateLayout() {
	if b.west != nil && b.element != nil && b.element.base().parent == &b.BaseContainer {
		b.layout()
	}
	b.BaseContainer.UpdateLayout()
}

func (b *Bordered) layout() {
	w := b.style.Width
	d := b.element.Dimensions()
	ex, ey := w-d.X, w-d.Y
	b.element.SetPosition(ex, ey)

	place := func(r *Rectangle, x, y, width, height int) {
		r.SetPosition(x, y)
		r.SetSize(width, height)
	}
	place(b.north, ex-w, ey-w, d.Width+2*w, w)
	place(b.east, ex+d.Width, ey, w, d.Height)
	place(b.south, ex-w, ey+d.Height, d.Width+2*w, w)
	place(b.west, ex-w, ey, w, d.Height)
}
