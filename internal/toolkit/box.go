package toolkit

// Orientation is the axis along which a Box lays out its elements.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Box lays out its elements along one axis, separated by margin
// rectangles. Invisible elements are skipped and take no margin.
type Box struct {
	BaseContainer

	orientation Orientation
	style       MarginStyle

	elements    *BaseContainer
	margins     *BaseContainer
	marginRects []*Rectangle
	inLayout    bool
}

// NewBox creates an invisible box.
func NewBox(env *Env, orientation Orientation, style MarginStyle) *Box {
	b := &Box{}
	b.InitBox(b, env, orientation, style)
	return b
}

// InitBox prepares b. self is the outermost value embedding b.
func (b *Box) InitBox(self Container, env *Env, orientation Orientation, style MarginStyle) {
	b.InitContainer(self, env)
	b.orientation = orientation
	b.style = style

	b.elements = NewContainer(env)
	b.elements.setVisibleQuiet(true)
	b.appendQuiet(b.elements)
	b.margins = NewContainer(env)
	b.margins.setVisibleQuiet(true)
	b.appendQuiet(b.margins)
}

// AddElementFront adds e as the first element along the axis.
func (b *Box) AddElementFront(e Element) { b.elements.AddElement(e) }

// AddElementBack adds e as the last element along the axis.
func (b *Box) AddElementBack(e Element) { b.elements.AddElementAtBottom(e) }

// AddElementBefore adds e directly before reference along the axis.
func (b *Box) AddElementBefore(e, reference Element) { b.elements.AddElementAbove(e, reference) }

// RemoveElement removes one of the box's elements.
func (b *Box) RemoveElement(e Element) { b.elements.RemoveElement(e) }

// Elements returns the elements in layout order.
func (b *Box) Elements() []Element { return b.elements.Children() }

// ContainsElement reports whether e is one of the box's elements.
func (b *Box) ContainsElement(e Element) bool { return b.elements.Contains(e) }

// SetStyle changes the margin style and lays out again.
func (b *Box) SetStyle(style MarginStyle) {
	b.style = style
	for _, r := range b.marginRects {
		r.SetColor(style.Color)
	}
	b.cimpl.UpdateLayout()
}

func (b *Box) Style() MarginStyle { return b.style }

// UpdateLayout positions the elements along the axis.
func (b *Box) UpdateLayout() {
	if b.elements != nil && !b.inLayout {
		b.inLayout = true
		b.layout()
		b.inLayout = false
	}
	b.BaseContainer.UpdateLayout()
}

func (b *Box) layout() {
	var visible []Element
	extent := 0
	for _, e := range b.elements.children {
		if !e.Visible() {
			continue
		}
		visible = append(visible, e)
		d := e.Dimensions()
		if b.orientation == Horizontal {
			extent = max(extent, d.Height)
		} else {
			extent = max(extent, d.Width)
		}
	}

	needed := max(len(visible)-1, 0)
	if b.style.Width <= 0 {
		needed = 0
	}
	for len(b.marginRects) < needed {
		r := NewRectangle(b.env, 0, 0, b.style.Color)
		b.marginRects = append(b.marginRects, r)
		b.margins.appendQuiet(r)
	}

	pos := 0
	for i, e := range visible {
		if i > 0 && b.style.Width > 0 {
			r := b.marginRects[i-1]
			if b.orientation == Horizontal {
				r.SetPosition(pos, 0)
				r.SetSize(b.style.Width, extent)
			} else {
				r.SetPosition(0, pos)
				r.SetSize(extent, b.style.Width)
			}
			r.setVisibleQuiet(true)
			pos += b.style.Width
		}
		d := e.Dimensions()
		if b.orientation == Horizontal {
			e.SetPosition(pos-d.X, -d.Y)
			pos += d.Width
		} else {
			e.SetPosition(-d.X, pos-d.Y)
			pos += d.Height
		}
	}
	for i := needed; i < len(b.marginRects); i++ {
		b.marginRects[i].setVisibleQuiet(false)
	}
}
