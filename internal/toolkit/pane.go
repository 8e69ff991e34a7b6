package toolkit

import "github.com/1broseidon/wlkit/internal/geom"

// Pane holds a principal element at its origin and a popup container
// stacked above it.
type Pane struct {
	BaseContainer

	element Element
	popups  *BaseContainer
}

// NewPane creates an invisible pane around element.
func NewPane(env *Env, element Element) *Pane {
	p := &Pane{}
	p.InitPane(p, env, element)
	return p
}

// InitPane prepares p. self is the outermost value embedding p.
func (p *Pane) InitPane(self Container, env *Env, element Element) {
	p.InitContainer(self, env)
	p.popups = NewContainer(env)
	p.popups.setVisibleQuiet(true)
	p.appendQuiet(p.popups)
	if element != nil {
		p.setElement(element)
	}
}

func (p *Pane) setElement(element Element) {
	p.element = element
	element.SetPosition(0, 0)
	p.appendQuiet(element)
}

// Element returns the principal element.
func (p *Pane) Element() Element { return p.element }

// Dimensions are those of the principal element; popups may extend
// beyond them.
func (p *Pane) Dimensions() geom.Rect {
	if p.element == nil || !p.element.Visible() {
		return geom.Rect{}
	}
	x, y := p.element.Position()
	return p.element.Dimensions().Translate(x, y)
}

// AddPopup stacks e on top of the other popups. The caller positions it
// relative to the pane.
func (p *Pane) AddPopup(e Element) { p.popups.AddElement(e) }

// RemovePopup removes a popup added with AddPopup.
func (p *Pane) RemovePopup(e Element) { p.popups.RemoveElement(e) }

// Popups returns the popups, top-most first.
func (p *Pane) Popups() []Element { return p.popups.Children() }
