package toolkit

import (
	"math"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/scene"
)

// Container is an element holding child elements, ordered top-most first.
type Container interface {
	Element
	container() *BaseContainer
	// UpdateLayout repositions the children and propagates to the
	// parent container.
	UpdateLayout()
}

// BaseContainer implements the child list, pointer and keyboard dispatch
// and scene-tree mirroring shared by all containers.
type BaseContainer struct {
	BaseElement
	cimpl Container

	children []Element

	pointerFocus  Element
	keyboardChild Element
	// leftButton holds the child that saw the last primary-button press.
	leftButton  Element
	pointerGrab Element
	// admitFocus, when set, may refuse a child's keyboard focus request.
	admitFocus func(Element) bool

	destroying bool
}

// NewContainer creates a plain container with no layout of its own.
func NewContainer(env *Env) *BaseContainer {
	c := &BaseContainer{}
	c.InitContainer(c, env)
	return c
}

// InitContainer prepares c. self is the outermost value embedding c.
func (c *BaseContainer) InitContainer(self Container, env *Env) {
	c.InitElement(self, env)
	c.cimpl = self
}

func (c *BaseContainer) container() *BaseContainer { return c }

func (c *BaseContainer) sceneTree() scene.Tree {
	t, _ := c.node.(scene.Tree)
	return t
}

// Children returns the children, top-most first.
func (c *BaseContainer) Children() []Element {
	out := make([]Element, len(c.children))
	copy(out, c.children)
	return out
}

func (c *BaseContainer) indexOf(e Element) int {
	for i, child := range c.children {
		if child == e {
			return i
		}
	}
	return -1
}

// Contains reports whether e is a direct child.
func (c *BaseContainer) Contains(e Element) bool { return c.indexOf(e) >= 0 }

func (c *BaseContainer) adopt(e Element) {
	b := e.base()
	if b.parent != nil {
		panic("toolkit: element already belongs to a container")
	}
	b.parent = c
}

// AddElement adds e on top of all other children.
func (c *BaseContainer) AddElement(e Element) {
	c.insertAt(0, e)
}

// AddElementAtBottom adds e below all other children.
func (c *BaseContainer) AddElementAtBottom(e Element) {
	c.insertAt(len(c.children), e)
}

// AddElementAbove adds e directly on top of reference, which must be a
// child. A nil reference adds e at the bottom.
func (c *BaseContainer) AddElementAbove(e, reference Element) {
	if reference == nil {
		c.AddElementAtBottom(e)
		return
	}
	i := c.indexOf(reference)
	if i < 0 {
		panic("toolkit: reference element is not a child")
	}
	c.insertAt(i, e)
}

func (c *BaseContainer) insertAt(i int, e Element) {
	c.adopt(e)
	c.children = append(c.children, nil)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = e
	e.AttachToSceneGraph()
	c.syncNodeOrder(e)
	c.cimpl.UpdateLayout()
}

// appendQuiet adds e at the bottom without running the layout. Composite
// elements use it while building their fixed parts.
func (c *BaseContainer) appendQuiet(e Element) {
	c.adopt(e)
	c.children = append(c.children, e)
	e.AttachToSceneGraph()
	c.syncNodeOrder(e)
}

// syncNodeOrder places e's node to match its index in the child list.
func (c *BaseContainer) syncNodeOrder(e Element) {
	n := e.base().node
	if n == nil {
		return
	}
	i := c.indexOf(e)
	for j := i - 1; j >= 0; j-- {
		if above := c.children[j].base().node; above != nil {
			n.PlaceBelow(above)
			return
		}
	}
	for j := i + 1; j < len(c.children); j++ {
		if below := c.children[j].base().node; below != nil {
			n.PlaceAbove(below)
			return
		}
	}
}

// RemoveElement removes e, which must be a child. Focus, latch and grab
// references to e are cleared and its scene node is destroyed.
func (c *BaseContainer) RemoveElement(e Element) {
	i := c.indexOf(e)
	if i < 0 {
		panic("toolkit: removing an element that is not a child")
	}
	c.children = append(c.children[:i], c.children[i+1:]...)

	if c.pointerGrab == e {
		c.pointerGrab = nil
		e.PointerGrabCancel()
		if c.parent != nil {
			c.parent.ungrabFor(c.cimpl)
		}
	}
	if c.pointerFocus == e {
		c.pointerFocus = nil
		e.PointerMotion(Outside(c.lastTime))
	}
	if c.leftButton == e {
		c.leftButton = nil
	}
	if c.keyboardChild == e {
		c.keyboardChild = nil
		e.KeyboardBlur()
	}

	e.base().parent = nil
	e.AttachToSceneGraph()
	if !c.destroying {
		c.cimpl.UpdateLayout()
	}
}

// RaiseElementToTop moves the child e to the top of the z-order.
func (c *BaseContainer) RaiseElementToTop(e Element) {
	i := c.indexOf(e)
	if i < 0 {
		panic("toolkit: raising an element that is not a child")
	}
	if i == 0 {
		return
	}
	copy(c.children[1:i+1], c.children[:i])
	c.children[0] = e
	if n := e.base().node; n != nil {
		n.RaiseToTop()
	}
	c.cimpl.UpdateLayout()
}

// AttachToSceneGraph attaches the container's tree and then the children,
// bottom-most first so the node order follows the child order.
func (c *BaseContainer) AttachToSceneGraph() {
	c.BaseElement.AttachToSceneGraph()
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].AttachToSceneGraph()
	}
}

// CreateSceneNode creates a tree node.
func (c *BaseContainer) CreateSceneNode(parent scene.Tree) scene.Node {
	return parent.CreateTree()
}

// Dimensions is the union of the visible children's dimensions.
func (c *BaseContainer) Dimensions() geom.Rect {
	var r geom.Rect
	for _, child := range c.children {
		if !child.Visible() {
			continue
		}
		x, y := child.Position()
		r = r.Union(child.Dimensions().Translate(x, y))
	}
	return r
}

// PointerArea is the union of the visible children's pointer areas.
func (c *BaseContainer) PointerArea() geom.Rect {
	var r geom.Rect
	for _, child := range c.children {
		if !child.Visible() {
			continue
		}
		x, y := child.Position()
		r = r.Union(child.PointerArea().Translate(x, y))
	}
	return r
}

// PointerHitTest accepts the point if a visible child does, or if a child
// holds a pointer grab.
func (c *BaseContainer) PointerHitTest(x, y float64) bool {
	if !c.visible {
		return false
	}
	if c.pointerGrab != nil {
		return true
	}
	return c.childAt(x, y) != nil
}

func (c *BaseContainer) childAt(x, y float64) Element {
	if math.IsNaN(x) || math.IsNaN(y) {
		return nil
	}
	for _, child := range c.children {
		if !child.Visible() {
			continue
		}
		cx, cy := child.Position()
		if child.PointerHitTest(x-float64(cx), y-float64(cy)) {
			return child
		}
	}
	return nil
}

// PointerFocus returns the child holding pointer focus.
func (c *BaseContainer) PointerFocus() Element { return c.pointerFocus }

// PointerMotion updates the pointer focus child and forwards the motion to
// it. The previous focus sees its leave before the new focus sees its
// enter, and the enter precedes the motion.
func (c *BaseContainer) PointerMotion(ev MotionEvent) bool {
	return c.pointerMotion(ev, nil)
}

// pointerMotion dispatches ev to the child under it. covers, when set,
// keeps the pointer inside c over areas no child takes.
func (c *BaseContainer) pointerMotion(ev MotionEvent, covers func(x, y float64) bool) bool {
	if !c.visible {
		ev.X, ev.Y = math.NaN(), math.NaN()
	}
	c.recordPointer(ev)

	if g := c.pointerGrab; g != nil {
		gx, gy := g.Position()
		g.PointerMotion(MotionEvent{X: ev.X - float64(gx), Y: ev.Y - float64(gy), Time: ev.Time})
		return true
	}

	focus := c.childAt(ev.X, ev.Y)
	c.setPointerFocus(focus, ev.Time)
	inside := focus != nil || (covers != nil && covers(ev.X, ev.Y))
	c.setPointerInside(inside)
	if focus == nil {
		return inside
	}
	fx, fy := focus.Position()
	focus.PointerMotion(MotionEvent{X: ev.X - float64(fx), Y: ev.Y - float64(fy), Time: ev.Time})
	return true
}

func (c *BaseContainer) setPointerFocus(focus Element, time uint32) {
	if c.pointerFocus == focus {
		return
	}
	old := c.pointerFocus
	c.pointerFocus = focus
	if old != nil {
		old.PointerMotion(Outside(time))
	}
}

// PointerButton dispatches a button event. Primary-button presses latch
// the focused child, which then receives the release and, if the release
// happened within it, a synthesized click. Clicks arriving from the parent
// are not forwarded; each container synthesizes its own.
func (c *BaseContainer) PointerButton(ev ButtonEvent) bool {
	if c.pointerGrab != nil {
		return c.pointerGrab.PointerButton(ev)
	}
	if ev.Type == ButtonClick {
		return false
	}
	if ev.Button != ButtonLeft {
		if c.pointerFocus == nil {
			return false
		}
		return c.pointerFocus.PointerButton(ev)
	}

	switch ev.Type {
	case ButtonDown:
		c.leftButton = c.pointerFocus
		if c.leftButton == nil {
			return false
		}
		return c.leftButton.PointerButton(ev)
	case ButtonUp:
		target := c.leftButton
		c.leftButton = nil
		if target == nil {
			return false
		}
		rv := target.PointerButton(ev)
		if target == c.pointerFocus && target.base().pointerInside {
			click := ev
			click.Type = ButtonClick
			if target.PointerButton(click) {
				rv = true
			}
		}
		return rv
	}
	return false
}

// LeftButtonElement returns the child latched by the last primary press.
func (c *BaseContainer) LeftButtonElement() Element { return c.leftButton }

// PointerAxis forwards to the grab or pointer focus child.
func (c *BaseContainer) PointerAxis(ev AxisEvent) bool {
	if c.pointerGrab != nil {
		return c.pointerGrab.PointerAxis(ev)
	}
	if c.pointerFocus == nil {
		return false
	}
	return c.pointerFocus.PointerAxis(ev)
}

// PointerGrabCancel cancels a grab held by a child.
func (c *BaseContainer) PointerGrabCancel() {
	if g := c.pointerGrab; g != nil {
		c.pointerGrab = nil
		g.PointerGrabCancel()
	}
}

// PointerGrabElement returns the child holding the pointer grab.
func (c *BaseContainer) PointerGrabElement() Element { return c.pointerGrab }

func (c *BaseContainer) grabFor(e Element) {
	if c.pointerGrab == e {
		return
	}
	if old := c.pointerGrab; old != nil {
		c.pointerGrab = nil
		old.PointerGrabCancel()
	}
	c.pointerGrab = e
	// Crossing into the grab: everyone else loses the pointer.
	if c.pointerFocus != nil && c.pointerFocus != e {
		c.setPointerFocus(nil, c.lastTime)
	}
	c.pointerFocus = e
	if c.parent != nil {
		c.parent.grabFor(c.cimpl)
	}
}

func (c *BaseContainer) ungrabFor(e Element) {
	if c.pointerGrab != e {
		return
	}
	c.pointerGrab = nil
	if c.parent != nil {
		c.parent.ungrabFor(c.cimpl)
	}
}

// KeyboardEvent forwards to the keyboard focus child.
func (c *BaseContainer) KeyboardEvent(ev KeyEvent) bool {
	if c.keyboardChild == nil {
		return false
	}
	return c.keyboardChild.KeyboardEvent(ev)
}

// KeyboardBlur blurs the whole focus path below c.
func (c *BaseContainer) KeyboardBlur() {
	if kc := c.keyboardChild; kc != nil {
		c.keyboardChild = nil
		kc.KeyboardBlur()
	}
	c.BaseElement.KeyboardBlur()
}

// KeyboardFocusElement returns the child on the keyboard focus path.
func (c *BaseContainer) KeyboardFocusElement() Element { return c.keyboardChild }

// SetKeyboardFocusElement moves keyboard focus to the child e, or clears
// it for nil. The focus path is extended up to the root.
func (c *BaseContainer) SetKeyboardFocusElement(e Element) {
	if e != nil && e.base().parent != c {
		panic("toolkit: keyboard focus on an element that is not a child")
	}
	if e != nil && c.admitFocus != nil && !c.admitFocus(e) {
		return
	}
	old := c.keyboardChild
	c.keyboardChild = e
	if old != nil && old != e {
		old.KeyboardBlur()
	}
	if e == nil {
		return
	}
	e.base().keyboardFocus = true
	c.keyboardFocus = true
	if c.parent != nil {
		c.parent.SetKeyboardFocusElement(c.cimpl)
	}
}

// UpdateLayout propagates to the parent. Containers with a layout of their
// own override it, position their children and then call this.
func (c *BaseContainer) UpdateLayout() {
	if c.parent != nil {
		c.parent.cimpl.UpdateLayout()
	}
}

// Destroy removes and destroys all children, then the container itself.
func (c *BaseContainer) Destroy() {
	c.destroying = true
	for len(c.children) > 0 {
		child := c.children[0]
		c.RemoveElement(child)
		child.Destroy()
	}
	c.BaseElement.Destroy()
}
