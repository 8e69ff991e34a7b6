// Package toolkit is a retained-mode element tree for compositor-side
// decorations and shell UI: windows with titlebars and resize bars, menus,
// layer panels, workspaces and the session lock.
//
// Elements form a tree of containers. Each element mirrors itself into a
// scene.Tree once its parent is attached, and receives pointer and keyboard
// events in its own coordinate space.
//
// The tree is single-threaded: every call must come from the host's event
// loop goroutine.
package toolkit

import (
	"math"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/scene"
)

// Element is a node of the toolkit tree. Concrete elements embed
// BaseElement (or BaseContainer) and override the event methods they care
// about.
type Element interface {
	base() *BaseElement

	// Dimensions returns the element's extents relative to its position.
	Dimensions() geom.Rect
	// PointerArea returns the area accepting pointer input, relative to
	// the element's position. It is usually Dimensions.
	PointerArea() geom.Rect
	// PointerHitTest reports whether the element wants the pointer at
	// (x, y), in element coordinates.
	PointerHitTest(x, y float64) bool

	PointerMotion(ev MotionEvent) bool
	PointerButton(ev ButtonEvent) bool
	PointerAxis(ev AxisEvent) bool
	PointerEnter()
	PointerLeave()
	PointerGrabCancel()

	KeyboardEvent(ev KeyEvent) bool
	KeyboardBlur()

	// CreateSceneNode creates the element's node below parent.
	CreateSceneNode(parent scene.Tree) scene.Node
	// AttachToSceneGraph creates, reparents or destroys the element's
	// scene node to follow the parent container's attachment.
	AttachToSceneGraph()
	Destroy()

	SetVisible(visible bool)
	Visible() bool
	SetPosition(x, y int)
	Position() (x, y int)
	ParentContainer() Container
}

// BaseElement carries the state shared by all elements.
type BaseElement struct {
	impl Element
	env  *Env

	x, y    int
	visible bool

	parent *BaseContainer
	// sceneParent is the tree used when the element has no parent
	// container; only the root sets it.
	sceneParent scene.Tree

	node               scene.Node
	removeNodeListener func()
	lastX, lastY       float64
	lastTime           uint32
	pointerInside      bool
	keyboardFocus      bool
	destroyed          bool
}

// InitElement prepares e. self is the outermost value embedding e; event
// handling dispatches through it.
func (e *BaseElement) InitElement(self Element, env *Env) {
	e.impl = self
	e.env = env
	e.lastX = math.NaN()
	e.lastY = math.NaN()
}

func (e *BaseElement) base() *BaseElement { return e }

// Env returns the environment the element was created with.
func (e *BaseElement) Env() *Env { return e.env }

// Dimensions is empty for a plain element.
func (e *BaseElement) Dimensions() geom.Rect { return geom.Rect{} }

// PointerArea defaults to the element's dimensions.
func (e *BaseElement) PointerArea() geom.Rect { return e.impl.Dimensions() }

// PointerHitTest accepts points within the pointer area of a visible element.
func (e *BaseElement) PointerHitTest(x, y float64) bool {
	return e.visible && e.impl.PointerArea().ContainsFloat(x, y)
}

// PointerMotion records the position and updates the pointer-inside state,
// firing PointerEnter or PointerLeave on change. An invisible element
// treats every position as outside.
func (e *BaseElement) PointerMotion(ev MotionEvent) bool {
	if !e.visible {
		ev.X, ev.Y = math.NaN(), math.NaN()
	}
	e.recordPointer(ev)
	inside := e.impl.PointerArea().ContainsFloat(ev.X, ev.Y)
	e.setPointerInside(inside)
	return inside
}

func (e *BaseElement) recordPointer(ev MotionEvent) {
	e.lastX, e.lastY, e.lastTime = ev.X, ev.Y, ev.Time
}

func (e *BaseElement) setPointerInside(inside bool) {
	if inside == e.pointerInside {
		return
	}
	e.pointerInside = inside
	if inside {
		e.impl.PointerEnter()
	} else {
		e.impl.PointerLeave()
	}
}

// LastPointer returns the most recent pointer position delivered to the
// element, NaN if the pointer is outside.
func (e *BaseElement) LastPointer() (x, y float64) { return e.lastX, e.lastY }

// PointerInside reports whether the pointer is within the element.
func (e *BaseElement) PointerInside() bool { return e.pointerInside }

func (e *BaseElement) PointerButton(ButtonEvent) bool { return false }

func (e *BaseElement) PointerAxis(AxisEvent) bool { return false }

func (e *BaseElement) PointerEnter() {}

func (e *BaseElement) PointerLeave() {}

func (e *BaseElement) PointerGrabCancel() {}

// PointerGrab asks all containers up to the root to route pointer events
// to this element only.
func (e *BaseElement) PointerGrab() {
	if e.parent != nil {
		e.parent.grabFor(e.impl)
	}
}

// PointerUngrab releases a grab taken with PointerGrab.
func (e *BaseElement) PointerUngrab() {
	if e.parent != nil {
		e.parent.ungrabFor(e.impl)
	}
}

func (e *BaseElement) KeyboardEvent(KeyEvent) bool { return false }

// KeyboardBlur clears the keyboard-focus flag.
func (e *BaseElement) KeyboardBlur() { e.keyboardFocus = false }

// HasKeyboardFocus reports whether the element is on the keyboard focus path.
func (e *BaseElement) HasKeyboardFocus() bool { return e.keyboardFocus }

// RequestKeyboardFocus moves the keyboard focus to the element, blurring
// whatever held it before.
func (e *BaseElement) RequestKeyboardFocus() {
	if e.parent != nil {
		e.parent.SetKeyboardFocusElement(e.impl)
	}
}

// CreateSceneNode must be overridden by concrete elements.
func (e *BaseElement) CreateSceneNode(scene.Tree) scene.Node {
	panic("toolkit: element does not create a scene node")
}

// AttachToSceneGraph mirrors the parent's attachment. Without a parent
// tree, the node is destroyed; with one, it is created or reparented and
// synced with the element's visibility and position.
func (e *BaseElement) AttachToSceneGraph() {
	parentTree := e.sceneParent
	if e.parent != nil {
		parentTree = e.parent.sceneTree()
	}
	if parentTree == nil {
		e.destroySceneNode()
		return
	}

	if e.node != nil {
		if e.node.Parent() == parentTree {
			return
		}
		e.node.Reparent(parentTree)
	} else {
		e.node = e.impl.CreateSceneNode(parentTree)
		if e.node == nil {
			return
		}
		e.removeNodeListener = e.node.OnDestroy(e.handleNodeDestroy)
	}
	e.node.SetEnabled(e.visible)
	e.node.SetPosition(e.x, e.y)
}

func (e *BaseElement) handleNodeDestroy() {
	e.node = nil
	e.removeNodeListener = nil
}

func (e *BaseElement) destroySceneNode() {
	if e.node == nil {
		return
	}
	n := e.node
	if e.removeNodeListener != nil {
		e.removeNodeListener()
	}
	e.node = nil
	e.removeNodeListener = nil
	n.Destroy()
}

// SceneNode returns the element's scene node, nil while unattached.
func (e *BaseElement) SceneNode() scene.Node { return e.node }

// SetVisible shows or hides the element and asks the parent to lay out.
func (e *BaseElement) SetVisible(visible bool) {
	if e.visible == visible {
		return
	}
	e.visible = visible
	if e.node != nil {
		e.node.SetEnabled(visible)
	}
	if e.parent != nil {
		e.parent.cimpl.UpdateLayout()
	}
}

// setVisibleQuiet changes visibility without asking the parent to lay
// out; used by layouts toggling their own parts.
func (e *BaseElement) setVisibleQuiet(visible bool) {
	e.visible = visible
	if e.node != nil {
		e.node.SetEnabled(visible)
	}
}

func (e *BaseElement) Visible() bool { return e.visible }

// SetPosition moves the element within its parent.
func (e *BaseElement) SetPosition(x, y int) {
	if e.x == x && e.y == y {
		return
	}
	e.x, e.y = x, y
	if e.node != nil {
		e.node.SetPosition(x, y)
	}
}

func (e *BaseElement) Position() (int, int) { return e.x, e.y }

// ParentContainer returns the container holding the element, or nil.
func (e *BaseElement) ParentContainer() Container {
	if e.parent == nil {
		return nil
	}
	return e.parent.cimpl
}

// LayoutPosition returns the element's position in root coordinates.
func (e *BaseElement) LayoutPosition() (int, int) {
	x, y := e.x, e.y
	for p := e.parent; p != nil; p = p.parent {
		x += p.x
		y += p.y
	}
	return x, y
}

// Destroy releases the scene node. The element must have been removed
// from its container first.
func (e *BaseElement) Destroy() {
	if e.parent != nil {
		panic("toolkit: destroying an element that is still in a container")
	}
	e.destroySceneNode()
	e.destroyed = true
}

// Destroyed reports whether Destroy has run.
func (e *BaseElement) Destroyed() bool { return e.destroyed }
