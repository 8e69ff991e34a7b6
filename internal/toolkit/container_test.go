package toolkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wlkit/internal/scene"
)

func TestContainerParentBackReference(t *testing.T) {
	c, _ := attachedContainer()
	a := newFakeElement("a", 10, 10, nil)
	b := newFakeElement("b", 10, 10, nil)

	c.AddElement(a)
	c.AddElementAtBottom(b)
	assert.Equal(t, Container(c), a.ParentContainer())
	assert.Equal(t, Container(c), b.ParentContainer())
	assert.Equal(t, []Element{a, b}, c.Children())

	c.RemoveElement(a)
	assert.Nil(t, a.ParentContainer())
	assert.Nil(t, a.SceneNode(), "removed element keeps its scene node")
	assert.False(t, c.Contains(a))

	assert.Panics(t, func() { c.RemoveElement(a) })

	other := NewContainer(nil)
	assert.Panics(t, func() { other.AddElement(b) }, "element may only have one parent")
}

func TestContainerDestroyDestroysChildren(t *testing.T) {
	c, g := attachedContainer()
	inner := NewContainer(nil)
	inner.setVisibleQuiet(true)
	leaf := newFakeElement("leaf", 5, 5, nil)
	inner.AddElement(leaf)
	c.AddElement(inner)
	require.NotNil(t, leaf.SceneNode())

	c.sceneParent = nil
	c.Destroy()

	assert.True(t, c.Destroyed())
	assert.True(t, inner.Destroyed())
	assert.True(t, leaf.Destroyed())
	assert.Nil(t, leaf.ParentContainer())
	assert.Empty(t, g.Root().Children())
}

func TestAddElementAboveAndRaise(t *testing.T) {
	c, _ := attachedContainer()
	a := newFakeElement("a", 1, 1, nil)
	b := newFakeElement("b", 1, 1, nil)
	d := newFakeElement("d", 1, 1, nil)

	c.AddElement(a)
	c.AddElementAtBottom(b)
	c.AddElementAbove(d, b)
	require.Equal(t, []Element{a, d, b}, c.Children())

	c.RaiseElementToTop(b)
	require.Equal(t, []Element{b, a, d}, c.Children())

	// Scene nodes are ordered bottom to top.
	tree := c.sceneTree()
	want := []scene.Node{d.SceneNode(), a.SceneNode(), b.SceneNode()}
	got := tree.Children()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Same(t, want[i], got[i], "scene node %d", i)
	}
}

func TestSceneNodeMirrorsElement(t *testing.T) {
	c, g := attachedContainer()
	e := newFakeElement("e", 10, 10, nil)
	e.SetPosition(20, 30)
	c.AddElement(e)

	n := e.SceneNode()
	require.NotNil(t, n)
	x, y := n.Position()
	assert.Equal(t, [2]int{20, 30}, [2]int{x, y})

	e.SetPosition(5, 6)
	x, y = n.Position()
	assert.Equal(t, [2]int{5, 6}, [2]int{x, y})

	hit, _, _ := g.NodeAt(7, 8)
	assert.Equal(t, n, hit)

	e.SetVisible(false)
	hit, _, _ = g.NodeAt(7, 8)
	assert.Nil(t, hit, "hidden element must not be hit")
	assert.False(t, c.PointerHitTest(7, 8))
}

func TestSceneNodeCreatedOnAttach(t *testing.T) {
	c := NewContainer(nil)
	c.setVisibleQuiet(true)
	e := newFakeElement("e", 1, 1, nil)
	c.AddElement(e)
	assert.Nil(t, e.SceneNode(), "no node before the container is attached")

	g := scene.New()
	c.sceneParent = g.Root()
	c.AttachToSceneGraph()
	require.NotNil(t, e.SceneNode())

	// A node destroyed by the graph is forgotten by the element.
	e.SceneNode().Destroy()
	assert.Nil(t, e.SceneNode())
}

func TestPointerFocusEnterLeaveOrder(t *testing.T) {
	var log eventLog
	c, _ := attachedContainer()
	a := newFakeElement("a", 10, 10, &log)
	b := newFakeElement("b", 10, 10, &log)
	b.SetPosition(20, 0)
	c.AddElement(a)
	c.AddElement(b)

	c.PointerMotion(MotionEvent{X: 5, Y: 5})
	c.PointerMotion(MotionEvent{X: 25, Y: 5})
	c.PointerMotion(MotionEvent{X: 15, Y: 5})

	want := []string{
		"a enter", "a motion",
		"a leave", "b enter", "b motion",
		"b leave",
	}
	if diff := cmp.Diff(want, log.entries); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, c.PointerFocus())
	assert.False(t, a.PointerInside())
	assert.False(t, b.PointerInside())
}

func TestPointerFocusUniqueness(t *testing.T) {
	c, _ := attachedContainer()
	children := []*fakeElement{
		newFakeElement("bottom", 30, 30, nil),
		newFakeElement("middle", 20, 20, nil),
		newFakeElement("top", 10, 10, nil),
	}
	for _, e := range children {
		c.AddElement(e)
	}

	points := [][2]float64{{5, 5}, {15, 15}, {25, 25}, {35, 35}, {1, 1}, {29, 0}}
	for _, p := range points {
		c.PointerMotion(MotionEvent{X: p[0], Y: p[1]})
		inside := 0
		for _, e := range children {
			if e.PointerInside() {
				inside++
				assert.Equal(t, Element(e), c.PointerFocus(), "at %v", p)
			}
		}
		assert.LessOrEqual(t, inside, 1, "at %v", p)
		if c.PointerFocus() == nil {
			assert.Zero(t, inside, "at %v", p)
		}
	}

	c.PointerMotion(MotionEvent{X: 5, Y: 5})
	assert.Equal(t, Element(children[2]), c.PointerFocus(), "top-most child wins")
}

func TestInvisibleChildIsSkipped(t *testing.T) {
	c, _ := attachedContainer()
	under := newFakeElement("under", 10, 10, nil)
	over := newFakeElement("over", 10, 10, nil)
	c.AddElement(under)
	c.AddElement(over)
	over.SetVisible(false)

	c.PointerMotion(MotionEvent{X: 1, Y: 1})
	assert.Equal(t, Element(under), c.PointerFocus())
}

func TestPrimaryButtonLatching(t *testing.T) {
	var log eventLog
	c, _ := attachedContainer()
	a := newFakeElement("a", 10, 10, &log)
	b := newFakeElement("b", 10, 10, &log)
	b.SetPosition(20, 0)
	c.AddElement(a)
	c.AddElement(b)

	c.PointerMotion(MotionEvent{X: 5, Y: 5})
	c.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	assert.Equal(t, Element(a), c.LeftButtonElement())

	c.PointerMotion(MotionEvent{X: 25, Y: 5})
	c.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})

	assert.Equal(t, []ButtonEventType{ButtonDown, ButtonUp}, a.buttonTypes(), "release goes to the pressed element, no click outside")
	assert.Empty(t, b.buttons)
	assert.Nil(t, c.LeftButtonElement())

	c.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	c.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})
	assert.Equal(t, []ButtonEventType{ButtonDown, ButtonUp, ButtonClick}, b.buttonTypes())
}

func TestSecondaryButtonFollowsPointer(t *testing.T) {
	c, _ := attachedContainer()
	a := newFakeElement("a", 10, 10, nil)
	b := newFakeElement("b", 10, 10, nil)
	b.SetPosition(20, 0)
	c.AddElement(a)
	c.AddElement(b)

	c.PointerMotion(MotionEvent{X: 5, Y: 5})
	c.PointerButton(ButtonEvent{Button: ButtonRight, Type: ButtonDown})
	c.PointerMotion(MotionEvent{X: 25, Y: 5})
	c.PointerButton(ButtonEvent{Button: ButtonRight, Type: ButtonUp})

	assert.Equal(t, []ButtonEventType{ButtonDown}, a.buttonTypes())
	assert.Equal(t, []ButtonEventType{ButtonUp}, b.buttonTypes())
}

func TestNestedContainersSynthesizeOneClick(t *testing.T) {
	outer, _ := attachedContainer()
	inner := NewContainer(nil)
	inner.setVisibleQuiet(true)
	leaf := newFakeElement("leaf", 10, 10, nil)
	inner.AddElement(leaf)
	outer.AddElement(inner)

	outer.PointerMotion(MotionEvent{X: 1, Y: 1})
	outer.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	outer.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonUp})

	assert.Equal(t, []ButtonEventType{ButtonDown, ButtonUp, ButtonClick}, leaf.buttonTypes())
}

func TestPointerGrab(t *testing.T) {
	var log eventLog
	outer, _ := attachedContainer()
	inner := NewContainer(nil)
	inner.setVisibleQuiet(true)
	a := newFakeElement("a", 10, 10, &log)
	inner.AddElement(a)
	outer.AddElement(inner)
	b := newFakeElement("b", 10, 10, &log)
	b.SetPosition(20, 0)
	outer.AddElement(b)

	outer.PointerMotion(MotionEvent{X: 5, Y: 5})
	a.PointerGrab()
	assert.Equal(t, Element(inner), outer.PointerGrabElement())
	assert.Equal(t, Element(a), inner.PointerGrabElement())

	log.reset()
	outer.PointerMotion(MotionEvent{X: 25, Y: 5})
	assert.Equal(t, []string{"a leave", "a motion"}, log.entries, "b sees no crossing while a holds the grab")
	last := a.motions[len(a.motions)-1]
	assert.Equal(t, MotionEvent{X: 25, Y: 5}, last)

	outer.PointerButton(ButtonEvent{Button: ButtonRight, Type: ButtonDown})
	assert.Len(t, a.buttons, 1)
	assert.Empty(t, b.buttons)

	outer.PointerGrabCancel()
	assert.Equal(t, 1, a.grabCancels, "cancel travels down to the grabbing element")
	assert.Nil(t, outer.PointerGrabElement())
	assert.Nil(t, inner.PointerGrabElement())

	a.PointerGrab()
	a.PointerUngrab()
	assert.Nil(t, inner.PointerGrabElement())
	assert.Nil(t, outer.PointerGrabElement())
}

func TestRemoveClearsFocusLatchAndGrab(t *testing.T) {
	c, _ := attachedContainer()
	a := newFakeElement("a", 10, 10, nil)
	c.AddElement(a)
	c.PointerMotion(MotionEvent{X: 1, Y: 1})
	c.PointerButton(ButtonEvent{Button: ButtonLeft, Type: ButtonDown})
	a.PointerGrab()
	a.RequestKeyboardFocus()

	c.RemoveElement(a)

	assert.Nil(t, c.PointerFocus())
	assert.Nil(t, c.LeftButtonElement())
	assert.Nil(t, c.PointerGrabElement())
	assert.Nil(t, c.KeyboardFocusElement())
	assert.False(t, a.PointerInside())
	assert.False(t, a.HasKeyboardFocus())
	assert.Equal(t, 1, a.grabCancels)
}

func TestKeyboardFocusPath(t *testing.T) {
	outer, _ := attachedContainer()
	inner := NewContainer(nil)
	inner.setVisibleQuiet(true)
	outer.AddElement(inner)
	a := newFakeElement("a", 1, 1, nil)
	inner.AddElement(a)
	b := newFakeElement("b", 1, 1, nil)
	outer.AddElement(b)

	a.RequestKeyboardFocus()
	assert.Equal(t, Element(inner), outer.KeyboardFocusElement())
	assert.Equal(t, Element(a), inner.KeyboardFocusElement())
	assert.True(t, a.HasKeyboardFocus())
	assert.True(t, inner.HasKeyboardFocus())

	outer.KeyboardEvent(KeyEvent{Keysym: KeyReturn, Pressed: true})
	require.Len(t, a.keys, 1)

	b.RequestKeyboardFocus()
	assert.False(t, a.HasKeyboardFocus(), "blur reaches the whole old path")
	assert.False(t, inner.HasKeyboardFocus())
	assert.Nil(t, inner.KeyboardFocusElement())
	assert.Equal(t, 1, a.blurs)

	outer.KeyboardEvent(KeyEvent{Keysym: KeyReturn, Pressed: true})
	assert.Len(t, a.keys, 1)
	assert.Len(t, b.keys, 1)
}

func TestDimensionsUnionVisibleChildren(t *testing.T) {
	c := NewContainer(nil)
	a := newFakeElement("a", 10, 10, nil)
	a.SetPosition(-5, 0)
	b := newFakeElement("b", 10, 20, nil)
	b.SetPosition(20, 10)
	hidden := newFakeElement("hidden", 100, 100, nil)
	c.AddElement(a)
	c.AddElement(b)
	c.AddElement(hidden)
	hidden.SetVisible(false)

	got := c.Dimensions()
	assert.Equal(t, -5, got.X)
	assert.Equal(t, 0, got.Y)
	assert.Equal(t, 35, got.Width)
	assert.Equal(t, 30, got.Height)
}
