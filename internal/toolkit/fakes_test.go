package toolkit

import (
	"fmt"
	"math"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/scene"
)

// eventLog collects callbacks of several fake elements in order.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *eventLog) reset() { l.entries = nil }

// fakeElement is a visible leaf element of fixed dimensions that records
// every callback.
type fakeElement struct {
	BaseElement

	name string
	dims geom.Rect
	log  *eventLog

	motions     []MotionEvent
	buttons     []ButtonEvent
	axes        []AxisEvent
	keys        []KeyEvent
	grabCancels int
	blurs       int
	// consume is returned from button, axis and key callbacks.
	consume bool
}

func newFakeElement(name string, width, height int, log *eventLog) *fakeElement {
	f := &fakeElement{name: name, dims: geom.Rect{Width: width, Height: height}, log: log, consume: true}
	f.InitElement(f, nil)
	f.setVisibleQuiet(true)
	return f
}

func (f *fakeElement) setDimensions(r geom.Rect) {
	f.dims = r
	if f.parent != nil {
		f.parent.cimpl.UpdateLayout()
	}
}

func (f *fakeElement) Dimensions() geom.Rect { return f.dims }

func (f *fakeElement) PointerMotion(ev MotionEvent) bool {
	rv := f.BaseElement.PointerMotion(ev)
	if !math.IsNaN(ev.X) && !math.IsNaN(ev.Y) {
		f.motions = append(f.motions, ev)
		f.log.add("%s motion", f.name)
	}
	return rv
}

func (f *fakeElement) PointerEnter() { f.log.add("%s enter", f.name) }

func (f *fakeElement) PointerLeave() { f.log.add("%s leave", f.name) }

func (f *fakeElement) PointerButton(ev ButtonEvent) bool {
	f.buttons = append(f.buttons, ev)
	f.log.add("%s button %s", f.name, ev.Type)
	return f.consume
}

func (f *fakeElement) PointerAxis(ev AxisEvent) bool {
	f.axes = append(f.axes, ev)
	return f.consume
}

func (f *fakeElement) PointerGrabCancel() { f.grabCancels++ }

func (f *fakeElement) KeyboardEvent(ev KeyEvent) bool {
	f.keys = append(f.keys, ev)
	return f.consume
}

func (f *fakeElement) KeyboardBlur() {
	f.blurs++
	f.BaseElement.KeyboardBlur()
}

func (f *fakeElement) CreateSceneNode(parent scene.Tree) scene.Node {
	return parent.CreateRect(f.dims.Width, f.dims.Height, 0xff000000)
}

func (f *fakeElement) buttonTypes() []ButtonEventType {
	var out []ButtonEventType
	for _, ev := range f.buttons {
		out = append(out, ev.Type)
	}
	return out
}

// attachedContainer returns a visible container attached to a fresh
// scene graph.
func attachedContainer() (*BaseContainer, *scene.Graph) {
	g := scene.New()
	c := NewContainer(nil)
	c.sceneParent = g.Root()
	c.setVisibleQuiet(true)
	c.AttachToSceneGraph()
	return c, g
}

type sizeRequest struct {
	serial        uint32
	width, height int
}

// fakeContentClient hands out increasing serials and records requests.
type fakeContentClient struct {
	serial     uint32
	requests   []sizeRequest
	closes     int
	maximized  []bool
	fullscreen []bool
	activated  bool
}

func (c *fakeContentClient) RequestSize(width, height int) uint32 {
	c.serial++
	c.requests = append(c.requests, sizeRequest{serial: c.serial, width: width, height: height})
	return c.serial
}

func (c *fakeContentClient) RequestClose() { c.closes++ }

func (c *fakeContentClient) RequestMaximized(maximized bool) {
	c.maximized = append(c.maximized, maximized)
}

func (c *fakeContentClient) RequestFullscreen(fullscreen bool) {
	c.fullscreen = append(c.fullscreen, fullscreen)
}

func (c *fakeContentClient) SetActivated(activated bool) { c.activated = activated }

func (c *fakeContentClient) last() sizeRequest { return c.requests[len(c.requests)-1] }

// commitLast acknowledges the most recent size request.
func (c *fakeContentClient) commitLast(content *Content) {
	r := c.last()
	content.CommitSize(r.serial, r.width, r.height)
}

type fakePanelClient struct {
	serial   uint32
	requests []sizeRequest
}

func (c *fakePanelClient) RequestSize(width, height int) uint32 {
	c.serial++
	c.requests = append(c.requests, sizeRequest{serial: c.serial, width: width, height: height})
	return c.serial
}

type fakeLockClient struct {
	width, height int
	configures    int
}

func (c *fakeLockClient) Configure(width, height int) {
	c.width, c.height = width, height
	c.configures++
}

type cursorRecorder struct {
	cursors []Cursor
}

func (r *cursorRecorder) SetCursor(c Cursor) { r.cursors = append(r.cursors, c) }

func (r *cursorRecorder) current() Cursor {
	if len(r.cursors) == 0 {
		return CursorDefault
	}
	return r.cursors[len(r.cursors)-1]
}

func singleOutput() *output.Static {
	return output.NewStatic(output.Output{ID: "O1", Name: "DP-1", Width: 1024, Height: 768, Scale: 1})
}

// testWindow builds an unmapped window whose content has a recording
// surface element.
type testWindow struct {
	*Window
	client  *fakeContentClient
	surface *fakeElement
}

func newTestWindow(env *Env, title string, ssd bool) *testWindow {
	client := &fakeContentClient{}
	surface := newFakeElement(title+" surface", 0, 0, nil)
	content := NewContent(env, client, surface)
	w := NewWindow(env, content, DefaultWindowStyle(), DefaultMenuStyle())
	w.SetTitle(title)
	w.SetServerSideDecorated(ssd)
	return &testWindow{Window: w, client: client, surface: surface}
}

// place requests the box and commits it, sizing the surface to match.
func (tw *testWindow) place(x, y, width, height int) {
	tw.RequestPositionAndSize(x, y, width, height)
	tw.commit()
}

// commit acknowledges the last size request.
func (tw *testWindow) commit() {
	r := tw.client.last()
	tw.surface.dims = geom.Rect{Width: r.width, Height: r.height}
	tw.Content().CommitSize(r.serial, r.width, r.height)
}
