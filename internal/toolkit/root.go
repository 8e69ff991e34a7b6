package toolkit

import (
	"log"
	"math"

	"github.com/1broseidon/wlkit/internal/scene"
)

// Root is the top of the element tree. It holds the workspaces and, while
// the session is locked, the lock. The host feeds input events to it in
// layout coordinates.
type Root struct {
	BaseContainer

	workspaces []*Workspace
	current    *Workspace

	lock   *Lock
	locked bool

	cursorX, cursorY float64
	cursorTime       uint32

	dispatching    int
	refocusPending bool

	// deferredFocus holds the last focus request of each workspace that
	// could not take the keyboard when it was made.
	deferredFocus map[*Workspace]Element

	LockChanged      Signal[bool]
	WorkspaceChanged Signal[*Workspace]
}

// NewRoot creates a visible root attached to the scene tree parent.
func NewRoot(env *Env, parent scene.Tree) *Root {
	r := &Root{
		cursorX:       math.NaN(),
		cursorY:       math.NaN(),
		deferredFocus: make(map[*Workspace]Element),
	}
	r.InitContainer(r, env)
	r.admitFocus = r.admitKeyboardFocus
	r.setVisibleQuiet(true)
	r.sceneParent = parent
	r.AttachToSceneGraph()
	return r
}

// Workspaces returns the workspaces in order.
func (r *Root) Workspaces() []*Workspace {
	out := make([]*Workspace, len(r.workspaces))
	copy(out, r.workspaces)
	return out
}

// CurrentWorkspace returns the shown workspace.
func (r *Root) CurrentWorkspace() *Workspace { return r.current }

// AddWorkspace appends ws. The first workspace becomes current.
func (r *Root) AddWorkspace(ws *Workspace) {
	ws.index = len(r.workspaces)
	r.workspaces = append(r.workspaces, ws)
	r.batch(func() {
		r.AddElementAtBottom(ws)
	})
	if r.current == nil {
		r.SwitchToWorkspace(ws)
	}
}

// RemoveWorkspace removes ws. If it was current, the first remaining
// workspace becomes current.
func (r *Root) RemoveWorkspace(ws *Workspace) {
	i := -1
	for j, w := range r.workspaces {
		if w == ws {
			i = j
			break
		}
	}
	if i < 0 {
		panic("toolkit: removing a workspace of another root")
	}
	r.workspaces = append(r.workspaces[:i], r.workspaces[i+1:]...)
	delete(r.deferredFocus, ws)
	for j, w := range r.workspaces {
		w.index = j
	}
	r.batch(func() {
		if r.current == ws {
			ws.PointerGrabCancel()
			r.current = nil
			if len(r.workspaces) > 0 {
				r.SwitchToWorkspace(r.workspaces[0])
			}
		}
		r.RemoveElement(ws)
	})
}

// SwitchToWorkspace shows ws and hides the current one. An interactive
// move or resize on the old workspace is cancelled.
func (r *Root) SwitchToWorkspace(ws *Workspace) {
	if r.current == ws {
		return
	}
	r.batch(func() {
		if old := r.current; old != nil {
			r.saveFocus(old)
			old.PointerGrabCancel()
			old.SetVisible(false)
		}
		r.current = ws
		ws.SetVisible(!r.locked)
		if !r.locked {
			r.focusWorkspace()
		}
	})
	r.WorkspaceChanged.Emit(ws)
}

// canFocus reports whether ws may hold the keyboard now.
func (r *Root) canFocus(ws *Workspace) bool {
	return !r.locked && r.current == ws
}

// admitKeyboardFocus lets the lock take the keyboard while locked and the
// current workspace otherwise. A refused workspace request is kept for
// when the workspace can focus again, and the partial focus path below the
// root is blurred.
func (r *Root) admitKeyboardFocus(e Element) bool {
	ws, isWorkspace := e.(*Workspace)
	if r.locked {
		if l, ok := e.(*Lock); ok && l == r.lock {
			return true
		}
	} else if !isWorkspace || ws == r.current {
		return true
	}
	if isWorkspace {
		r.deferFocus(ws, focusLeaf(ws))
	}
	e.KeyboardBlur()
	return false
}

func (r *Root) deferFocus(ws *Workspace, e Element) {
	if e == nil || e == Element(ws) {
		delete(r.deferredFocus, ws)
		return
	}
	r.deferredFocus[ws] = e
}

// saveFocus remembers the focus path of ws before it loses the keyboard.
func (r *Root) saveFocus(ws *Workspace) {
	if ws.keyboardFocus {
		r.deferFocus(ws, focusLeaf(ws))
	}
}

// focusLeaf follows the keyboard focus path down from c.
func focusLeaf(c Container) Element {
	var e Element = c
	for {
		cc, ok := e.(Container)
		if !ok || cc.container().keyboardChild == nil {
			return e
		}
		e = cc.container().keyboardChild
	}
}

// contains reports whether e sits below c.
func contains(c Container, e Element) bool {
	for p := e.base().parent; p != nil; p = p.parent {
		if p == c.container() {
			return true
		}
	}
	return false
}

func (r *Root) focusWorkspace() {
	ws := r.current
	if ws == nil {
		r.SetKeyboardFocusElement(nil)
		return
	}
	if e, ok := r.deferredFocus[ws]; ok {
		delete(r.deferredFocus, ws)
		if contains(ws, e) && !e.base().destroyed {
			e.base().RequestKeyboardFocus()
			return
		}
	}
	if w := ws.activated; w != nil {
		w.RequestKeyboardFocus()
		return
	}
	r.SetKeyboardFocusElement(ws)
}

// Locked reports whether the session is locked.
func (r *Root) Locked() bool { return r.locked }

// ActiveLock returns the lock holding the session, nil if none or if its
// client went away.
func (r *Root) ActiveLock() *Lock { return r.lock }

// Lock locks the session with l. It fails if another lock is active.
// Input goes to l only; interactive moves and resizes are cancelled.
func (r *Root) Lock(l *Lock) bool {
	if r.lock != nil {
		log.Printf("Warning: session already locked, rejecting second lock")
		return false
	}
	wasLocked := r.locked
	r.batch(func() {
		for _, ws := range r.workspaces {
			ws.PointerGrabCancel()
		}
		r.BaseContainer.PointerGrabCancel()
		r.leftButton = nil
		r.setPointerFocus(nil, r.cursorTime)
		if r.current != nil {
			r.saveFocus(r.current)
		}
		r.SetKeyboardFocusElement(nil)

		r.lock = l
		r.locked = true
		l.root = r
		if r.current != nil {
			r.current.SetVisible(false)
		}
		l.SetVisible(true)
		r.AddElement(l)
		r.SetKeyboardFocusElement(l)
	})
	if !wasLocked {
		r.LockChanged.Emit(true)
	}
	return true
}

// Unlock ends the session lock. It fails unless l is the active lock.
func (r *Root) Unlock(l *Lock) bool {
	if l == nil || r.lock != l {
		log.Printf("Warning: unlock by a lock that does not hold the session")
		return false
	}
	r.batch(func() {
		r.RemoveElement(l)
		l.root = nil
		r.lock = nil
		r.locked = false
		if r.current != nil {
			r.current.SetVisible(true)
		}
		r.focusWorkspace()
	})
	r.LockChanged.Emit(false)
	return true
}

// LockUnreference drops l without unlocking. The session stays locked
// and accepts a new lock.
func (r *Root) LockUnreference(l *Lock) {
	if l == nil || r.lock != l {
		return
	}
	r.batch(func() {
		r.RemoveElement(l)
		l.root = nil
		r.lock = nil
	})
}

// batch runs fn with the pointer refocus deferred to its end.
func (r *Root) batch(fn func()) {
	r.dispatching++
	defer func() {
		r.dispatching--
		r.flushRefocus()
	}()
	fn()
}

// UpdateLayout refreshes the pointer focus at the last cursor position,
// once per input event or batch.
func (r *Root) UpdateLayout() {
	r.refocusPending = true
	r.flushRefocus()
}

func (r *Root) flushRefocus() {
	if r.dispatching > 0 || !r.refocusPending {
		return
	}
	r.refocusPending = false
	if math.IsNaN(r.cursorX) || math.IsNaN(r.cursorY) {
		return
	}
	r.dispatching++
	r.dispatchMotion(MotionEvent{X: r.cursorX, Y: r.cursorY, Time: r.cursorTime})
	r.dispatching--
	r.refocusPending = false
}

func (r *Root) dispatchMotion(ev MotionEvent) bool {
	if !r.locked {
		return r.BaseContainer.PointerMotion(ev)
	}
	r.recordPointer(ev)
	if r.lock == nil {
		r.setPointerFocus(nil, ev.Time)
		return false
	}
	r.setPointerFocus(r.lock, ev.Time)
	lx, ly := r.lock.Position()
	return r.lock.PointerMotion(MotionEvent{X: ev.X - float64(lx), Y: ev.Y - float64(ly), Time: ev.Time})
}

// PointerMotion handles a pointer motion in layout coordinates.
func (r *Root) PointerMotion(ev MotionEvent) bool {
	r.cursorX, r.cursorY, r.cursorTime = ev.X, ev.Y, ev.Time
	var rv bool
	r.batch(func() { rv = r.dispatchMotion(ev) })
	return rv
}

// PointerButton handles a button event.
func (r *Root) PointerButton(ev ButtonEvent) bool {
	if r.locked && r.lock == nil {
		return false
	}
	var rv bool
	r.batch(func() { rv = r.BaseContainer.PointerButton(ev) })
	return rv
}

// PointerAxis handles a scroll event.
func (r *Root) PointerAxis(ev AxisEvent) bool {
	if r.locked && r.lock == nil {
		return false
	}
	var rv bool
	r.batch(func() { rv = r.BaseContainer.PointerAxis(ev) })
	return rv
}

// KeyboardEvent handles a key event. While locked only the lock sees it.
func (r *Root) KeyboardEvent(ev KeyEvent) bool {
	var rv bool
	r.batch(func() {
		if r.locked {
			if r.lock != nil {
				rv = r.lock.KeyboardEvent(ev)
			}
			return
		}
		rv = r.BaseContainer.KeyboardEvent(ev)
	})
	return rv
}

// Destroy destroys the workspaces and the root's scene tree.
func (r *Root) Destroy() {
	r.workspaces = nil
	r.current = nil
	clear(r.deferredFocus)
	r.lock = nil
	r.BaseContainer.Destroy()
}
