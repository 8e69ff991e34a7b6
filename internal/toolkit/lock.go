package toolkit

import (
	"fmt"
	"log"
	"sort"

	"github.com/1broseidon/wlkit/internal/output"
)

// LockSurfaceClient is the client behind a lock surface.
type LockSurfaceClient interface {
	Configure(width, height int)
}

// Lock holds one lock surface per output while the session is locked.
type Lock struct {
	BaseContainer

	layout   output.Layout
	surfaces map[output.ID]Element
	root     *Root
}

// NewLock creates an empty lock for the outputs of layout.
func NewLock(env *Env, layout output.Layout) *Lock {
	l := &Lock{layout: layout, surfaces: make(map[output.ID]Element)}
	l.InitContainer(l, env)
	return l
}

// Root returns the root the lock holds, nil if not locking.
func (l *Lock) Root() *Root { return l.root }

// AddSurface places surface over the full box of output id and asks the
// client to take that size. The first surface gets keyboard focus.
func (l *Lock) AddSurface(id output.ID, surface Element, client LockSurfaceClient) error {
	o, ok := output.Find(l.layout, id)
	if !ok {
		log.Printf("Warning: rejecting lock surface for unknown output %q", id)
		return fmt.Errorf("lock surface for %q: %w", id, ErrUnknownOutput)
	}
	if _, dup := l.surfaces[id]; dup {
		log.Printf("Warning: rejecting second lock surface for output %q", id)
		return fmt.Errorf("lock surface for %q: %w", id, ErrDuplicateLockSurface)
	}
	box := o.Box()
	l.surfaces[id] = surface
	surface.SetPosition(box.X, box.Y)
	surface.SetVisible(true)
	l.AddElement(surface)
	if client != nil {
		client.Configure(box.Width, box.Height)
	}
	if l.keyboardChild == nil {
		l.SetKeyboardFocusElement(surface)
	}
	return nil
}

// RemoveSurface removes the surface of output id.
func (l *Lock) RemoveSurface(id output.ID) {
	s, ok := l.surfaces[id]
	if !ok {
		return
	}
	delete(l.surfaces, id)
	l.RemoveElement(s)
	if l.keyboardChild == nil {
		for _, other := range l.surfaces {
			l.SetKeyboardFocusElement(other)
			break
		}
	}
}

// Surface returns the surface of output id.
func (l *Lock) Surface(id output.ID) (Element, bool) {
	s, ok := l.surfaces[id]
	return s, ok
}

// SurfaceIDs returns the outputs holding a lock surface, sorted.
func (l *Lock) SurfaceIDs() []output.ID {
	ids := make([]output.ID, 0, len(l.surfaces))
	for id := range l.surfaces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Surfaces returns the number of lock surfaces.
func (l *Lock) Surfaces() int { return len(l.surfaces) }
