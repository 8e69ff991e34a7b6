// Package output describes the output layout collaborator: the set of
// outputs, their logical boxes in layout coordinates and stable identities.
package output

import (
	"math"
	"sort"

	"github.com/1broseidon/wlkit/internal/geom"
)

// ID is the stable identity of an output, used as a map key.
type ID string

// Output is a physical display placed in the layout.
type Output struct {
	ID   ID
	Name string
	// X and Y are the position in layout coordinates.
	X int
	Y int
	// Width and Height are the mode size in pixels.
	Width  int
	Height int
	Scale  float64
}

// Box returns the output's logical box: position in the layout and the
// pixel size divided by the scale.
func (o Output) Box() geom.Rect {
	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}
	return geom.Rect{
		X:      o.X,
		Y:      o.Y,
		Width:  int(math.Round(float64(o.Width) / scale)),
		Height: int(math.Round(float64(o.Height) / scale)),
	}
}

// Layout enumerates the outputs of the layout.
type Layout interface {
	Outputs() []Output
}

// Find returns the output with the given id.
func Find(l Layout, id ID) (Output, bool) {
	for _, o := range l.Outputs() {
		if o.ID == id {
			return o, true
		}
	}
	return Output{}, false
}

// At returns the output whose box contains (x, y).
func At(l Layout, x, y int) (Output, bool) {
	for _, o := range l.Outputs() {
		if o.Box().Contains(x, y) {
			return o, true
		}
	}
	return Output{}, false
}

// Closest returns the output containing (x, y), or the output whose box is
// nearest to it. ok is false only for an empty layout.
func Closest(l Layout, x, y int) (Output, bool) {
	outputs := l.Outputs()
	if len(outputs) == 0 {
		return Output{}, false
	}
	best := outputs[0]
	bestDist := best.Box().DistanceSquared(x, y)
	for _, o := range outputs[1:] {
		if d := o.Box().DistanceSquared(x, y); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, true
}

// Extents returns the union of all output boxes.
func Extents(l Layout) geom.Rect {
	var r geom.Rect
	for _, o := range l.Outputs() {
		r = r.Union(o.Box())
	}
	return r
}

// Static is a Layout whose outputs are set by the host. Listeners are
// notified after each change.
type Static struct {
	outputs   map[ID]Output
	listeners []func(Layout)
}

var _ Layout = (*Static)(nil)

// NewStatic creates a layout holding the given outputs.
func NewStatic(outputs ...Output) *Static {
	s := &Static{outputs: make(map[ID]Output)}
	for _, o := range outputs {
		s.outputs[o.ID] = o
	}
	return s
}

// Outputs returns the outputs ordered by position, then id.
func (s *Static) Outputs() []Output {
	out := make([]Output, 0, len(s.outputs))
	for _, o := range s.outputs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Set adds or updates an output.
func (s *Static) Set(o Output) {
	s.outputs[o.ID] = o
	s.notify()
}

// Remove removes the output with the given id.
func (s *Static) Remove(id ID) {
	if _, ok := s.outputs[id]; !ok {
		return
	}
	delete(s.outputs, id)
	s.notify()
}

// Replace swaps in a complete set of outputs with a single notification.
func (s *Static) Replace(outputs []Output) {
	s.outputs = make(map[ID]Output, len(outputs))
	for _, o := range outputs {
		s.outputs[o.ID] = o
	}
	s.notify()
}

// OnChange registers fn to be called after every change.
func (s *Static) OnChange(fn func(Layout)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Static) notify() {
	for _, fn := range s.listeners {
		fn(s)
	}
}
