package toolkit

import (
	"fmt"
	"log"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/output"
)

// LayerOutput is a layer's record of one output: its box and the panels
// placed on it, in insertion order.
type LayerOutput struct {
	output output.Output
	panels []*Panel
}

// Output returns the output the record describes.
func (lo *LayerOutput) Output() output.Output { return lo.output }

// Panels returns the panels in insertion order.
func (lo *LayerOutput) Panels() []*Panel {
	out := make([]*Panel, len(lo.panels))
	copy(out, lo.panels)
	return out
}

// usableArea runs the exclusive-zone algorithm over the panels and
// returns the remaining area.
func (lo *LayerOutput) usableArea(usable geom.Rect) geom.Rect {
	full := lo.output.Box()
	for _, p := range lo.panels {
		p.ComputeDimensions(full, &usable)
	}
	return usable
}

// Layer holds the panels of one z-layer of a workspace, grouped by output.
type Layer struct {
	BaseContainer

	name    string
	outputs map[output.ID]*LayerOutput
}

// NewLayer creates a visible, empty layer.
func NewLayer(env *Env, name string) *Layer {
	l := &Layer{name: name, outputs: make(map[output.ID]*LayerOutput)}
	l.InitContainer(l, env)
	l.setVisibleQuiet(true)
	return l
}

func (l *Layer) Name() string { return l.name }

// LayerOutput returns the record of output id.
func (l *Layer) LayerOutput(id output.ID) (*LayerOutput, bool) {
	lo, ok := l.outputs[id]
	return lo, ok
}

// AddPanel places panel on output id.
func (l *Layer) AddPanel(panel *Panel, id output.ID) error {
	lo, ok := l.outputs[id]
	if !ok {
		return fmt.Errorf("layer %s: output %q: %w", l.name, id, ErrUnknownOutput)
	}
	if panel.layer != nil {
		panic("toolkit: panel already in a layer")
	}
	panel.layer = l
	lo.panels = append(lo.panels, panel)
	l.AddElement(panel)
	l.reconfigureOutput(lo)
	return nil
}

// RemovePanel takes panel off its output. Remaining panels are
// reconfigured.
func (l *Layer) RemovePanel(panel *Panel) {
	if panel.layer != l {
		panic("toolkit: removing a panel of another layer")
	}
	for _, lo := range l.outputs {
		for i, p := range lo.panels {
			if p == panel {
				lo.panels = append(lo.panels[:i], lo.panels[i+1:]...)
				panel.layer = nil
				l.RemoveElement(panel)
				l.reconfigureOutput(lo)
				return
			}
		}
	}
}

// Reconfigure places the panels of every output.
func (l *Layer) Reconfigure() {
	for _, lo := range l.outputs {
		l.reconfigureOutput(lo)
	}
}

func (l *Layer) reconfigureOutput(lo *LayerOutput) {
	full := lo.output.Box()
	usable := full
	for _, p := range lo.panels {
		box := p.ComputeDimensions(full, &usable)
		p.SetPosition(box.X, box.Y)
		p.RequestSize(box.Width, box.Height)
	}
}

// UsableArea narrows usable by the exclusive zones of this layer's
// panels on output id.
func (l *Layer) UsableArea(id output.ID, usable geom.Rect) geom.Rect {
	lo, ok := l.outputs[id]
	if !ok {
		return usable
	}
	return lo.usableArea(usable)
}

// UpdateOutputLayout swaps in the outputs of layout. Outputs present
// before keep their panels and are reconfigured if their box changed.
// Panels of removed outputs are destroyed.
func (l *Layer) UpdateOutputLayout(layout output.Layout) {
	old := l.outputs
	l.outputs = make(map[output.ID]*LayerOutput)
	var changed []*LayerOutput
	for _, o := range layout.Outputs() {
		lo, ok := old[o.ID]
		if !ok {
			l.outputs[o.ID] = &LayerOutput{output: o}
			continue
		}
		delete(old, o.ID)
		if lo.output.Box() != o.Box() {
			changed = append(changed, lo)
		}
		lo.output = o
		l.outputs[o.ID] = lo
	}

	for id, lo := range old {
		log.Printf("layer %s: output %q removed, destroying %d panel(s)", l.name, id, len(lo.panels))
		for _, p := range lo.panels {
			p.layer = nil
			l.RemoveElement(p)
			p.Destroy()
		}
	}
	for _, lo := range changed {
		l.reconfigureOutput(lo)
	}
}
