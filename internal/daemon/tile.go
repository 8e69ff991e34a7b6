package daemon

import (
	"fmt"
	"sort"

	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/tiling"
	"github.com/1broseidon/wlkit/internal/toolkit"
)

// TileWindows arranges the normal-layer windows of a workspace, grouped by
// the output nearest their center, over each output's maximize extents.
// Maximized windows keep their box. An empty mode uses the configured one.
// It returns the ids of the windows it moved, in mapping order.
func (h *Host) TileWindows(workspace string, mode tiling.Mode) ([]int, error) {
	ws, err := h.workspace(workspace)
	if err != nil {
		return nil, err
	}
	layout := h.tiling
	if mode != "" {
		layout.Mode = mode
	}
	if !layout.Mode.Valid() {
		return nil, fmt.Errorf("unsupported layout mode: %q", layout.Mode)
	}

	byWindow := make(map[*toolkit.Window]*hostedWindow, len(h.windows))
	for _, hw := range h.windows {
		byWindow[hw.window] = hw
	}

	groups := make(map[output.ID][]*hostedWindow)
	var order []output.ID
	for _, w := range ws.WindowsIn(toolkit.WindowLayerNormal) {
		hw, ok := byWindow[w]
		if !ok || w.Maximized() {
			continue
		}
		cx, cy := w.Box().Center()
		o, ok := output.Closest(h.layout, cx, cy)
		if !ok {
			continue
		}
		if _, seen := groups[o.ID]; !seen {
			order = append(order, o.ID)
		}
		groups[o.ID] = append(groups[o.ID], hw)
	}

	var tiled []int
	for _, id := range order {
		group := groups[id]
		sort.Slice(group, func(i, j int) bool { return group[i].id < group[j].id })

		area := ws.MaximizeExtents(nil, id)
		boxes, err := tiling.Positions(len(group), area, layout)
		if err != nil {
			return tiled, fmt.Errorf("output %s: %w", id, err)
		}
		for i, box := range boxes {
			group[i].window.RequestPositionAndSize(box.X, box.Y, box.Width, box.Height)
			tiled = append(tiled, group[i].id)
		}
		h.logger.Info("windows tiled", "workspace", ws.Name(), "output", id, "mode", layout.Mode, "count", len(boxes))
	}
	sort.Ints(tiled)
	return tiled, nil
}
