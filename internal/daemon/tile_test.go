package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/tiling"
)

func boxOf(w WindowInfo) geom.Rect {
	return geom.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

func TestTileWindowsGrid(t *testing.T) {
	h, l := newTestHost(t)
	var ids []int
	for _, title := range []string{"a", "b", "c"} {
		w := mapWindow(t, h, l, TestWindowRequest{Title: title, X: 50, Y: 50, Width: 300, Height: 200, Decorated: true})
		ids = append(ids, w.ID)
	}
	other := mapWindow(t, h, l, TestWindowRequest{Title: "elsewhere", Workspace: "web", Width: 300, Height: 200})

	tiled, err := h.TileWindows("", "")
	if err != nil {
		t.Fatalf("tile: %v", err)
	}
	drain(l)
	if len(tiled) != 3 {
		t.Fatalf("expected 3 tiled windows, got %v", tiled)
	}

	want := []geom.Rect{
		{X: 8, Y: 8, Width: 628, Height: 388},
		{X: 644, Y: 8, Width: 628, Height: 388},
		{X: 8, Y: 404, Width: 1264, Height: 388},
	}
	for i, id := range ids {
		if got := boxOf(findWindow(t, h, id)); got != want[i] {
			t.Fatalf("window %d: got %v, want %v", id, got, want[i])
		}
	}
	if got := boxOf(findWindow(t, h, other.ID)); got.Width != 300 || got.X != 0 {
		t.Fatalf("window on another workspace moved: %v", got)
	}
}

func TestTileWindowsModeOverrideAndMaximized(t *testing.T) {
	h, l := newTestHost(t)
	a := mapWindow(t, h, l, TestWindowRequest{Title: "a", Width: 300, Height: 200})
	b := mapWindow(t, h, l, TestWindowRequest{Title: "b", Width: 300, Height: 200})
	c := mapWindow(t, h, l, TestWindowRequest{Title: "c", Width: 300, Height: 200})
	if err := h.MaximizeWindow(c.ID, true); err != nil {
		t.Fatalf("maximize: %v", err)
	}
	drain(l)

	tiled, err := h.TileWindows("main", tiling.ModeVertical)
	if err != nil {
		t.Fatalf("tile: %v", err)
	}
	drain(l)
	if len(tiled) != 2 || tiled[0] != a.ID || tiled[1] != b.ID {
		t.Fatalf("expected a and b tiled, got %v", tiled)
	}
	if got := boxOf(findWindow(t, h, b.ID)); got != (geom.Rect{X: 8, Y: 404, Width: 1264, Height: 388}) {
		t.Fatalf("unexpected box for b: %v", got)
	}
	if got := findWindow(t, h, c.ID); !got.Maximized || got.Width != 1280 {
		t.Fatalf("maximized window should keep its box: %+v", got)
	}

	if _, err := h.TileWindows("main", "spiral"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := h.TileWindows("nope", ""); !errors.Is(err, ErrUnknownWorkspace) {
		t.Fatalf("expected ErrUnknownWorkspace, got %v", err)
	}
}
