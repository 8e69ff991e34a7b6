package x11

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/wlkit/internal/geom"
	"github.com/1broseidon/wlkit/internal/output"
)

func TestMonitorsToOutputs(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, Name: "DP-1", Width: 2560, Height: 1440},
		{ID: 1, Name: "HDMI-1", X: 2560, Y: 200, Width: 1920, Height: 1080},
		{ID: 2, Name: "DP-1", X: 5000, Width: 10, Height: 10},
	}

	got := MonitorsToOutputs(monitors)
	want := []output.Output{
		{ID: "DP-1", Name: "DP-1", Width: 2560, Height: 1440, Scale: 1},
		{ID: "HDMI-1", Name: "HDMI-1", X: 2560, Y: 200, Width: 1920, Height: 1080, Scale: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MonitorsToOutputs mismatch (-want +got):\n%s", diff)
	}

	l := output.NewStatic(got...)
	if ext := output.Extents(l); ext != (geom.Rect{Width: 4480, Height: 1440}) {
		t.Fatalf("unexpected extents %v", ext)
	}
}

func TestMonitorsToOutputsEmpty(t *testing.T) {
	if got := MonitorsToOutputs(nil); len(got) != 0 {
		t.Fatalf("expected no outputs, got %v", got)
	}
}
