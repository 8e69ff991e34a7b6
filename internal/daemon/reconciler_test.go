package daemon

import (
	"errors"
	"testing"

	"github.com/1broseidon/wlkit/internal/output"
)

func TestReconcilerReplacesDriftedOutputs(t *testing.T) {
	h, l := newTestHost(t)
	want := []output.Output{
		{ID: "DP-1", Name: "DP-1", Width: 1920, Height: 1080, Scale: 1},
		{ID: "DP-2", Name: "DP-2", X: 1920, Width: 1920, Height: 1080, Scale: 1},
	}
	calls := 0
	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, h, func() ([]output.Output, error) {
		calls++
		return want, nil
	})

	r.ReconcileNow()
	drain(l)
	if !SameOutputs(h.Outputs(), want) {
		t.Fatalf("expected outputs %v, got %v", want, h.Outputs())
	}

	changes := 0
	h.layout.OnChange(func(output.Layout) { changes++ })
	r.ReconcileNow()
	drain(l)
	if changes != 0 {
		t.Fatalf("expected no layout change without drift, got %d", changes)
	}
	if calls != 2 {
		t.Fatalf("expected 2 source queries, got %d", calls)
	}
}

func TestReconcilerSourceError(t *testing.T) {
	h, l := newTestHost(t)
	before := h.Outputs()
	r := NewReconciler(ReconcilerConfig{Logger: discardLogger()}, h, func() ([]output.Output, error) {
		return nil, errors.New("no display")
	})

	r.ReconcileNow()
	drain(l)
	if !SameOutputs(h.Outputs(), before) {
		t.Fatalf("expected layout to stay unchanged on source error")
	}
}

func TestSameOutputs(t *testing.T) {
	a := output.Output{ID: "a", Width: 1, Height: 1}
	b := output.Output{ID: "b", Width: 2, Height: 2}
	moved := b
	moved.X = 5

	tests := []struct {
		name string
		x, y []output.Output
		want bool
	}{
		{"empty", nil, nil, true},
		{"order independent", []output.Output{a, b}, []output.Output{b, a}, true},
		{"length", []output.Output{a}, []output.Output{a, b}, false},
		{"moved", []output.Output{a, b}, []output.Output{a, moved}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameOutputs(tt.x, tt.y); got != tt.want {
				t.Fatalf("SameOutputs = %v, want %v", got, tt.want)
			}
		})
	}
}
