package tiling

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/wlkit/internal/geom"
)

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{5, 2, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		rows, cols := CalculateGrid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Fatalf("CalculateGrid(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestPositions(t *testing.T) {
	area := geom.Rect{Width: 1000, Height: 600}
	tests := []struct {
		name   string
		n      int
		area   geom.Rect
		layout Layout
		want   []geom.Rect
	}{
		{
			name:   "grid with flexible last row",
			n:      3,
			area:   area,
			layout: Layout{Mode: ModeGrid, Gap: 10, FlexibleLastRow: true},
			want: []geom.Rect{
				{X: 10, Y: 10, Width: 485, Height: 285},
				{X: 505, Y: 10, Width: 485, Height: 285},
				{X: 10, Y: 305, Width: 980, Height: 285},
			},
		},
		{
			name:   "grid keeps last row cells",
			n:      3,
			area:   area,
			layout: Layout{Mode: ModeGrid, Gap: 10},
			want: []geom.Rect{
				{X: 10, Y: 10, Width: 485, Height: 285},
				{X: 505, Y: 10, Width: 485, Height: 285},
				{X: 10, Y: 305, Width: 485, Height: 285},
			},
		},
		{
			name:   "vertical offset area",
			n:      2,
			area:   geom.Rect{X: 100, Y: 50, Width: 400, Height: 210},
			layout: Layout{Mode: ModeVertical, Gap: 10},
			want: []geom.Rect{
				{X: 110, Y: 60, Width: 380, Height: 90},
				{X: 110, Y: 160, Width: 380, Height: 90},
			},
		},
		{
			name:   "master stack",
			n:      4,
			area:   area,
			layout: Layout{Mode: ModeMasterStack, Gap: 10, MasterPercent: 60, MaxStackRows: 2, MaxStackCols: 2},
			want: []geom.Rect{
				{X: 10, Y: 10, Width: 590, Height: 580},
				{X: 610, Y: 10, Width: 185, Height: 285},
				{X: 805, Y: 10, Width: 185, Height: 285},
				{X: 610, Y: 305, Width: 185, Height: 285},
			},
		},
		{
			name:   "master alone",
			n:      1,
			area:   area,
			layout: Layout{Mode: ModeMasterStack, Gap: 10, MasterPercent: 50},
			want:   []geom.Rect{{X: 10, Y: 10, Width: 490, Height: 580}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Positions(tt.n, tt.area, tt.layout)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Positions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPositionsMasterStackCapsStack(t *testing.T) {
	layout := Layout{Mode: ModeMasterStack, Gap: 10, MasterPercent: 60, MaxStackRows: 2, MaxStackCols: 2}
	got, err := Positions(6, geom.Rect{Width: 1000, Height: 600}, layout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected master plus a 2x2 stack, got %d boxes", len(got))
	}
}

func TestPositionsErrors(t *testing.T) {
	if _, err := Positions(2, geom.Rect{Width: 20, Height: 10}, Layout{Mode: ModeGrid, Gap: 20}); err == nil {
		t.Fatalf("expected error for insufficient space")
	}
	if _, err := Positions(2, geom.Rect{Width: 200, Height: 100}, Layout{Mode: "spiral"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if got, err := Positions(0, geom.Rect{}, Layout{Mode: "spiral"}); err != nil || got != nil {
		t.Fatalf("expected nothing to do for zero windows, got %v, %v", got, err)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range Modes {
		if !m.Valid() {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	if Mode("spiral").Valid() {
		t.Fatalf("expected spiral to be invalid")
	}
}
