package geom

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 5, Height: 5}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 10, 20, true},
		{"inside", 12, 22, true},
		{"right edge exclusive", 15, 22, false},
		{"bottom edge exclusive", 12, 25, false},
		{"left of rect", 9, 22, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Fatalf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectContainsFloatRejectsNaN(t *testing.T) {
	r := Rect{Width: 10, Height: 10}
	if r.ContainsFloat(math.NaN(), math.NaN()) {
		t.Fatalf("NaN must never be contained")
	}
	if !r.ContainsFloat(9.5, 0) {
		t.Fatalf("expected 9.5,0 to be inside")
	}
}

func TestRectIntersectAndUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}

	if got := a.Intersect(b); got != (Rect{X: 5, Y: 5, Width: 5, Height: 5}) {
		t.Fatalf("unexpected intersection %v", got)
	}
	if got := a.Union(b); got != (Rect{X: 0, Y: 0, Width: 15, Height: 15}) {
		t.Fatalf("unexpected union %v", got)
	}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("empty rect must not contribute to union, got %v", got)
	}
	if a.Intersects(Rect{X: 10, Y: 0, Width: 1, Height: 1}) {
		t.Fatalf("adjacent rects must not intersect")
	}
}

func TestRectDistanceSquared(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if d := r.DistanceSquared(5, 5); d != 0 {
		t.Fatalf("expected 0 inside, got %d", d)
	}
	if d := r.DistanceSquared(-3, 5); d != 9 {
		t.Fatalf("expected 9, got %d", d)
	}
}
