package geom

import "fmt"

// Rect represents a position and size in integer coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String formats the rect as "WxH at X,Y", matching the log format used
// across the daemon.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d at %d,%d", r.Width, r.Height, r.X, r.Y)
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the first column right of the rect.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the integer point (x, y) lies within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsFloat is Contains for real coordinates. NaN is never contained.
func (r Rect) ContainsFloat(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.Right()) &&
		y >= float64(r.Y) && y < float64(r.Bottom())
}

// Translate returns the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Center returns the center point of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Intersect returns the overlapping region of two rects. The result is
// empty (zero size) if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Union returns the smallest rect covering both rects. Empty rects do not
// contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.Right(), o.Right())
	y2 := max(r.Bottom(), o.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// DistanceSquared returns the squared distance from (x, y) to the closest
// point of the rect. Zero if the point is inside.
func (r Rect) DistanceSquared(x, y int) int {
	dx := 0
	if x < r.X {
		dx = r.X - x
	} else if x >= r.Right() {
		dx = x - r.Right() + 1
	}
	dy := 0
	if y < r.Y {
		dy = r.Y - y
	} else if y >= r.Bottom() {
		dy = y - r.Bottom() + 1
	}
	return dx*dx + dy*dy
}
