package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/1broseidon/wlkit/internal/geom"
)

// Graph is an in-memory scene graph. It renders nothing; it keeps the node
// tree, positions and visibility so hosts without a GPU backend and tests
// can hit-test and inspect the composed scene.
type Graph struct {
	root *treeNode
}

// New creates an empty graph.
func New() *Graph {
	g := &Graph{}
	g.root = &treeNode{}
	g.root.init(g.root, nil)
	return g
}

// Root returns the graph's root tree.
func (g *Graph) Root() Tree { return g.root }

// NodeAt returns the top-most enabled rect or buffer node containing the
// layout point (x, y) and the point in that node's coordinates.
func (g *Graph) NodeAt(x, y float64) (Node, float64, float64) {
	return nodeAt(g.root, x, y)
}

func nodeAt(n Node, x, y float64) (Node, float64, float64) {
	if !n.Enabled() {
		return nil, 0, 0
	}
	nx, ny := n.Position()
	lx := x - float64(nx)
	ly := y - float64(ny)

	switch v := n.(type) {
	case *treeNode:
		for i := len(v.children) - 1; i >= 0; i-- {
			if hit, hx, hy := nodeAt(v.children[i], lx, ly); hit != nil {
				return hit, hx, hy
			}
		}
	case *rectNode:
		if (geom.Rect{Width: v.width, Height: v.height}).ContainsFloat(lx, ly) {
			return v, lx, ly
		}
	case *bufferNode:
		w, h := v.Size()
		if (geom.Rect{Width: w, Height: h}).ContainsFloat(lx, ly) {
			return v, lx, ly
		}
	}
	return nil, 0, 0
}

// LayoutPosition returns the node's position in graph coordinates.
func LayoutPosition(n Node) (int, int) {
	x, y := n.Position()
	for p := n.Parent(); p != nil; p = p.Parent() {
		px, py := p.Position()
		x += px
		y += py
	}
	return x, y
}

// Dump writes an indented description of the tree, top-most child first.
func (g *Graph) Dump(w io.Writer) {
	dump(w, g.root, 0)
}

func dump(w io.Writer, n Node, depth int) {
	x, y := n.Position()
	state := ""
	if !n.Enabled() {
		state = " (disabled)"
	}
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *treeNode:
		fmt.Fprintf(w, "%stree at %d,%d%s\n", indent, x, y, state)
		for i := len(v.children) - 1; i >= 0; i-- {
			dump(w, v.children[i], depth+1)
		}
	case *rectNode:
		fmt.Fprintf(w, "%srect %dx%d at %d,%d color=%08x%s\n", indent, v.width, v.height, x, y, v.argb, state)
	case *bufferNode:
		bw, bh := v.Size()
		fmt.Fprintf(w, "%sbuffer %dx%d at %d,%d%s\n", indent, bw, bh, x, y, state)
	}
}
