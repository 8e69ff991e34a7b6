package scene

import "github.com/1broseidon/wlkit/internal/raster"

type node struct {
	self      Node
	parent    *treeNode
	x, y      int
	enabled   bool
	destroyed bool

	nextListener int
	listeners    map[int]func()
}

func (n *node) init(self Node, parent *treeNode) {
	n.self = self
	n.enabled = true
	n.listeners = map[int]func(){}
	if parent != nil {
		parent.children = append(parent.children, self)
		n.parent = parent
	}
}

func (n *node) Parent() Tree {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) SetPosition(x, y int) { n.x, n.y = x, y }

func (n *node) Position() (int, int) { return n.x, n.y }

func (n *node) SetEnabled(enabled bool) { n.enabled = enabled }

func (n *node) Enabled() bool { return n.enabled }

func (n *node) Destroyed() bool { return n.destroyed }

func (n *node) Reparent(parent Tree) {
	p, ok := parent.(*treeNode)
	if !ok {
		panic("scene: reparent to foreign tree")
	}
	for a := p; a != nil; a = a.parent {
		if Node(a) == n.self {
			panic("scene: reparent would create a cycle")
		}
	}
	n.detach()
	n.parent = p
	p.children = append(p.children, n.self)
}

func (n *node) detach() {
	if n.parent == nil {
		return
	}
	n.parent.children = removeNode(n.parent.children, n.self)
	n.parent = nil
}

func (n *node) siblingIndex(sibling Node) int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == sibling {
			return i
		}
	}
	return -1
}

func (n *node) PlaceAbove(sibling Node) {
	if sibling == n.self || n.parent == nil {
		return
	}
	p := n.parent
	p.children = removeNode(p.children, n.self)
	i := n.siblingIndex(sibling)
	if i < 0 {
		panic("scene: PlaceAbove with a node of a different parent")
	}
	p.children = insertNode(p.children, i+1, n.self)
}

func (n *node) PlaceBelow(sibling Node) {
	if sibling == n.self || n.parent == nil {
		return
	}
	p := n.parent
	p.children = removeNode(p.children, n.self)
	i := n.siblingIndex(sibling)
	if i < 0 {
		panic("scene: PlaceBelow with a node of a different parent")
	}
	p.children = insertNode(p.children, i, n.self)
}

func (n *node) RaiseToTop() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = append(removeNode(p.children, n.self), n.self)
}

func (n *node) LowerToBottom() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = insertNode(removeNode(p.children, n.self), 0, n.self)
}

func (n *node) OnDestroy(fn func()) func() {
	id := n.nextListener
	n.nextListener++
	n.listeners[id] = fn
	return func() { delete(n.listeners, id) }
}

func (n *node) destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	// Listeners may unregister others; iterate over a snapshot.
	fns := make([]func(), 0, len(n.listeners))
	for i := 0; i < n.nextListener; i++ {
		if fn, ok := n.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	for _, fn := range fns {
		fn()
	}
	n.listeners = map[int]func(){}
	n.detach()
}

type treeNode struct {
	node
	children []Node
}

func (t *treeNode) Children() []Node {
	out := make([]Node, len(t.children))
	copy(out, t.children)
	return out
}

func (t *treeNode) Destroy() {
	for len(t.children) > 0 {
		t.children[len(t.children)-1].Destroy()
	}
	t.destroy()
}

func (t *treeNode) CreateTree() Tree {
	c := &treeNode{}
	c.init(c, t)
	return c
}

func (t *treeNode) CreateRect(width, height int, argb uint32) Rect {
	r := &rectNode{width: width, height: height, argb: argb}
	r.init(r, t)
	return r
}

func (t *treeNode) CreateBuffer(buf *raster.Buffer) Buffer {
	b := &bufferNode{}
	b.init(b, t)
	b.SetBuffer(buf)
	return b
}

type rectNode struct {
	node
	width, height int
	argb          uint32
}

func (r *rectNode) Destroy() { r.destroy() }

func (r *rectNode) SetSize(width, height int) { r.width, r.height = width, height }

func (r *rectNode) Size() (int, int) { return r.width, r.height }

func (r *rectNode) SetColor(argb uint32) { r.argb = argb }

func (r *rectNode) Color() uint32 { return r.argb }

type bufferNode struct {
	node
	buf                   *raster.Buffer
	destWidth, destHeight int
}

func (b *bufferNode) Destroy() {
	b.SetBuffer(nil)
	b.destroy()
}

func (b *bufferNode) SetBuffer(buf *raster.Buffer) {
	if buf == b.buf {
		return
	}
	if buf != nil {
		buf.Lock()
	}
	if b.buf != nil {
		b.buf.Unlock()
	}
	b.buf = buf
}

func (b *bufferNode) Buffer() *raster.Buffer { return b.buf }

func (b *bufferNode) SetDestSize(width, height int) {
	b.destWidth, b.destHeight = width, height
}

func (b *bufferNode) Size() (int, int) {
	if b.destWidth > 0 && b.destHeight > 0 {
		return b.destWidth, b.destHeight
	}
	if b.buf == nil {
		return 0, 0
	}
	return b.buf.Width(), b.buf.Height()
}

func removeNode(nodes []Node, n Node) []Node {
	for i, c := range nodes {
		if c == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

func insertNode(nodes []Node, i int, n Node) []Node {
	nodes = append(nodes, nil)
	copy(nodes[i+1:], nodes[i:])
	nodes[i] = n
	return nodes
}
