// Package scene describes the scene-graph collaborator the toolkit renders
// into, and provides an in-memory implementation of it.
//
// Nodes are owned by the graph. Holders keep plain references and must
// register an OnDestroy callback to learn when a node goes away.
package scene

import "github.com/1broseidon/wlkit/internal/raster"

// Node is an element of the scene graph.
type Node interface {
	// Parent returns the tree holding the node, nil for the graph root.
	Parent() Tree
	// SetPosition sets the position relative to the parent tree.
	SetPosition(x, y int)
	Position() (x, y int)
	// SetEnabled toggles whether the node and its subtree are rendered
	// and hit-tested.
	SetEnabled(enabled bool)
	Enabled() bool
	// Reparent moves the node on top of parent's children.
	Reparent(parent Tree)
	PlaceAbove(sibling Node)
	PlaceBelow(sibling Node)
	RaiseToTop()
	LowerToBottom()
	// Destroy removes the node and its subtree from the graph.
	Destroy()
	Destroyed() bool
	// OnDestroy registers fn to run when the node is destroyed. The
	// returned func unregisters it.
	OnDestroy(fn func()) (remove func())
}

// Tree is a node holding other nodes. Children are ordered bottom to top.
type Tree interface {
	Node
	Children() []Node
	CreateTree() Tree
	CreateRect(width, height int, argb uint32) Rect
	CreateBuffer(buf *raster.Buffer) Buffer
}

// Rect is a solid-color rectangle node.
type Rect interface {
	Node
	SetSize(width, height int)
	Size() (width, height int)
	SetColor(argb uint32)
	Color() uint32
}

// Buffer is a node displaying a raster buffer. The node holds its own
// reference on the buffer while it is set.
type Buffer interface {
	Node
	SetBuffer(buf *raster.Buffer)
	Buffer() *raster.Buffer
	// SetDestSize scales the buffer to the given size; zero restores
	// the buffer's own size.
	SetDestSize(width, height int)
	Size() (width, height int)
}
