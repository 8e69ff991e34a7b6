package scene

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/wlkit/internal/raster"
)

func TestNodeAtHonorsPositionAndEnabled(t *testing.T) {
	g := New()
	tree := g.Root().CreateTree()
	tree.SetPosition(10, 20)
	rect := tree.CreateRect(5, 5, 0xff000000)
	rect.SetPosition(1, 1)

	hit, x, y := g.NodeAt(12, 22)
	require.NotNil(t, hit)
	assert.Equal(t, Node(rect), hit)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	rect.SetEnabled(false)
	hit, _, _ = g.NodeAt(12, 22)
	assert.Nil(t, hit)

	rect.SetEnabled(true)
	tree.SetEnabled(false)
	hit, _, _ = g.NodeAt(12, 22)
	assert.Nil(t, hit)
}

func TestNodeAtPrefersTopMost(t *testing.T) {
	g := New()
	bottom := g.Root().CreateRect(10, 10, 0xff000000)
	top := g.Root().CreateRect(10, 10, 0xffffffff)

	hit, _, _ := g.NodeAt(1, 1)
	assert.Equal(t, Node(top), hit)

	bottom.RaiseToTop()
	hit, _, _ = g.NodeAt(1, 1)
	assert.Equal(t, Node(bottom), hit)

	bottom.PlaceBelow(top)
	hit, _, _ = g.NodeAt(1, 1)
	assert.Equal(t, Node(top), hit)
}

func TestDestroyNotifiesListenersAndChildren(t *testing.T) {
	g := New()
	tree := g.Root().CreateTree()
	child := tree.CreateRect(1, 1, 0)

	var destroyed []string
	child.OnDestroy(func() { destroyed = append(destroyed, "child") })
	remove := tree.OnDestroy(func() { destroyed = append(destroyed, "removed") })
	remove()
	tree.OnDestroy(func() { destroyed = append(destroyed, "tree") })

	tree.Destroy()
	assert.Equal(t, []string{"child", "tree"}, destroyed)
	assert.True(t, child.Destroyed())
	assert.Empty(t, g.Root().Children())
}

func TestBufferNodeHoldsReference(t *testing.T) {
	buf, err := raster.New(4, 3)
	require.NoError(t, err)

	g := New()
	node := g.Root().CreateBuffer(buf)
	assert.Equal(t, 2, buf.Refs())
	w, h := node.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	node.Destroy()
	assert.Equal(t, 1, buf.Refs())
}

func TestReparentAndLayoutPosition(t *testing.T) {
	g := New()
	a := g.Root().CreateTree()
	a.SetPosition(5, 5)
	b := g.Root().CreateTree()
	b.SetPosition(100, 0)
	r := a.CreateRect(1, 1, 0)
	r.SetPosition(1, 2)

	x, y := LayoutPosition(r)
	assert.Equal(t, [2]int{6, 7}, [2]int{x, y})

	r.Reparent(b)
	x, y = LayoutPosition(r)
	assert.Equal(t, [2]int{101, 2}, [2]int{x, y})
	assert.Empty(t, a.Children())
	assert.Panics(t, func() { b.Reparent(b) })
}

func TestDump(t *testing.T) {
	g := New()
	g.Root().CreateRect(3, 4, 0xff112233)
	var buf bytes.Buffer
	g.Dump(&buf)
	assert.Contains(t, buf.String(), "rect 3x4 at 0,0 color=ff112233")
}
