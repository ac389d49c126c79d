package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWorldMatrixComposesParents(t *testing.T) {
	root := NewNode("root").At(0, 1, 0)
	group := NewNode("group").At(0, 0, 2)
	leaf := NewPrimitive("leaf", Box(1, 1, 1), DefaultMaterial()).At(1, 0, 0)
	root.Add(group.Add(leaf))

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, leaf.WorldMatrix())
	assertVecNear(t, mgl32.Vec3{1, 1, 2}, p)

	// Moving the root invalidates cached descendants.
	root.SetRotation(mgl32.Vec3{0, math.Pi, 0})
	p = mgl32.TransformCoordinate(mgl32.Vec3{}, leaf.WorldMatrix())
	assertVecNear(t, mgl32.Vec3{-1, 1, -2}, p)
}

func TestNodeReparent(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children)
	require.Len(t, b.Children, 1)
	assert.Same(t, b, c.Parent)

	b.RemoveChild(c)
	assert.Nil(t, c.Parent)
	assert.Empty(t, b.Children)
}

func TestNodeFindAndPrimitives(t *testing.T) {
	mat := DefaultMaterial()
	root := NewNode("root").Add(
		NewNode("g1").Add(NewPrimitive("p1", Box(1, 1, 1), mat)),
		NewPrimitive("p2", Plane(1, 1), mat),
	)

	assert.Equal(t, "p1", root.Find("p1").Name)
	assert.Nil(t, root.Find("missing"))

	prims := root.Primitives()
	require.Len(t, prims, 2)
	assert.Equal(t, "p1", prims[0].Name)
	assert.Equal(t, "p2", prims[1].Name)

	assert.Len(t, root.Materials(), 1)
}

func TestNodeIdsAreUnique(t *testing.T) {
	seen := map[uint32]bool{}
	for i := 0; i < 100; i++ {
		id := NewNode("n").Id
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestBounds(t *testing.T) {
	mat := DefaultMaterial()
	root := NewNode("root").Add(
		NewPrimitive("a", Box(2, 2, 2), mat).At(-3, 0, 0),
		NewPrimitive("b", Box(1, 1, 1), mat).At(4, 0, 0).Rotated(0, 0, math.Pi/4),
	)

	box, ok := Bounds(root)
	require.True(t, ok)
	half := float32(math.Sqrt2 / 2)
	assertVecNear(t, mgl32.Vec3{-4, -1, -1}, box.Min)
	assertVecNear(t, mgl32.Vec3{4 + half, 1, 1}, box.Max)

	_, ok = Bounds(NewNode("empty"))
	assert.False(t, ok)
}

func TestBoundsSkipsHiddenPrimitives(t *testing.T) {
	hidden := NewPrimitive("h", Box(10, 10, 10), DefaultMaterial())
	hidden.Visible = false
	root := NewNode("root").Add(hidden, NewPrimitive("v", Box(1, 1, 1), DefaultMaterial()))

	box, ok := Bounds(root)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{1, 1, 1}, box.Size())
}
