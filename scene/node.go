package scene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
)

// Node is one element of the vehicle tree. A node with Geometry set is a
// primitive and renders with Material; a node without is an assembly group.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Visible   bool
	Id        uint32

	Geometry *Geometry
	Material *Material

	// Animated marks the few nodes whose transform changes per tick.
	Animated bool

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

var nodeIdCounter atomic.Uint32

func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		Id:               nodeIdCounter.Add(1),
		worldMatrixDirty: true,
	}
}

// NewPrimitive creates a leaf node drawing geometry with material.
func NewPrimitive(name string, geometry Geometry, material *Material) *Node {
	n := NewNode(name)
	n.Geometry = &geometry
	n.Material = material
	return n
}

func (n *Node) IsPrimitive() bool {
	return n.Geometry != nil
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	child.MarkWorldMatrixDirty()
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

// WorldMatrix returns the node transform composed with all of its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		localMatrix := n.Transform.Matrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.WorldMatrix().Mul4(localMatrix)
		} else {
			n.worldMatrix = localMatrix
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos mgl32.Vec3) {
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

// SetRotation sets the Euler rotation (radians, XYZ order).
func (n *Node) SetRotation(rot mgl32.Vec3) {
	n.Transform.Rotation = rot
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

// At sets the local position and returns n, for literal-table construction.
func (n *Node) At(x, y, z float32) *Node {
	n.SetPosition(mgl32.Vec3{x, y, z})
	return n
}

// Rotated sets the local Euler rotation and returns n.
func (n *Node) Rotated(x, y, z float32) *Node {
	n.SetRotation(mgl32.Vec3{x, y, z})
	return n
}

// Scaled sets the local scale and returns n.
func (n *Node) Scaled(x, y, z float32) *Node {
	n.SetScale(mgl32.Vec3{x, y, z})
	return n
}

// Add appends children in order and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Primitives returns every primitive under n in depth-first order.
func (n *Node) Primitives() []*Node {
	var out []*Node
	n.Traverse(func(node *Node) {
		if node.IsPrimitive() {
			out = append(out, node)
		}
	})
	return out
}

// Materials returns the distinct materials referenced under n, in first-use order.
func (n *Node) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	n.Traverse(func(node *Node) {
		if node.Material == nil || seen[node.Material] {
			return
		}
		seen[node.Material] = true
		out = append(out, node.Material)
	})
	return out
}
