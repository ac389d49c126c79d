package scene

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Size returns the box extent along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	out := b
	for i := 0; i < 3; i++ {
		if o.Min[i] < out.Min[i] {
			out.Min[i] = o.Min[i]
		}
		if o.Max[i] > out.Max[i] {
			out.Max[i] = o.Max[i]
		}
	}
	return out
}

// transformAABB transforms a local AABB by a world matrix by testing all 8 corners.
func transformAABB(local AABB, m mgl32.Mat4) AABB {
	mn, mx := local.Min, local.Max
	corners := [8]mgl32.Vec3{
		{mn[0], mn[1], mn[2]},
		{mx[0], mn[1], mn[2]},
		{mn[0], mx[1], mn[2]},
		{mx[0], mx[1], mn[2]},
		{mn[0], mn[1], mx[2]},
		{mx[0], mn[1], mx[2]},
		{mn[0], mx[1], mx[2]},
		{mx[0], mx[1], mx[2]},
	}
	first := mgl32.TransformCoordinate(corners[0], m)
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		wp := mgl32.TransformCoordinate(corners[i], m)
		out = out.Union(AABB{Min: wp, Max: wp})
	}
	return out
}

// Bounds returns the world-space box enclosing every primitive under n.
// ok is false when the subtree holds no geometry.
func Bounds(n *Node) (box AABB, ok bool) {
	n.Traverse(func(node *Node) {
		if node.Geometry == nil || !node.Visible {
			return
		}
		wb := transformAABB(node.Geometry.LocalBounds(), node.WorldMatrix())
		if !ok {
			box, ok = wb, true
			return
		}
		box = box.Union(wb)
	})
	return box, ok
}
