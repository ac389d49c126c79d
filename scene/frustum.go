package scene

import "github.com/go-gl/mathgl/mgl32"

// ClipPlane is the half-space Normal·p + D >= 0.
type ClipPlane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane. Positive is
// inside.
func (p ClipPlane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]ClipPlane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts normalized planes from a view-projection matrix
// (Gribb/Hartmann).
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.Add(r0))
	f.Planes[1] = normalizePlane(r3.Sub(r0))
	f.Planes[2] = normalizePlane(r3.Add(r1))
	f.Planes[3] = normalizePlane(r3.Sub(r1))
	f.Planes[4] = normalizePlane(r3.Add(r2))
	f.Planes[5] = normalizePlane(r3.Sub(r2))
	return f
}

func normalizePlane(v mgl32.Vec4) ClipPlane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return ClipPlane{}
	}
	return ClipPlane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// corner picks the box corner furthest along dir (positive) or against it.
func (b AABB) corner(dir mgl32.Vec3, positive bool) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		if (dir[i] >= 0) == positive {
			out[i] = b.Max[i]
		} else {
			out[i] = b.Min[i]
		}
	}
	return out
}

// IntersectsFrustum returns false if the box is completely outside f.
func (b AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		if p.DistanceTo(b.corner(p.Normal, true)) < 0 {
			return false
		}
	}
	return true
}

// InsideFrustum reports whether the whole box lies within f.
func (b AABB) InsideFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		if p.DistanceTo(b.corner(p.Normal, false)) < 0 {
			return false
		}
	}
	return true
}

// Frustum returns the camera's world-space view frustum.
func (c *Camera) Frustum() Frustum {
	return FrustumFromVP(c.ViewProjectionMatrix())
}

// Framed reports whether every visible primitive under n is fully inside
// the scene camera's view. A scene without a camera frames nothing.
func (s *Scene) Framed(n *Node) bool {
	if s.Camera == nil {
		return false
	}
	box, ok := Bounds(n)
	if !ok {
		return false
	}
	f := s.Camera.Frustum()
	return box.InsideFrustum(&f)
}
