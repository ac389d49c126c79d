package scene

import (
	"fmt"
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
)

// GeometryKind names one of the fixed primitive shapes.
type GeometryKind string

const (
	KindBox      GeometryKind = "box"
	KindCylinder GeometryKind = "cylinder"
	KindTorus    GeometryKind = "torus"
	KindPlane    GeometryKind = "plane"
)

// Geometry is an immutable shape descriptor. Dimensions follow the browser
// renderer's conventions: cylinders stand along Y, tori lie in the XY plane
// around Z and planes lie in the XY plane facing +Z.
type Geometry struct {
	Kind GeometryKind

	Width, Height, Depth float32 // box; plane uses Width/Height

	RadiusTop, RadiusBottom float32 // cylinder; Height is shared with box

	Radius, Tube float32 // torus

	RadialSegments  int // cylinder, torus
	TubularSegments int // torus
}

func Box(width, height, depth float32) Geometry {
	return Geometry{Kind: KindBox, Width: width, Height: height, Depth: depth}
}

func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	return Geometry{
		Kind:           KindCylinder,
		RadiusTop:      radiusTop,
		RadiusBottom:   radiusBottom,
		Height:         height,
		RadialSegments: radialSegments,
	}
}

func Torus(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}
	return Geometry{
		Kind:            KindTorus,
		Radius:          radius,
		Tube:            tube,
		RadialSegments:  radialSegments,
		TubularSegments: tubularSegments,
	}
}

func Plane(width, height float32) Geometry {
	return Geometry{Kind: KindPlane, Width: width, Height: height}
}

// Key identifies geometries with identical parameters; exporters use it to
// share one mesh between primitives.
func (g Geometry) Key() string {
	switch g.Kind {
	case KindBox:
		return fmt.Sprintf("box(%g,%g,%g)", g.Width, g.Height, g.Depth)
	case KindCylinder:
		return fmt.Sprintf("cylinder(%g,%g,%g,%d)", g.RadiusTop, g.RadiusBottom, g.Height, g.RadialSegments)
	case KindTorus:
		return fmt.Sprintf("torus(%g,%g,%d,%d)", g.Radius, g.Tube, g.RadialSegments, g.TubularSegments)
	case KindPlane:
		return fmt.Sprintf("plane(%g,%g)", g.Width, g.Height)
	}
	return string(g.Kind)
}

// LocalBounds returns the analytic bounding box of the shape.
func (g Geometry) LocalBounds() AABB {
	var h mgl32.Vec3
	switch g.Kind {
	case KindBox:
		h = mgl32.Vec3{g.Width / 2, g.Height / 2, g.Depth / 2}
	case KindCylinder:
		r := g.RadiusTop
		if g.RadiusBottom > r {
			r = g.RadiusBottom
		}
		h = mgl32.Vec3{r, g.Height / 2, r}
	case KindTorus:
		h = mgl32.Vec3{g.Radius + g.Tube, g.Radius + g.Tube, g.Tube}
	case KindPlane:
		h = mgl32.Vec3{g.Width / 2, g.Height / 2, 0}
	}
	return AABB{Min: h.Mul(-1), Max: h}
}

// Mesh generates triangle data for the shape.
func (g Geometry) Mesh() *Mesh {
	switch g.Kind {
	case KindBox:
		return createBox(g.Width, g.Height, g.Depth)
	case KindCylinder:
		return createCylinder(g.RadiusTop, g.RadiusBottom, g.Height, g.RadialSegments)
	case KindTorus:
		return createTorus(g.Radius, g.Tube, g.RadialSegments, g.TubularSegments)
	case KindPlane:
		return createPlane(g.Width, g.Height)
	}
	return NewMesh(g.Key())
}

func createBox(width, height, depth float32) *Mesh {
	x, y, z := width/2, height/2, depth/2

	var vertices []core.Vertex
	var indices []uint32

	face := func(normal mgl32.Vec3, corners [4]mgl32.Vec3) {
		base := uint32(len(vertices))
		uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for i, c := range corners {
			vertices = append(vertices, core.Vertex{Position: c, Normal: normal, UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	face(mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}})
	face(mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}})
	face(mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}})
	face(mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}})
	face(mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}})
	face(mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}})

	return CreateMeshFromData("Box", vertices, indices)
}

func createCylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2.0

	// Side normal tilts with the radius difference so tapered cylinders shade correctly.
	slope := (radiusBottom - radiusTop) / height

	for i := 0; i <= segments; i++ {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
		sinT := float32(stdmath.Sin(theta))
		cosT := float32(stdmath.Cos(theta))
		normal := mgl32.Vec3{sinT, slope, cosT}.Normalize()
		u := float32(i) / float32(segments)

		vertices = append(vertices,
			core.Vertex{Position: mgl32.Vec3{sinT * radiusBottom, -halfHeight, cosT * radiusBottom}, Normal: normal, UV: mgl32.Vec2{u, 0}},
			core.Vertex{Position: mgl32.Vec3{sinT * radiusTop, halfHeight, cosT * radiusTop}, Normal: normal, UV: mgl32.Vec2{u, 1}},
		)
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+2, base+1)
		indices = append(indices, base+1, base+2, base+3)
	}

	addCap := func(y, radius float32, normal mgl32.Vec3, top bool) {
		if radius <= 0 {
			return
		}
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{Position: mgl32.Vec3{0, y, 0}, Normal: normal, UV: mgl32.Vec2{0.5, 0.5}})
		for i := 0; i <= segments; i++ {
			theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
			sinT := float32(stdmath.Sin(theta))
			cosT := float32(stdmath.Cos(theta))
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{sinT * radius, y, cosT * radius},
				Normal:   normal,
				UV:       mgl32.Vec2{sinT*0.5 + 0.5, cosT*0.5 + 0.5},
			})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			if top {
				indices = append(indices, center, a, a+1)
			} else {
				indices = append(indices, center, a+1, a)
			}
		}
	}
	addCap(halfHeight, radiusTop, mgl32.Vec3{0, 1, 0}, true)
	addCap(-halfHeight, radiusBottom, mgl32.Vec3{0, -1, 0}, false)

	return CreateMeshFromData("Cylinder", vertices, indices)
}

func createTorus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	var vertices []core.Vertex
	var indices []uint32

	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * stdmath.Pi
		cosV := float32(stdmath.Cos(v))
		sinV := float32(stdmath.Sin(v))

		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * stdmath.Pi
			cosU := float32(stdmath.Cos(u))
			sinU := float32(stdmath.Sin(u))

			pos := mgl32.Vec3{
				(radius + tube*cosV) * cosU,
				(radius + tube*cosV) * sinU,
				tube * sinV,
			}
			center := mgl32.Vec3{radius * cosU, radius * sinU, 0}

			vertices = append(vertices, core.Vertex{
				Position: pos,
				Normal:   pos.Sub(center).Normalize(),
				UV:       mgl32.Vec2{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
			})
		}
	}

	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := uint32((tubularSegments+1)*j + i - 1)
			b := uint32((tubularSegments+1)*(j-1) + i - 1)
			c := uint32((tubularSegments+1)*(j-1) + i)
			d := uint32((tubularSegments+1)*j + i)

			indices = append(indices, a, b, d)
			indices = append(indices, b, c, d)
		}
	}

	return CreateMeshFromData("Torus", vertices, indices)
}

func createPlane(width, height float32) *Mesh {
	halfW := width / 2.0
	halfH := height / 2.0
	normal := mgl32.Vec3{0, 0, 1}

	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-halfW, -halfH, 0}, Normal: normal, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{halfW, -halfH, 0}, Normal: normal, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{halfW, halfH, 0}, Normal: normal, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-halfW, halfH, 0}, Normal: normal, UV: mgl32.Vec2{0, 1}},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	return CreateMeshFromData("Plane", vertices, indices)
}
