package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
)

// Grid is a flat helper floor in the XZ plane.
//
//	Size      total world-space extent (grid goes from -Size/2 to +Size/2)
//	Divisions number of cells along each axis
//
// The two centre lines use CenterColor, all others LineColor.
type Grid struct {
	Size        float32
	Divisions   int
	CenterColor core.Color
	LineColor   core.Color
	Position    mgl32.Vec3
}

// Mesh builds the grid as line segments.
func (g *Grid) Mesh() *Mesh {
	divisions := g.Divisions
	if divisions < 1 {
		divisions = 1
	}

	half := g.Size / 2.0
	step := g.Size / float32(divisions)
	up := mgl32.Vec3{0, 1, 0}

	var vertices []core.Vertex
	var indices []uint32

	addLine := func(a, b mgl32.Vec3) {
		base := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: a.Add(g.Position), Normal: up},
			core.Vertex{Position: b.Add(g.Position), Normal: up},
		)
		indices = append(indices, base, base+1)
	}

	for i := 0; i <= divisions; i++ {
		x := -half + float32(i)*step
		addLine(mgl32.Vec3{x, 0, -half}, mgl32.Vec3{x, 0, half})
	}
	for i := 0; i <= divisions; i++ {
		z := -half + float32(i)*step
		addLine(mgl32.Vec3{-half, 0, z}, mgl32.Vec3{half, 0, z})
	}

	m := CreateMeshFromData("Grid", vertices, indices)
	m.DrawMode = DrawLines
	return m
}

// LineCount is the number of segments the grid draws.
func (g *Grid) LineCount() int {
	d := g.Divisions
	if d < 1 {
		d = 1
	}
	return 2 * (d + 1)
}
