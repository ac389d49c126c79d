package scene

import "aurex-showroom/core"

// DrawMode controls how the renderer interprets the index buffer.
type DrawMode int

const (
	DrawTriangles DrawMode = iota // default
	DrawLines                     // pairs of indices form line segments
)

// Mesh holds CPU-side vertex/index data generated from a Geometry.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	DrawMode DrawMode

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]core.Vertex, 0),
		Indices:  make([]uint32, 0),
	}
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
	}
	return m
}

// computeLocalAABB returns the tight AABB of the given vertex positions.
func computeLocalAABB(vertices []core.Vertex) AABB {
	box := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		box = box.Union(AABB{Min: p, Max: p})
	}
	return box
}

// Positions returns vertex positions as plain arrays for buffer writers.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

func (m *Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal
	}
	return out
}

func (m *Mesh) UVs() [][2]float32 {
	out := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.UV
	}
	return out
}
