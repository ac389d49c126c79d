package scene

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfExporter converts a node tree into a glTF document. Identical
// geometry+material pairs share one glTF mesh and every *Material is
// written once.
type gltfExporter struct {
	doc       *gltf.Document
	meshes    map[string]int
	materials map[*Material]int
	handles   *materialHandles
}

// GLTFDocument builds a glTF document holding the subtree rooted at root.
// Each scene node becomes one glTF node with its local transform.
func GLTFDocument(root *Node) *gltf.Document {
	e := &gltfExporter{
		doc:       gltf.NewDocument(),
		meshes:    make(map[string]int),
		materials: make(map[*Material]int),
		handles:   newMaterialHandles(),
	}
	rootIdx := e.addNode(root)
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, rootIdx)
	return e.doc
}

// ExportGLB writes the subtree rooted at root as a binary glTF stream.
func ExportGLB(w io.Writer, root *Node) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(GLTFDocument(root)); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

func (e *gltfExporter) addNode(n *Node) int {
	q := n.Transform.Quat()
	p := n.Transform.Position
	s := n.Transform.Scale

	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{float64(p[0]), float64(p[1]), float64(p[2])},
		Rotation:    [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)},
		Scale:       [3]float64{float64(s[0]), float64(s[1]), float64(s[2])},
	}
	if n.Animated {
		gn.Extras = map[string]any{"animated": true}
	}
	if n.Geometry != nil && n.Visible {
		mesh := e.addMesh(*n.Geometry, n.Material)
		gn.Mesh = &mesh
	}

	idx := len(e.doc.Nodes)
	e.doc.Nodes = append(e.doc.Nodes, gn)

	for _, child := range n.Children {
		gn.Children = append(gn.Children, e.addNode(child))
	}
	return idx
}

func (e *gltfExporter) addMesh(g Geometry, m *Material) int {
	key := g.Key()
	if m != nil {
		key += "|" + e.handles.handle(m)
	}
	if idx, ok := e.meshes[key]; ok {
		return idx
	}

	data := g.Mesh()
	prim := &gltf.Primitive{
		Attributes: map[string]int{
			"POSITION":   modeler.WritePosition(e.doc, data.Positions()),
			"NORMAL":     modeler.WriteNormal(e.doc, data.Normals()),
			"TEXCOORD_0": modeler.WriteTextureCoord(e.doc, data.UVs()),
		},
		Indices: gltf.Index(modeler.WriteIndices(e.doc, data.Indices)),
	}
	if m != nil {
		prim.Material = gltf.Index(e.addMaterial(m))
	}

	idx := len(e.doc.Meshes)
	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{
		Name:       g.Key(),
		Primitives: []*gltf.Primitive{prim},
	})
	e.meshes[key] = idx
	return idx
}

func (e *gltfExporter) addMaterial(m *Material) int {
	if idx, ok := e.materials[m]; ok {
		return idx
	}

	alpha := m.Color.A * m.Opacity
	gm := &gltf.Material{
		Name: e.handles.handle(m),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(m.Color.R), float64(m.Color.G), float64(m.Color.B), float64(alpha)},
			MetallicFactor:  gltf.Float(float64(m.Metalness)),
			RoughnessFactor: gltf.Float(float64(m.Roughness)),
		},
		DoubleSided: m.DoubleSided,
	}
	if m.Transparent || alpha < 1 {
		gm.AlphaMode = gltf.AlphaBlend
	}
	if m.IsEmissive() {
		gm.EmissiveFactor = [3]float64{float64(m.Emissive.R), float64(m.Emissive.G), float64(m.Emissive.B)}
	}

	// glTF core has no slot for these, so they travel in extras.
	extras := map[string]any{"envMapIntensity": m.EnvMapIntensity}
	if m.Clearcoat > 0 {
		extras["clearcoat"] = m.Clearcoat
		extras["clearcoatRoughness"] = m.ClearcoatRoughness
	}
	if m.Transmission > 0 {
		extras["transmission"] = m.Transmission
		extras["thickness"] = m.Thickness
	}
	if m.IsEmissive() {
		extras["emissiveIntensity"] = m.EmissiveIntensity
	}
	if !m.ToneMapped {
		extras["toneMapped"] = false
	}
	gm.Extras = extras

	idx := len(e.doc.Materials)
	e.doc.Materials = append(e.doc.Materials, gm)
	e.materials[m] = idx
	return idx
}
