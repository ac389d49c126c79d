package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
)

// ── JSON data structures ──────────────────────────────────────────────────────

// Document is the JSON projection of a Scene consumed by the browser
// renderer. Materials are listed once and referenced by handle from every
// primitive that shares them.
type Document struct {
	Version        int                    `json:"version"`
	Camera         *CameraDoc             `json:"camera,omitempty"`
	Lights         []LightDoc             `json:"lights"`
	Environment    string                 `json:"environment,omitempty"`
	ContactShadows *ContactShadowsDoc     `json:"contactShadows,omitempty"`
	Grid           *GridDoc               `json:"grid,omitempty"`
	Materials      map[string]MaterialDoc `json:"materials"`
	Root           NodeDoc                `json:"root"`
}

type TransformDoc struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
}

type GeometryDoc struct {
	Kind            GeometryKind `json:"kind"`
	Args            []float32    `json:"args"`
	RadialSegments  int          `json:"radialSegments,omitempty"`
	TubularSegments int          `json:"tubularSegments,omitempty"`
}

type NodeDoc struct {
	ID        uint32       `json:"id"`
	Name      string       `json:"name"`
	Transform TransformDoc `json:"transform"`
	Visible   bool         `json:"visible"`
	Animated  bool         `json:"animated,omitempty"`
	Geometry  *GeometryDoc `json:"geometry,omitempty"`
	Material  string       `json:"material,omitempty"`
	Children  []NodeDoc    `json:"children,omitempty"`
}

type MaterialDoc struct {
	Color              string  `json:"color"`
	Metalness          float32 `json:"metalness"`
	Roughness          float32 `json:"roughness"`
	Clearcoat          float32 `json:"clearcoat,omitempty"`
	ClearcoatRoughness float32 `json:"clearcoatRoughness,omitempty"`
	Transmission       float32 `json:"transmission,omitempty"`
	Thickness          float32 `json:"thickness,omitempty"`
	Opacity            float32 `json:"opacity"`
	Transparent        bool    `json:"transparent,omitempty"`
	DoubleSided        bool    `json:"doubleSided,omitempty"`
	Emissive           string  `json:"emissive,omitempty"`
	EmissiveIntensity  float32 `json:"emissiveIntensity,omitempty"`
	EnvMapIntensity    float32 `json:"envMapIntensity"`
	ToneMapped         bool    `json:"toneMapped"`
	// Physical selects the clear-coat/transmission material model.
	Physical           bool    `json:"physical,omitempty"`
}

type CameraDoc struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      float32    `json:"fov"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
}

type LightDoc struct {
	Type       LightType  `json:"type"`
	Position   [3]float32 `json:"position"`
	Color      string     `json:"color"`
	Intensity  float32    `json:"intensity"`
	Angle      float32    `json:"angle,omitempty"`
	Penumbra   float32    `json:"penumbra,omitempty"`
	CastShadow bool       `json:"castShadow,omitempty"`
	Width      float32    `json:"width,omitempty"`
	Height     float32    `json:"height,omitempty"`
}

type ContactShadowsDoc struct {
	Resolution int     `json:"resolution"`
	Scale      float32 `json:"scale"`
	Blur       float32 `json:"blur"`
	Opacity    float32 `json:"opacity"`
	Far        float32 `json:"far"`
	Color      string  `json:"color"`
}

type GridDoc struct {
	Size        float32    `json:"size"`
	Divisions   int        `json:"divisions"`
	CenterColor string     `json:"centerColor"`
	LineColor   string     `json:"lineColor"`
	Position    [3]float32 `json:"position"`
}

// ── Encode ────────────────────────────────────────────────────────────────────

// NewDocument projects s into its JSON form.
func NewDocument(s *Scene) *Document {
	doc := &Document{
		Version:     1,
		Lights:      make([]LightDoc, 0, len(s.Lights)),
		Environment: s.Environment,
	}

	if s.Camera != nil {
		doc.Camera = &CameraDoc{
			Position: s.Camera.Position,
			Target:   s.Camera.Target,
			FOV:      s.Camera.FOV,
			Near:     s.Camera.NearPlane,
			Far:      s.Camera.FarPlane,
		}
	}
	for _, l := range s.Lights {
		doc.Lights = append(doc.Lights, lightToDoc(l))
	}
	if cs := s.ContactShadows; cs != nil {
		doc.ContactShadows = &ContactShadowsDoc{
			Resolution: cs.Resolution,
			Scale:      cs.Scale,
			Blur:       cs.Blur,
			Opacity:    cs.Opacity,
			Far:        cs.Far,
			Color:      cs.Color.Hex(),
		}
	}
	if g := s.Grid; g != nil {
		doc.Grid = &GridDoc{
			Size:        g.Size,
			Divisions:   g.Divisions,
			CenterColor: g.CenterColor.Hex(),
			LineColor:   g.LineColor.Hex(),
			Position:    g.Position,
		}
	}

	doc.Materials, doc.Root = NodeDocument(s.Root)
	return doc
}

// NodeDocument projects a subtree, returning its material table alongside.
func NodeDocument(root *Node) (map[string]MaterialDoc, NodeDoc) {
	handles := newMaterialHandles()
	nd := nodeToDoc(root, handles)
	return handles.table, nd
}

// WriteTo encodes the document as JSON.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("marshal scene document: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// SaveDocument writes the scene document to a JSON file at path.
func SaveDocument(s *Scene, path string) error {
	data, err := json.MarshalIndent(NewDocument(s), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene document %q: %w", path, err)
	}
	return nil
}

// ── Decode ────────────────────────────────────────────────────────────────────

// DecodeDocument reads a JSON scene document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scene document: %w", err)
	}
	return &doc, nil
}

// BuildTree reconstructs the node tree. Primitives that name the same
// material handle share one *Material.
func (d *Document) BuildTree() (*Node, error) {
	mats := make(map[string]*Material, len(d.Materials))
	for handle, md := range d.Materials {
		m, err := docToMaterial(handle, md)
		if err != nil {
			return nil, err
		}
		mats[handle] = m
	}
	return docToNode(d.Root, mats)
}

// ── conversion helpers ────────────────────────────────────────────────────────

// materialHandles assigns each distinct *Material a stable handle. The
// material name is used when free, otherwise a numeric suffix is appended.
type materialHandles struct {
	byPtr map[*Material]string
	table map[string]MaterialDoc
}

func newMaterialHandles() *materialHandles {
	return &materialHandles{
		byPtr: make(map[*Material]string),
		table: make(map[string]MaterialDoc),
	}
}

func (h *materialHandles) handle(m *Material) string {
	if name, ok := h.byPtr[m]; ok {
		return name
	}
	base := m.Name
	if base == "" {
		base = "material"
	}
	name := base
	for i := 2; ; i++ {
		if _, taken := h.table[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s#%d", base, i)
	}
	h.byPtr[m] = name
	h.table[name] = materialToDoc(m)
	return name
}

func materialToDoc(m *Material) MaterialDoc {
	md := MaterialDoc{
		Color:              m.Color.Hex(),
		Metalness:          m.Metalness,
		Roughness:          m.Roughness,
		Clearcoat:          m.Clearcoat,
		ClearcoatRoughness: m.ClearcoatRoughness,
		Transmission:       m.Transmission,
		Thickness:          m.Thickness,
		Opacity:            m.Opacity,
		Transparent:        m.Transparent,
		DoubleSided:        m.DoubleSided,
		EnvMapIntensity:    m.EnvMapIntensity,
		ToneMapped:         m.ToneMapped,
		Physical:           m.IsPhysical(),
	}
	if m.IsEmissive() {
		md.Emissive = m.Emissive.Hex()
		md.EmissiveIntensity = m.EmissiveIntensity
	}
	return md
}

func docToMaterial(name string, md MaterialDoc) (*Material, error) {
	color, err := core.ParseHex(md.Color)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	m := NewPBRMaterial(name, color, md.Metalness, md.Roughness)
	m.Clearcoat = md.Clearcoat
	m.ClearcoatRoughness = md.ClearcoatRoughness
	m.Transmission = md.Transmission
	m.Thickness = md.Thickness
	m.Opacity = md.Opacity
	m.Transparent = md.Transparent
	m.DoubleSided = md.DoubleSided
	m.EnvMapIntensity = md.EnvMapIntensity
	m.ToneMapped = md.ToneMapped
	if md.Emissive != "" {
		if m.Emissive, err = core.ParseHex(md.Emissive); err != nil {
			return nil, fmt.Errorf("material %q emissive: %w", name, err)
		}
		m.EmissiveIntensity = md.EmissiveIntensity
	}
	return m, nil
}

func geometryToDoc(g Geometry) *GeometryDoc {
	gd := &GeometryDoc{Kind: g.Kind}
	switch g.Kind {
	case KindBox:
		gd.Args = []float32{g.Width, g.Height, g.Depth}
	case KindCylinder:
		gd.Args = []float32{g.RadiusTop, g.RadiusBottom, g.Height}
		gd.RadialSegments = g.RadialSegments
	case KindTorus:
		gd.Args = []float32{g.Radius, g.Tube}
		gd.RadialSegments = g.RadialSegments
		gd.TubularSegments = g.TubularSegments
	case KindPlane:
		gd.Args = []float32{g.Width, g.Height}
	}
	return gd
}

func docToGeometry(gd *GeometryDoc) (Geometry, error) {
	want := map[GeometryKind]int{KindBox: 3, KindCylinder: 3, KindTorus: 2, KindPlane: 2}
	n, ok := want[gd.Kind]
	if !ok {
		return Geometry{}, fmt.Errorf("unknown geometry kind %q", gd.Kind)
	}
	if len(gd.Args) != n {
		return Geometry{}, fmt.Errorf("%s geometry: want %d args, got %d", gd.Kind, n, len(gd.Args))
	}
	a := gd.Args
	switch gd.Kind {
	case KindBox:
		return Box(a[0], a[1], a[2]), nil
	case KindCylinder:
		return Cylinder(a[0], a[1], a[2], gd.RadialSegments), nil
	case KindTorus:
		return Torus(a[0], a[1], gd.RadialSegments, gd.TubularSegments), nil
	default:
		return Plane(a[0], a[1]), nil
	}
}

func nodeToDoc(n *Node, handles *materialHandles) NodeDoc {
	nd := NodeDoc{
		ID:   n.Id,
		Name: n.Name,
		Transform: TransformDoc{
			Position: n.Transform.Position,
			Rotation: n.Transform.Rotation,
			Scale:    n.Transform.Scale,
		},
		Visible:  n.Visible,
		Animated: n.Animated,
	}
	if n.Geometry != nil {
		nd.Geometry = geometryToDoc(*n.Geometry)
	}
	if n.Material != nil {
		nd.Material = handles.handle(n.Material)
	}
	for _, child := range n.Children {
		nd.Children = append(nd.Children, nodeToDoc(child, handles))
	}
	return nd
}

func docToNode(nd NodeDoc, mats map[string]*Material) (*Node, error) {
	n := NewNode(nd.Name)
	n.Transform = core.Transform{
		Position: mgl32.Vec3(nd.Transform.Position),
		Rotation: mgl32.Vec3(nd.Transform.Rotation),
		Scale:    mgl32.Vec3(nd.Transform.Scale),
	}
	n.Visible = nd.Visible
	n.Animated = nd.Animated

	if nd.Geometry != nil {
		g, err := docToGeometry(nd.Geometry)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		n.Geometry = &g
	}
	if nd.Material != "" {
		m, ok := mats[nd.Material]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown material %q", nd.Name, nd.Material)
		}
		n.Material = m
	}

	for _, childDoc := range nd.Children {
		child, err := docToNode(childDoc, mats)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func lightToDoc(l *Light) LightDoc {
	return LightDoc{
		Type:       l.Type,
		Position:   l.Position,
		Color:      l.Color.Hex(),
		Intensity:  l.Intensity,
		Angle:      l.Angle,
		Penumbra:   l.Penumbra,
		CastShadow: l.CastShadow,
		Width:      l.Width,
		Height:     l.Height,
	}
}
