package scene

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurex-showroom/core"
)

func testScene() *Scene {
	paint := NewPBRMaterial("body", core.MustParseHex("#3b82f6"), 0.95, 0.12)
	paint.Clearcoat = 1
	lamp := NewPBRMaterial("headlight", core.MustParseHex("#00f2ff"), 0, 1)
	lamp.Emissive = lamp.Color
	lamp.EmissiveIntensity = 10
	lamp.ToneMapped = false

	s := NewScene()
	cam := NewCamera(35, 16.0/9.0, 0.1, 1000)
	cam.SetPosition(mgl32.Vec3{0, 2, 10})
	s.SetCamera(cam)
	s.AddLight(&Light{Type: LightAmbient, Color: core.ColorWhite, Intensity: 0.2})
	s.Environment = "night"
	s.Grid = &Grid{Size: 100, Divisions: 50, CenterColor: core.MustParseHex("#333333"), LineColor: core.MustParseHex("#111111")}

	spin := NewNode("Rim").Add(NewPrimitive("Spoke", Box(0.02, 0.2, 0.035), paint))
	spin.Animated = true
	s.AddNode(NewNode("Vehicle").Add(
		NewPrimitive("Shell", Box(2, 0.8, 4.5), paint).At(0, 0.5, 0),
		NewPrimitive("Lamp", Cylinder(0.05, 0.05, 0.1, 16), lamp).Rotated(math.Pi/2, 0, 0),
		spin,
	))
	return s
}

func TestDocumentSharesMaterialsByHandle(t *testing.T) {
	doc := NewDocument(testScene())

	require.Len(t, doc.Materials, 2)
	assert.Equal(t, "#3b82f6", doc.Materials["body"].Color)
	assert.Equal(t, float32(1), doc.Materials["body"].Clearcoat)
	assert.Equal(t, "#00f2ff", doc.Materials["headlight"].Emissive)
	assert.False(t, doc.Materials["headlight"].ToneMapped)
	assert.True(t, doc.Materials["body"].Physical)
	assert.False(t, doc.Materials["headlight"].Physical)

	vehicle := doc.Root.Children[0]
	assert.Equal(t, "body", vehicle.Children[0].Material)
	assert.Equal(t, "body", vehicle.Children[2].Children[0].Material)
	assert.True(t, vehicle.Children[2].Animated)
}

func TestDocumentHandlesCollidingNames(t *testing.T) {
	a := NewPBRMaterial("paint", core.ColorRed, 0, 1)
	b := NewPBRMaterial("paint", core.ColorWhite, 0, 1)
	root := NewNode("r").Add(
		NewPrimitive("a", Box(1, 1, 1), a),
		NewPrimitive("b", Box(1, 1, 1), b),
		NewPrimitive("a2", Box(1, 1, 1), a),
	)
	mats, nd := NodeDocument(root)
	require.Len(t, mats, 2)
	assert.Equal(t, "paint", nd.Children[0].Material)
	assert.Equal(t, "paint#2", nd.Children[1].Material)
	assert.Equal(t, "paint", nd.Children[2].Material)
}

func TestDocumentRoundTrip(t *testing.T) {
	s := testScene()
	var buf bytes.Buffer
	_, err := NewDocument(s).WriteTo(&buf)
	require.NoError(t, err)

	doc, err := DecodeDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "night", doc.Environment)
	require.NotNil(t, doc.Camera)
	assert.Equal(t, [3]float32{0, 2, 10}, doc.Camera.Position)

	root, err := doc.BuildTree()
	require.NoError(t, err)

	want := s.Root.Primitives()
	got := root.Primitives()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, *want[i].Geometry, *got[i].Geometry)
		assert.Equal(t, want[i].Transform, got[i].Transform)
		assert.Equal(t, *want[i].Material, *got[i].Material)
	}
	// Shared in the source tree, shared after decoding.
	assert.Same(t, got[0].Material, got[2].Material)
}

func TestDocumentBuildTree_UnknownMaterial(t *testing.T) {
	doc := &Document{Root: NodeDoc{Name: "r", Children: []NodeDoc{{Name: "x", Material: "nope"}}}}
	_, err := doc.BuildTree()
	assert.ErrorContains(t, err, "unknown material")
}

func TestDocumentBuildTree_BadGeometry(t *testing.T) {
	doc := &Document{Root: NodeDoc{Name: "r", Geometry: &GeometryDoc{Kind: KindBox, Args: []float32{1}}}}
	_, err := doc.BuildTree()
	assert.ErrorContains(t, err, "want 3 args")
}

func TestSaveDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveDocument(testScene(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "materials")
	assert.Contains(t, raw, "grid")
}
