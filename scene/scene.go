package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
)

// Scene is the renderable frame handed to the browser: the vehicle tree plus
// camera, lighting rig, ground and environment.
type Scene struct {
	Root           *Node
	Camera         *Camera
	Lights         []*Light
	Environment    string // lighting preset name, e.g. "night"
	ContactShadows *ContactShadows
	Grid           *Grid
}

type LightType string

const (
	LightAmbient     LightType = "ambient"
	LightDirectional LightType = "directional"
	LightPoint       LightType = "point"
	LightSpot        LightType = "spot"
	LightRectArea    LightType = "rectArea"
)

// Light represents a light source. Fields that do not apply to a light type
// are left zero.
type Light struct {
	Type      LightType
	Position  mgl32.Vec3
	Color     core.Color
	Intensity float32

	// spot
	Angle      float32
	Penumbra   float32
	CastShadow bool

	// rect area
	Width, Height float32
}

// ContactShadows is a soft ground shadow baked below the vehicle.
type ContactShadows struct {
	Resolution int
	Scale      float32
	Blur       float32
	Opacity    float32
	Far        float32
	Color      core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:   NewNode("Root"),
		Lights: make([]*Light, 0),
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// VisiblePrimitives returns all visible nodes that carry geometry.
func (s *Scene) VisiblePrimitives() []*Node {
	var visible []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.IsPrimitive() {
			visible = append(visible, node)
		}
	})
	return visible
}
