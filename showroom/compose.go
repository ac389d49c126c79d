package showroom

import (
	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/core"
	"aurex-showroom/scene"
	"aurex-showroom/vehicle"
)

// Compose places a vehicle assembly into the showroom rig: camera, lights,
// contact shadows, grid floor and the night environment.
func Compose(a *vehicle.Assembly) *scene.Scene {
	s := scene.NewScene()

	cam := scene.NewCamera(35, 16.0/9.0, 0.1, 1000)
	cam.SetPosition(mgl32.Vec3{0, 2, 10})
	s.SetCamera(cam)

	s.AddLight(&scene.Light{Type: scene.LightAmbient, Color: core.ColorWhite, Intensity: 0.2})
	s.AddLight(&scene.Light{
		Type:       scene.LightSpot,
		Position:   mgl32.Vec3{10, 20, 10},
		Color:      core.ColorWhite,
		Intensity:  2000,
		Angle:      0.15,
		Penumbra:   1,
		CastShadow: true,
	})
	s.AddLight(&scene.Light{
		Type:      scene.LightPoint,
		Position:  mgl32.Vec3{-10, 5, -10},
		Color:     core.MustParseHex("#3b82f6"),
		Intensity: 1000,
	})
	s.AddLight(&scene.Light{
		Type:      scene.LightRectArea,
		Position:  mgl32.Vec3{0, 5, 5},
		Color:     core.ColorWhite,
		Intensity: 5,
		Width:     10,
		Height:    10,
	})

	s.Environment = "night"
	s.ContactShadows = &scene.ContactShadows{
		Resolution: 512,
		Scale:      30,
		Blur:       2.5,
		Opacity:    0.6,
		Far:        10,
		Color:      core.ColorBlack,
	}
	s.Grid = &scene.Grid{
		Size:        100,
		Divisions:   50,
		CenterColor: core.FromRGB24(0x333333),
		LineColor:   core.FromRGB24(0x111111),
		Position:    mgl32.Vec3{0, -0.01, 0},
	}

	s.AddNode(a.Root)
	return s
}
