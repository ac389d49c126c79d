package vehicle

import (
	"fmt"
	"math"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/materials"
	"aurex-showroom/scene"
)

// Placeholder is the simple box car shown before the detailed model existed.
// It does not spin its wheels.
type Placeholder struct{}

func (Placeholder) Name() string { return "placeholder" }

func (Placeholder) Palette(body core.Color) *materials.Palette {
	return materials.NewPlaceholderPalette(body)
}

func (Placeholder) Preset() animation.Preset { return animation.Placeholder }

var placeholderWheels = [4][3]float32{
	{-1.1, 0, 1.5},
	{1.1, 0, 1.5},
	{-1.1, 0, -1.5},
	{1.1, 0, -1.5},
}

func (Placeholder) Build(p *materials.Palette) *Assembly {
	a := newAssembly("placeholder", "PlaceholderCar", p)

	a.Root.Add(
		scene.NewPrimitive("Body", scene.Box(2, 0.8, 4.5), p.Get(materials.Body)).At(0, 0.5, 0),
		scene.NewPrimitive("Cockpit", scene.Box(1.6, 0.6, 2), p.Get(materials.Cockpit)).At(0, 1.0, -0.5),
	)

	for i, pos := range placeholderWheels {
		wheel := scene.NewPrimitive(fmt.Sprintf("Wheel%d", i), scene.Cylinder(0.4, 0.4, 0.4, 32), p.Get(materials.Tire)).
			At(pos[0], pos[1], pos[2]).
			Rotated(0, 0, math.Pi/2)
		wheel.AddChild(
			scene.NewPrimitive(fmt.Sprintf("Hubcap%d", i), scene.Cylinder(0.25, 0.25, 0.05, 16), p.Get(materials.Hubcap)).
				At(0, 0.21, 0),
		)
		a.Root.AddChild(wheel)
	}

	a.Root.Add(
		scene.NewPrimitive("HeadlightL", scene.Box(0.5, 0.1, 0.1), p.Get(materials.Headlight)).At(0.6, 0.6, 2.26),
		scene.NewPrimitive("HeadlightR", scene.Box(0.5, 0.1, 0.1), p.Get(materials.Headlight)).At(-0.6, 0.6, 2.26),
		scene.NewPrimitive("Taillight", scene.Box(1.8, 0.05, 0.1), p.Get(materials.Taillight)).At(0, 0.6, -2.26),
	)
	return a
}
