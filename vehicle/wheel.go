package vehicle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/materials"
	"aurex-showroom/scene"
)

// Side tells which flank a wheel is mounted on. Left wheels sit on +X.
type Side float32

const (
	Left  Side = 1
	Right Side = -1
)

const (
	SpokeCount = 10
	SlotCount  = 16
)

// Stance positions of the four wheel centers.
var (
	StanceFL = mgl32.Vec3{0.92, 0.36, 1.45}
	StanceFR = mgl32.Vec3{-0.92, 0.36, 1.45}
	StanceRL = mgl32.Vec3{0.92, 0.36, -1.4}
	StanceRR = mgl32.Vec3{-0.92, 0.36, -1.4}
)

// Wheel is one corner subassembly. Only the rim group moves: it spins about
// the axle (X) by an angle the wheel owns for its whole lifetime.
type Wheel struct {
	Root *scene.Node
	Rim  *scene.Node
	Side Side

	spin float64
}

// NewWheel builds a wheel centered at position.
func NewWheel(name string, position mgl32.Vec3, side Side, p *materials.Palette) *Wheel {
	s := float32(side)
	root := scene.NewNode(name)
	root.SetPosition(position)

	tire := scene.NewPrimitive(name+"Tire", scene.Torus(0.3, 0.09, 16, 48), p.Get(materials.Rubber)).
		Rotated(0, math.Pi/2, 0)

	rim := scene.NewNode(name + "Rim")
	rim.Animated = true
	rim.Add(
		scene.NewPrimitive(name+"RimRing", scene.Torus(0.24, 0.02, 8, 48), p.Get(materials.Chrome)).
			Rotated(0, math.Pi/2, 0),
		scene.NewPrimitive(name+"Hub", scene.Cylinder(0.06, 0.06, 0.08, 24), p.Get(materials.Chrome)).
			Rotated(0, 0, math.Pi/2),
		scene.NewPrimitive(name+"CenterCap", scene.Cylinder(0.035, 0.035, 0.02, 24), p.Get(materials.GlossBlack)).
			At(s*0.1, 0, 0).
			Rotated(0, 0, math.Pi/2),
	)
	for i := 0; i < SpokeCount; i++ {
		a := float64(i) / SpokeCount * 2 * math.Pi
		rim.AddChild(
			scene.NewPrimitive(fmt.Sprintf("%sSpoke%d", name, i), scene.Box(0.02, 0.2, 0.035), p.Get(materials.Aluminum)).
				At(s*0.04, float32(math.Cos(a)*0.12), float32(math.Sin(a)*0.12)).
				Rotated(float32(a), 0, 0),
		)
	}

	disc := scene.NewNode(name + "Brake")
	disc.SetPosition(mgl32.Vec3{-s * 0.02, 0, 0})
	disc.AddChild(
		scene.NewPrimitive(name+"Disc", scene.Cylinder(0.2, 0.2, 0.025, 32), p.Get(materials.BrakeDisc)).
			Rotated(0, 0, math.Pi/2),
	)
	for i := 0; i < SlotCount; i++ {
		a := float64(i) / SlotCount * 2 * math.Pi
		disc.AddChild(
			scene.NewPrimitive(fmt.Sprintf("%sSlot%d", name, i), scene.Box(0.028, 0.04, 0.006), p.Get(materials.GlossBlack)).
				At(0, float32(math.Cos(a)*0.14), float32(math.Sin(a)*0.14)).
				Rotated(float32(a), 0, 0),
		)
	}

	caliper := scene.NewPrimitive(name+"Caliper", scene.Box(0.06, 0.12, 0.08), p.Get(materials.BrakeCaliper)).
		At(s*0.005, 0.13, -0.12)

	root.Add(tire, rim, disc, caliper)
	return &Wheel{Root: root, Rim: rim, Side: side}
}

// Spin returns the accumulated rim angle in [0, 2π).
func (w *Wheel) Spin() float64 {
	return w.spin
}

// Advance rotates the rim by delta radians.
func (w *Wheel) Advance(delta float64) {
	w.setSpin(w.spin + delta)
}

func (w *Wheel) setSpin(a float64) {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	w.spin = a
	w.Rim.SetRotation(mgl32.Vec3{float32(a), 0, 0})
}
