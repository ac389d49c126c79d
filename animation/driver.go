package animation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WheelSpinStep is the idle wheel rotation applied per tick, in radians.
const WheelSpinStep = 0.02

// Sweep limits of the detailed model's Y rotation.
const (
	RotationStart = -0.1 * math.Pi
	RotationEnd   = 0.65 * math.Pi
)

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RootRotationY is the detailed model's heading for progress p.
func RootRotationY(p float64) float64 {
	return Lerp(RotationStart, RotationEnd, p)
}

// VerticalBob is the idle float added to the root height at elapsed seconds t.
func VerticalBob(t float64) float64 {
	return math.Sin(t*0.8) * 0.015
}

// Float is a hovering idle motion: a slow sine lift plus a small wobble on
// every axis, scaled by Intensity and RotationIntensity.
type Float struct {
	Speed             float64
	Intensity         float64
	RotationIntensity float64
}

// PlaceholderFloat is the idle hover of the placeholder car.
var PlaceholderFloat = Float{Speed: 1.5, Intensity: 0.3, RotationIntensity: 0.1}

// Offset returns the height and rotation added at elapsed seconds t.
func (f Float) Offset(t float64) (lift float64, rot mgl32.Vec3) {
	phase := t / 4 * f.Speed
	lift = math.Sin(phase) / 10 * f.Intensity
	rot = mgl32.Vec3{
		float32(math.Cos(phase) / 8 * f.RotationIntensity),
		float32(math.Sin(phase) / 8 * f.RotationIntensity),
		float32(math.Sin(phase) / 20 * f.RotationIntensity),
	}
	return lift, rot
}

// Pose is the root transform computed for one tick.
type Pose struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"` // Euler XYZ, radians
}

// Preset selects how scroll progress maps onto the root transform.
type Preset int

const (
	// Detailed sweeps the heading from RotationStart to RotationEnd in place.
	Detailed Preset = iota
	// Placeholder drives the car away along -Z with a lateral S-curve while
	// it hovers.
	Placeholder
)

func (p Preset) String() string {
	switch p {
	case Detailed:
		return "detailed"
	case Placeholder:
		return "placeholder"
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

func ParsePreset(s string) (Preset, error) {
	switch s {
	case "detailed":
		return Detailed, nil
	case "placeholder":
		return Placeholder, nil
	}
	return 0, fmt.Errorf("unknown animation preset %q", s)
}

// Pose computes the root transform for scroll progress (already clamped to
// [0,1]) at elapsed seconds t.
func (p Preset) Pose(progress, t float64) Pose {
	switch p {
	case Placeholder:
		arc := math.Sin(progress * math.Pi)
		lift, wobble := PlaceholderFloat.Offset(t)
		return Pose{
			Position: mgl32.Vec3{float32(arc * 2), float32(lift), float32(Lerp(5, -15, progress))},
			Rotation: mgl32.Vec3{0, float32(Lerp(0, math.Pi/2, progress)), float32(arc * 0.1)}.Add(wobble),
		}
	default:
		return Pose{
			Position: mgl32.Vec3{0, float32(VerticalBob(t)), 0},
			Rotation: mgl32.Vec3{0, float32(RootRotationY(progress)), 0},
		}
	}
}

// Target is the animated side of a vehicle assembly.
type Target interface {
	Apply(Pose)
	SpinWheels(delta float64)
}

// Driver evaluates one animation tick per displayed frame.
type Driver struct {
	Preset Preset
	Step   float64
}

func NewDriver(preset Preset) *Driver {
	return &Driver{Preset: preset, Step: WheelSpinStep}
}

// Tick applies the pose for progress and elapsed to target and advances its
// wheels by one step.
func (d *Driver) Tick(target Target, progress, elapsed float64) Pose {
	pose := d.Preset.Pose(Clamp01(progress), elapsed)
	target.Apply(pose)
	target.SpinWheels(d.Step)
	return pose
}
