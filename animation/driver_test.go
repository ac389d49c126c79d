package animation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 2.0, Lerp(2, 10, 0))
	assert.Equal(t, 10.0, Lerp(2, 10, 1))
	assert.Equal(t, 6.0, Lerp(2, 10, 0.5))
}

func TestRootRotationY_EndpointsAndMonotonic(t *testing.T) {
	assert.InDelta(t, -0.1*math.Pi, RootRotationY(0), 1e-12)
	assert.InDelta(t, 0.65*math.Pi, RootRotationY(1), 1e-12)

	prev := RootRotationY(0)
	for i := 1; i <= 1000; i++ {
		cur := RootRotationY(float64(i) / 1000)
		require.Greater(t, cur, prev)
		prev = cur
	}
}

func TestVerticalBob(t *testing.T) {
	assert.Equal(t, 0.0, VerticalBob(0))
	for i := 0; i < 500; i++ {
		assert.LessOrEqual(t, math.Abs(VerticalBob(float64(i)*0.37)), 0.015)
	}
	assert.InDelta(t, 0.015, VerticalBob(math.Pi/2/0.8), 1e-12)
}

func TestDetailedPose(t *testing.T) {
	p := Detailed.Pose(0.5, 1)
	assert.InDelta(t, RootRotationY(0.5), float64(p.Rotation.Y()), 1e-6)
	assert.InDelta(t, VerticalBob(1), float64(p.Position.Y()), 1e-6)
	assert.Zero(t, p.Position.X())
	assert.Zero(t, p.Position.Z())
}

func TestPlaceholderPose(t *testing.T) {
	start := Placeholder.Pose(0, 0)
	assert.InDelta(t, 5, float64(start.Position.Z()), 1e-6)
	assert.InDelta(t, 0, float64(start.Position.X()), 1e-6)
	assert.InDelta(t, 0, float64(start.Rotation.Y()), 1e-6)

	mid := Placeholder.Pose(0.5, 0)
	assert.InDelta(t, -5, float64(mid.Position.Z()), 1e-6)
	assert.InDelta(t, 2, float64(mid.Position.X()), 1e-6)
	assert.InDelta(t, math.Pi/4, float64(mid.Rotation.Y()), 1e-6)
	assert.InDelta(t, 0.1, float64(mid.Rotation.Z()), 1e-6)

	end := Placeholder.Pose(1, 0)
	assert.InDelta(t, -15, float64(end.Position.Z()), 1e-6)
	assert.InDelta(t, math.Pi/2, float64(end.Rotation.Y()), 1e-6)
}

func TestPlaceholderHovers(t *testing.T) {
	lift, wobble := PlaceholderFloat.Offset(0)
	assert.Zero(t, lift)
	assert.InDelta(t, 0.0125, float64(wobble.X()), 1e-7)

	peak := 4 * (math.Pi / 2) / PlaceholderFloat.Speed
	lift, wobble = PlaceholderFloat.Offset(peak)
	assert.InDelta(t, 0.03, lift, 1e-9)
	assert.InDelta(t, 0.0125, float64(wobble.Y()), 1e-7)
	assert.InDelta(t, 0.005, float64(wobble.Z()), 1e-7)

	p := Placeholder.Pose(0, peak)
	assert.InDelta(t, 0.03, float64(p.Position.Y()), 1e-6)
	assert.NotEqual(t, float32(VerticalBob(peak)), p.Position.Y())
	assert.InDelta(t, 0.0125, float64(p.Rotation.Y()), 1e-6)
}

func TestParsePreset(t *testing.T) {
	for _, p := range []Preset{Detailed, Placeholder} {
		got, err := ParsePreset(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePreset("cinematic")
	assert.Error(t, err)
}

type recordingTarget struct {
	poses []Pose
	spin  float64
}

func (r *recordingTarget) Apply(p Pose)        { r.poses = append(r.poses, p) }
func (r *recordingTarget) SpinWheels(d float64) { r.spin += d }

func TestDriverTick(t *testing.T) {
	d := NewDriver(Detailed)
	target := &recordingTarget{}

	for i := 0; i < 10; i++ {
		d.Tick(target, 7, float64(i)) // out of range input is clamped
	}
	require.Len(t, target.poses, 10)
	assert.InDelta(t, RootRotationY(1), float64(target.poses[9].Rotation.Y()), 1e-6)
	assert.InDelta(t, 10*WheelSpinStep, target.spin, 1e-12)
}
