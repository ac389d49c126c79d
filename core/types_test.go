package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{1, 0, 0, 1}},
		{"#00F2FF", Color{0, float32(0xf2) / 255, 1, 1}},
		{"0x3b82f6", FromRGB24(0x3b82f6)},
		{"#333", FromRGB24(0x333333)},
		{"  #1a1a1a ", FromRGB24(0x1a1a1a)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#1234567", "#gggggg", "red"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#1a1a1a", "#c0c0c0", "#3b82f6", "#ef4444"} {
		c := MustParseHex(s)
		assert.Equal(t, s, c.Hex())
	}
}

func TestTransformMatrix_Identity(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.Matrix().ApproxEqual(mgl32.Ident4()))
}

func TestTransformMatrix_TranslateRotateScale(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.Vec3{0, math.Pi / 2, 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	// +X scaled to 2 then rotated about Y lands on -Z.
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5), "got %v", p)
}

func TestEulerToQuat_XYZOrder(t *testing.T) {
	e := mgl32.Vec3{0.3, -0.7, 1.1}
	q := EulerToQuat(e)

	m := mgl32.HomogRotate3DX(e.X()).
		Mul4(mgl32.HomogRotate3DY(e.Y())).
		Mul4(mgl32.HomogRotate3DZ(e.Z()))
	assert.True(t, q.Mat4().ApproxEqualThreshold(m, 1e-5))
}
