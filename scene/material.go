package scene

import "aurex-showroom/core"

// Material describes surface appearance for the physically-based shading
// model of the browser renderer (metalness/roughness workflow with optional
// clear-coat and transmission). A Material is built once and then shared by
// pointer between every primitive that uses it; it is never mutated afterwards.
type Material struct {
	Name  string // role handle, unique within a palette
	Color core.Color

	Metalness float32 // 0 = dielectric, 1 = fully metallic
	Roughness float32 // 0 = mirror, 1 = fully rough

	Clearcoat          float32
	ClearcoatRoughness float32

	Transmission float32 // glass-like light transmission
	Thickness    float32
	Opacity      float32 // 1 = opaque
	Transparent  bool
	DoubleSided  bool

	Emissive          core.Color
	EmissiveIntensity float32

	EnvMapIntensity float32
	ToneMapped      bool
}

// DefaultMaterial returns a plain white dielectric.
func DefaultMaterial() *Material {
	return NewPBRMaterial("Default", core.ColorWhite, 0, 0.5)
}

// NewPBRMaterial creates an opaque material with the given base color, metalness and roughness.
func NewPBRMaterial(name string, color core.Color, metalness, roughness float32) *Material {
	return &Material{
		Name:            name,
		Color:           color,
		Metalness:       metalness,
		Roughness:       roughness,
		Opacity:         1,
		Emissive:        core.ColorBlack,
		EnvMapIntensity: 1,
		ToneMapped:      true,
	}
}

// IsPhysical reports whether the material needs the extended physical model
// (clear-coat or transmission) rather than the standard one.
func (m *Material) IsPhysical() bool {
	return m.Clearcoat > 0 || m.Transmission > 0
}

// IsEmissive reports whether the material emits light of its own.
func (m *Material) IsEmissive() bool {
	return m.EmissiveIntensity > 0 && (m.Emissive.R > 0 || m.Emissive.G > 0 || m.Emissive.B > 0)
}
