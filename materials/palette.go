package materials

import (
	"fmt"

	"aurex-showroom/core"
	"aurex-showroom/scene"
)

// Role names one surface in a palette.
type Role string

const (
	Body         Role = "body"
	CarbonFiber  Role = "carbonFiber"
	GlossBlack   Role = "glossBlack"
	Chrome       Role = "chrome"
	Glass        Role = "glass"
	Rubber       Role = "rubber"
	BrakeCaliper Role = "brakeCaliper"
	BrakeDisc    Role = "brakeDisc"
	Leather      Role = "leather"
	Dashboard    Role = "dashboard"
	Aluminum     Role = "aluminum"
	Headlight    Role = "headlight"
	Taillight    Role = "taillight"

	// placeholder car
	Cockpit Role = "cockpit"
	Tire    Role = "tire"
	Hubcap  Role = "hubcap"
)

// Palette maps roles to materials built for one body color. Each role has
// exactly one instance, shared by every primitive that uses it.
type Palette struct {
	BodyColor core.Color
	roles     []Role
	byRole    map[Role]*scene.Material
}

func newPalette(body core.Color) *Palette {
	return &Palette{BodyColor: body, byRole: make(map[Role]*scene.Material)}
}

func (p *Palette) set(role Role, m *scene.Material) {
	m.Name = string(role)
	p.roles = append(p.roles, role)
	p.byRole[role] = m
}

// NewPalette builds the detailed vehicle palette. Only the body role depends
// on the input color.
func NewPalette(body core.Color) *Palette {
	p := newPalette(body)
	p.set(Body, BodyMaterial(body))
	p.set(CarbonFiber, CarbonFiberMaterial())
	p.set(GlossBlack, GlossBlackMaterial())
	p.set(Chrome, ChromeMaterial())
	p.set(Glass, GlassMaterial())
	p.set(Rubber, RubberMaterial())
	p.set(BrakeCaliper, BrakeCaliperMaterial())
	p.set(BrakeDisc, BrakeDiscMaterial())
	p.set(Leather, LeatherMaterial())
	p.set(Dashboard, DashboardMaterial())
	p.set(Aluminum, AluminumMaterial())
	p.set(Headlight, HeadlightMaterial())
	p.set(Taillight, TaillightMaterial())
	return p
}

// NewPlaceholderPalette builds the materials of the simple box car.
func NewPlaceholderPalette(body core.Color) *Palette {
	p := newPalette(body)

	b := scene.NewPBRMaterial("", body, 0.9, 0.1)
	b.EnvMapIntensity = 2
	p.set(Body, b)

	cockpit := scene.NewPBRMaterial("", core.ColorBlack, 1, 0.05)
	cockpit.Transmission = 0.7
	cockpit.Thickness = 1.5
	p.set(Cockpit, cockpit)

	p.set(Tire, scene.NewPBRMaterial("", core.MustParseHex("#050505"), 0.8, 0.9))

	hubcap := scene.NewPBRMaterial("", core.MustParseHex("#222"), 0, 1)
	hubcap.Emissive = core.MustParseHex("#333")
	hubcap.EmissiveIntensity = 0.5
	p.set(Hubcap, hubcap)

	p.set(Headlight, HeadlightMaterial())
	p.set(Taillight, TaillightMaterial())
	return p
}

// Get returns the material for role. It panics on a role the palette does
// not define, which is a construction bug rather than a runtime condition.
func (p *Palette) Get(role Role) *scene.Material {
	m, ok := p.byRole[role]
	if !ok {
		panic(fmt.Sprintf("materials: palette has no %q role", role))
	}
	return m
}

// Lookup returns the material for role and whether it exists.
func (p *Palette) Lookup(role Role) (*scene.Material, bool) {
	m, ok := p.byRole[role]
	return m, ok
}

// Roles returns the palette roles in construction order.
func (p *Palette) Roles() []Role {
	out := make([]Role, len(p.roles))
	copy(out, p.roles)
	return out
}

// Equal reports whether both palettes hold the same roles with identical
// parameters. Instances are not compared.
func (p *Palette) Equal(o *Palette) bool {
	if len(p.roles) != len(o.roles) {
		return false
	}
	for i, role := range p.roles {
		if o.roles[i] != role {
			return false
		}
		if *p.byRole[role] != *o.byRole[role] {
			return false
		}
	}
	return true
}

// --- Role materials ---

// BodyMaterial is the clear-coated paint in the configured color.
func BodyMaterial(color core.Color) *scene.Material {
	m := scene.NewPBRMaterial("", color, 0.95, 0.12)
	m.Clearcoat = 1.0
	m.ClearcoatRoughness = 0.03
	return m
}

func CarbonFiberMaterial() *scene.Material {
	m := scene.NewPBRMaterial("", core.MustParseHex("#1a1a1a"), 0.3, 0.45)
	m.Clearcoat = 0.8
	m.ClearcoatRoughness = 0.1
	return m
}

func GlossBlackMaterial() *scene.Material {
	m := scene.NewPBRMaterial("", core.MustParseHex("#050505"), 0.85, 0.05)
	m.Clearcoat = 1.0
	return m
}

func ChromeMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#ffffff"), 1.0, 0.05)
}

// GlassMaterial is the tinted transmissive glazing; visible from both sides.
func GlassMaterial() *scene.Material {
	m := scene.NewPBRMaterial("", core.MustParseHex("#111820"), 0.1, 0.0)
	m.Transmission = 0.85
	m.Thickness = 0.1
	m.Opacity = 0.35
	m.Transparent = true
	m.DoubleSided = true
	return m
}

func RubberMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#0d0d0d"), 0.0, 0.92)
}

func BrakeCaliperMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#cc1111"), 0.7, 0.25)
}

func BrakeDiscMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#4a4a4a"), 0.9, 0.35)
}

func LeatherMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#1c1410"), 0.0, 0.7)
}

func DashboardMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#151515"), 0.3, 0.4)
}

func AluminumMaterial() *scene.Material {
	return scene.NewPBRMaterial("", core.MustParseHex("#b4b8bc"), 0.95, 0.2)
}

// HeadlightMaterial glows cyan and bypasses tone mapping so it blooms.
func HeadlightMaterial() *scene.Material {
	c := core.MustParseHex("#00f2ff")
	m := scene.NewPBRMaterial("", c, 0, 1)
	m.Emissive = c
	m.EmissiveIntensity = 10
	m.ToneMapped = false
	return m
}

func TaillightMaterial() *scene.Material {
	c := core.MustParseHex("#ff0000")
	m := scene.NewPBRMaterial("", c, 0, 1)
	m.Emissive = c
	m.EmissiveIntensity = 8
	m.ToneMapped = false
	return m
}
