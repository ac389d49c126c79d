package vehicle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/materials"
	"aurex-showroom/scene"
)

// Aurex is the detailed X1 model.
type Aurex struct{}

func (Aurex) Name() string { return "aurex" }

func (Aurex) Palette(body core.Color) *materials.Palette {
	return materials.NewPalette(body)
}

func (Aurex) Preset() animation.Preset { return animation.Detailed }

// ── Layout ────────────────────────────────────────────────────────────────────

// GroupOffsets is the local offset of each panel group under the vehicle root.
var GroupOffsets = map[string]mgl32.Vec3{
	"Body":         {0, 0, 0},
	"FrontFascia":  {0, 0, 2.2},
	"Headlights":   {0, 0.66, 2.2},
	"Taillights":   {0, 0.7, -2.2},
	"RearDetails":  {0, 0, -2.2},
	"GlassPanels":  {0, 0, 0},
	"SideMirrors":  {0, 0.98, 0.55},
	"Interior":     {0, 0.6, 0},
	"PanelDetails": {0, 0, 0},
}

var sides = [2]Side{Left, Right}

func sideSuffix(s Side) string {
	if s == Left {
		return "L"
	}
	return "R"
}

func box(name string, w, h, d float32, m *scene.Material) *scene.Node {
	return scene.NewPrimitive(name, scene.Box(w, h, d), m)
}

func cylinder(name string, r, h float32, segments int, m *scene.Material) *scene.Node {
	return scene.NewPrimitive(name, scene.Cylinder(r, r, h, segments), m)
}

// Build assembles the full vehicle. Geometry depends only on the literal
// tables below; the palette decides appearance.
func (Aurex) Build(p *materials.Palette) *Assembly {
	a := newAssembly("aurex", "AurexX1", p)

	for _, g := range []*scene.Node{
		BuildBody(p),
		BuildFrontFascia(p),
		BuildHeadlights(p),
		BuildTaillights(p),
		BuildRearDetails(p),
	} {
		o := GroupOffsets[g.Name]
		a.addGroup(g, o[0], o[1], o[2])
	}

	a.addWheel(NewWheel("WheelFL", StanceFL, Left, p))
	a.addWheel(NewWheel("WheelFR", StanceFR, Right, p))
	a.addWheel(NewWheel("WheelRL", StanceRL, Left, p))
	a.addWheel(NewWheel("WheelRR", StanceRR, Right, p))

	for _, g := range []*scene.Node{
		BuildGlassPanels(p),
		BuildSideMirrors(p),
		BuildInterior(p),
		BuildPanelDetails(p),
	} {
		o := GroupOffsets[g.Name]
		a.addGroup(g, o[0], o[1], o[2])
	}
	return a
}

// ── Groups ────────────────────────────────────────────────────────────────────

func BuildBody(p *materials.Palette) *scene.Node {
	body := p.Get(materials.Body)
	carbon := p.Get(materials.CarbonFiber)
	seam := p.Get(materials.GlossBlack)

	g := scene.NewNode("Body")
	g.Add(
		box("Chassis", 1.8, 0.42, 4.4, body).At(0, 0.52, 0),
		box("Beltline", 1.76, 0.12, 3.6, body).At(0, 0.78, -0.1),
		box("Hood", 1.7, 0.06, 1.3, body).At(0, 0.76, 1.45).Rotated(0.08, 0, 0),
		box("Roof", 1.4, 0.05, 1.6, body).At(0, 1.22, -0.25),
		box("TrunkDeck", 1.66, 0.06, 0.8, body).At(0, 0.8, -1.75).Rotated(-0.05, 0, 0),
		box("Underbody", 1.7, 0.05, 4.2, carbon).At(0, 0.29, 0),
	)

	for _, s := range sides {
		x := float32(s)
		sfx := sideSuffix(s)
		g.Add(
			box("FenderFlareF"+sfx, 0.08, 0.22, 0.95, body).At(x*0.9, 0.55, 1.45),
			box("FenderFlareR"+sfx, 0.08, 0.22, 0.95, body).At(x*0.9, 0.55, -1.4),
			box("SideSkirt"+sfx, 0.06, 0.1, 2.2, carbon).At(x*0.91, 0.34, 0.02),
		)
		for i := 0; i < 2; i++ {
			z := 0.55 - float32(i)*1.1
			g.AddChild(box(fmt.Sprintf("DoorSeam%s%d", sfx, i), 0.004, 0.4, 0.006, seam).At(x*0.902, 0.6, z))
		}
		for i := 0; i < 3; i++ {
			y := 0.62 + float32(i)*0.05
			g.AddChild(box(fmt.Sprintf("FenderVent%s%d", sfx, i), 0.004, 0.02, 0.28, seam).At(x*0.902, y, 1.0))
		}
	}
	return g
}

func BuildFrontFascia(p *materials.Palette) *scene.Node {
	g := scene.NewNode("FrontFascia")
	g.Add(
		box("FrontBumper", 1.76, 0.28, 0.12, p.Get(materials.Body)).At(0, 0.42, 0),
		box("Splitter", 1.7, 0.03, 0.18, p.Get(materials.CarbonFiber)).At(0, 0.26, 0.02),
		box("GrilleFrame", 0.9, 0.3, 0.04, p.Get(materials.GlossBlack)).At(0, 0.44, 0.06),
	)
	for i := 0; i <= 3; i++ {
		y := 0.32 + float32(i)*0.08
		g.AddChild(box(fmt.Sprintf("GrilleBar%d", i), 0.86, 0.015, 0.02, p.Get(materials.Chrome)).At(0, y, 0.08))
	}
	for _, s := range sides {
		g.AddChild(box("AirIntake"+sideSuffix(s), 0.28, 0.12, 0.04, p.Get(materials.GlossBlack)).At(float32(s)*0.66, 0.34, 0.06))
	}
	return g
}

func BuildHeadlights(p *materials.Palette) *scene.Node {
	lamp := p.Get(materials.Headlight)

	g := scene.NewNode("Headlights")
	g.AddChild(box("DRLBar", 0.6, 0.015, 0.03, lamp).At(0, 0.06, 0.04))
	for _, s := range sides {
		x := float32(s)
		sfx := sideSuffix(s)
		g.Add(
			box("LEDStrip"+sfx, 0.5, 0.03, 0.04, lamp).At(x*0.55, 0.04, 0.02),
			box("ProjectorHousing"+sfx, 0.42, 0.12, 0.1, p.Get(materials.GlossBlack)).At(x*0.55, -0.04, -0.02),
			cylinder("ProjectorLens"+sfx, 0.035, 0.04, 24, lamp).At(x*0.62, -0.04, 0.04).Rotated(math.Pi/2, 0, 0),
		)
	}
	return g
}

func BuildTaillights(p *materials.Palette) *scene.Node {
	lamp := p.Get(materials.Taillight)

	g := scene.NewNode("Taillights")
	g.Add(
		box("TaillightHousing", 1.7, 0.1, 0.03, p.Get(materials.GlossBlack)).At(0, 0, 0.02),
		box("TaillightBar", 1.6, 0.04, 0.04, lamp),
	)
	for _, s := range sides {
		g.AddChild(box("TaillightCap"+sideSuffix(s), 0.12, 0.1, 0.05, lamp).At(float32(s)*0.82, -0.02, 0.01))
	}
	return g
}

func BuildRearDetails(p *materials.Palette) *scene.Node {
	carbon := p.Get(materials.CarbonFiber)

	g := scene.NewNode("RearDetails")
	g.Add(
		box("RearBumper", 1.76, 0.28, 0.12, p.Get(materials.Body)).At(0, 0.42, 0),
		box("Diffuser", 1.3, 0.1, 0.25, carbon).At(0, 0.27, 0.05),
	)
	for i := 0; i <= 4; i++ {
		x := -0.48 + float32(i)*0.24
		g.AddChild(box(fmt.Sprintf("DiffuserFin%d", i), 0.02, 0.12, 0.24, carbon).At(x, 0.27, 0.02))
	}
	for i := 0; i <= 1; i++ {
		x := -0.55 + float32(i)*1.1
		g.AddChild(cylinder(fmt.Sprintf("Tip%d", i), 0.05, 0.12, 24, p.Get(materials.Chrome)).At(x, 0.3, -0.04).Rotated(math.Pi/2, 0, 0))
	}
	g.Add(
		scene.NewPrimitive("Plate", scene.Plane(0.52, 0.12), p.Get(materials.Aluminum)).At(0, 0.5, -0.065).Rotated(0, math.Pi, 0),
		box("Spoiler", 1.5, 0.03, 0.22, carbon).At(0, 0.9, 0.15),
	)
	return g
}

func BuildGlassPanels(p *materials.Palette) *scene.Node {
	glass := p.Get(materials.Glass)

	g := scene.NewNode("GlassPanels")
	g.Add(
		box("Windshield", 1.36, 0.9, 0.02, glass).At(0, 1.02, 0.78).Rotated(-0.6, 0, 0),
		box("RearWindow", 1.3, 0.7, 0.02, glass).At(0, 1.05, -1.2).Rotated(0.9, 0, 0),
		box("PanoramicRoof", 1.2, 0.02, 1.3, glass).At(0, 1.25, -0.25),
	)
	for _, s := range sides {
		g.AddChild(box("SideWindow"+sideSuffix(s), 0.02, 0.3, 1.5, glass).At(float32(s)*0.74, 1.04, -0.2).Rotated(0, 0, float32(s)*0.15))
	}
	return g
}

func BuildSideMirrors(p *materials.Palette) *scene.Node {
	g := scene.NewNode("SideMirrors")
	for _, s := range sides {
		x := float32(s)
		sfx := sideSuffix(s)
		g.Add(
			box("MirrorArm"+sfx, 0.12, 0.03, 0.04, p.Get(materials.CarbonFiber)).At(x*0.86, 0, 0),
			box("MirrorHousing"+sfx, 0.1, 0.08, 0.16, p.Get(materials.Body)).At(x*0.95, 0.02, -0.02).Rotated(0, x*0.1, 0),
			scene.NewPrimitive("MirrorFace"+sfx, scene.Plane(0.07, 0.06), p.Get(materials.Chrome)).At(x*0.95, 0.02, -0.101).Rotated(0, math.Pi, 0),
		)
	}
	return g
}

func BuildInterior(p *materials.Palette) *scene.Node {
	leather := p.Get(materials.Leather)
	dash := p.Get(materials.Dashboard)

	g := scene.NewNode("Interior")
	g.Add(
		box("Dashboard", 1.4, 0.16, 0.3, dash).At(0, 0.28, 0.55),
		box("Console", 0.22, 0.2, 1.0, dash).At(0, 0.08, -0.05),
	)
	for _, s := range sides {
		x := float32(s)
		sfx := sideSuffix(s)
		g.Add(
			box("SeatCushion"+sfx, 0.48, 0.1, 0.5, leather).At(x*0.36, 0.06, -0.2),
			box("SeatBack"+sfx, 0.48, 0.55, 0.1, leather).At(x*0.36, 0.32, -0.48).Rotated(-0.2, 0, 0),
		)
	}
	g.Add(
		scene.NewPrimitive("SteeringWheel", scene.Torus(0.16, 0.015, 8, 32), leather).At(0.36, 0.3, 0.36).Rotated(-0.3, 0, 0),
		scene.NewPrimitive("Display", scene.Plane(0.36, 0.2), p.Get(materials.GlossBlack)).At(0, 0.42, 0.5).Rotated(-0.25, 0, 0),
	)
	return g
}

func BuildPanelDetails(p *materials.Palette) *scene.Node {
	g := scene.NewNode("PanelDetails")
	for _, s := range sides {
		x := float32(s)
		sfx := sideSuffix(s)
		g.Add(
			box("BeltlineTrim"+sfx, 0.01, 0.015, 3.0, p.Get(materials.Chrome)).At(x*0.885, 0.84, -0.1),
			box("HandleF"+sfx, 0.015, 0.025, 0.14, p.Get(materials.Aluminum)).At(x*0.905, 0.72, 0.2),
			box("HandleR"+sfx, 0.015, 0.025, 0.14, p.Get(materials.Aluminum)).At(x*0.905, 0.72, -0.85),
		)
	}
	g.Add(
		box("ChargePort", 0.01, 0.08, 0.12, p.Get(materials.GlossBlack)).At(0.905, 0.74, -1.6),
		cylinder("Badge", 0.05, 0.01, 24, p.Get(materials.Chrome)).At(0, 0.6, 2.3).Rotated(math.Pi/2, 0, 0),
	)
	return g
}
