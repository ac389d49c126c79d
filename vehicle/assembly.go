package vehicle

import (
	"aurex-showroom/animation"
	"aurex-showroom/materials"
	"aurex-showroom/scene"
)

// Assembly is one fully built vehicle tree. It is rebuilt wholesale when the
// palette changes and never patched in place.
type Assembly struct {
	Model   string
	Root    *scene.Node
	Palette *materials.Palette
	Wheels  []*Wheel

	groups map[string]*scene.Node
}

func newAssembly(model, rootName string, p *materials.Palette) *Assembly {
	return &Assembly{
		Model:   model,
		Root:    scene.NewNode(rootName),
		Palette: p,
		groups:  make(map[string]*scene.Node),
	}
}

// addGroup attaches g under the root at offset and registers it by name.
func (a *Assembly) addGroup(g *scene.Node, x, y, z float32) {
	g.At(x, y, z)
	a.Root.AddChild(g)
	a.groups[g.Name] = g
}

func (a *Assembly) addWheel(w *Wheel) {
	a.Root.AddChild(w.Root)
	a.groups[w.Root.Name] = w.Root
	a.Wheels = append(a.Wheels, w)
}

// Group returns a named sub-group, or nil.
func (a *Assembly) Group(name string) *scene.Node {
	return a.groups[name]
}

// GroupNames lists sub-groups in root child order.
func (a *Assembly) GroupNames() []string {
	names := make([]string, 0, len(a.Root.Children))
	for _, c := range a.Root.Children {
		if _, ok := a.groups[c.Name]; ok {
			names = append(names, c.Name)
		}
	}
	return names
}

// Apply sets the root transform.
func (a *Assembly) Apply(p animation.Pose) {
	a.Root.SetPosition(p.Position)
	a.Root.SetRotation(p.Rotation)
}

// SpinWheels advances every wheel by delta radians.
func (a *Assembly) SpinWheels(delta float64) {
	for _, w := range a.Wheels {
		w.Advance(delta)
	}
}

// WheelSpins returns each wheel's current angle, in wheel order.
func (a *Assembly) WheelSpins() []float64 {
	out := make([]float64, len(a.Wheels))
	for i, w := range a.Wheels {
		out[i] = w.Spin()
	}
	return out
}

// CopySpinFrom carries wheel angles and the root pose over from prev so a
// rebuilt assembly continues where the old one stopped. Wheels are matched
// by name.
func (a *Assembly) CopySpinFrom(prev *Assembly) {
	if prev == nil {
		return
	}
	spins := make(map[string]float64, len(prev.Wheels))
	for _, w := range prev.Wheels {
		spins[w.Root.Name] = w.Spin()
	}
	for _, w := range a.Wheels {
		if s, ok := spins[w.Root.Name]; ok {
			w.setSpin(s)
		}
	}
	a.Root.SetPosition(prev.Root.Transform.Position)
	a.Root.SetRotation(prev.Root.Transform.Rotation)
}

// Primitives returns every primitive in the assembly.
func (a *Assembly) Primitives() []*scene.Node {
	return a.Root.Primitives()
}

var _ animation.Target = (*Assembly)(nil)
