package vehicle

import (
	"fmt"
	"sort"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/materials"
)

// Model is one interchangeable vehicle presentation: it owns its palette
// recipe, its primitive layout and the animation preset that drives it.
type Model interface {
	Name() string
	Palette(body core.Color) *materials.Palette
	Build(p *materials.Palette) *Assembly
	Preset() animation.Preset
}

// DefaultModel is the canonical presentation.
const DefaultModel = "aurex"

var models = map[string]Model{
	"aurex":       Aurex{},
	"placeholder": Placeholder{},
}

// Lookup resolves a model by name.
func Lookup(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown vehicle model %q", name)
	}
	return m, nil
}

// Names lists the registered models.
func Names() []string {
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds model m in the given body color.
func New(m Model, body core.Color) *Assembly {
	return m.Build(m.Palette(body))
}
