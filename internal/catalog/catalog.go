// Package catalog lists the body finishes a customer can pick.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"aurex-showroom/core"
)

//go:embed finishes.toml
var finishesTOML []byte

// Finish is a named body color.
type Finish struct {
	Name  string     `toml:"name" json:"name"`
	Hex   string     `toml:"color" json:"color"`
	Color core.Color `toml:"-" json:"-"`
}

type file struct {
	Finish []Finish `toml:"finish"`
}

var (
	loadOnce sync.Once
	finishes []Finish
	byName   map[string]Finish
)

// Parse decodes a finish list and resolves every color.
func Parse(blob []byte) ([]Finish, error) {
	var f file
	if err := toml.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("decode finishes: %w", err)
	}
	if len(f.Finish) == 0 {
		return nil, fmt.Errorf("decode finishes: no finish entries")
	}
	seen := make(map[string]bool, len(f.Finish))
	for i := range f.Finish {
		fin := &f.Finish[i]
		if fin.Name == "" {
			return nil, fmt.Errorf("finish %d: missing name", i)
		}
		if seen[fin.Name] {
			return nil, fmt.Errorf("finish %q: duplicate name", fin.Name)
		}
		seen[fin.Name] = true
		c, err := core.ParseHex(fin.Hex)
		if err != nil {
			return nil, fmt.Errorf("finish %q: %w", fin.Name, err)
		}
		fin.Color = c
	}
	return f.Finish, nil
}

func load() {
	loadOnce.Do(func() {
		list, err := Parse(finishesTOML)
		if err != nil {
			panic(err)
		}
		finishes = list
		byName = make(map[string]Finish, len(list))
		for _, f := range list {
			byName[f.Name] = f
		}
	})
}

// Finishes returns the catalog in display order.
func Finishes() []Finish {
	load()
	out := make([]Finish, len(finishes))
	copy(out, finishes)
	return out
}

// Names returns the finish names in display order.
func Names() []string {
	load()
	out := make([]string, len(finishes))
	for i, f := range finishes {
		out[i] = f.Name
	}
	return out
}

func Lookup(name string) (Finish, bool) {
	load()
	f, ok := byName[name]
	return f, ok
}

// IsVariant reports whether name is an orderable finish. Matching is exact.
func IsVariant(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Default is the first finish in the catalog.
func Default() Finish {
	load()
	return finishes[0]
}

// ResolveColor picks a body color from request parameters. An explicit hex
// color wins over a variant name; with neither, def is returned.
func ResolveColor(variant, hex string, def core.Color) (core.Color, error) {
	if hex != "" {
		return core.ParseHex(hex)
	}
	if variant != "" {
		f, ok := Lookup(variant)
		if !ok {
			return core.Color{}, fmt.Errorf("unknown variant %q", variant)
		}
		return f.Color, nil
	}
	return def, nil
}
