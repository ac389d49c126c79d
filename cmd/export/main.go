package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aurex-showroom/animation"
	"aurex-showroom/internal/catalog"
	"aurex-showroom/scene"
	"aurex-showroom/showroom"
	"aurex-showroom/vehicle"
)

func main() {
	modelName := flag.String("model", vehicle.DefaultModel, "vehicle model ("+strings.Join(vehicle.Names(), ", ")+")")
	variant := flag.String("variant", catalog.Default().Name, "finish name")
	color := flag.String("color", "", "body color as hex, overrides -variant")
	progress := flag.Float64("progress", 0, "scroll progress to pose the scene at, 0..1")
	out := flag.String("out", "aurex", "output path without extension")
	glb := flag.Bool("glb", true, "write binary glTF")
	doc := flag.Bool("json", true, "write the JSON scene document")
	flag.Parse()

	if err := run(*modelName, *variant, *color, *progress, *out, *glb, *doc); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(modelName, variant, hex string, progress float64, out string, glb, doc bool) error {
	if !glb && !doc {
		return fmt.Errorf("nothing to write: both -glb and -json are off")
	}
	model, err := vehicle.Lookup(modelName)
	if err != nil {
		return err
	}
	color, err := catalog.ResolveColor(variant, hex, catalog.Default().Color)
	if err != nil {
		return err
	}

	a := vehicle.New(model, color)
	fmt.Printf("Built %s in %s: %d primitives, %d groups\n",
		model.Name(), color.Hex(), len(a.Primitives()), len(a.GroupNames()))

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	if glb {
		path := out + ".glb"
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := scene.ExportGLB(f, a.Root); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	if doc {
		a.Apply(model.Preset().Pose(animation.Clamp01(progress), 0))
		s := showroom.Compose(a)
		fmt.Printf("Composed %d visible primitives at progress %.2f, framed: %v\n",
			len(s.VisiblePrimitives()), animation.Clamp01(progress), s.Framed(a.Root))
		path := out + ".json"
		if err := scene.SaveDocument(s, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
