package showroom

import (
	"fmt"
	"io"
	"sync"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/scene"
	"aurex-showroom/vehicle"
)

// Frame is the outcome of one tick, in the form streamed to viewers.
type Frame struct {
	Version    uint64         `json:"version"`
	Progress   float64        `json:"progress"`
	Elapsed    float64        `json:"elapsed"`
	Pose       animation.Pose `json:"pose"`
	WheelSpins []float64      `json:"wheelSpins"`
	// Framed is true while the whole vehicle is inside the camera view.
	Framed     bool           `json:"framed"`
}

// Stage owns the live vehicle for one viewer. Ticks and color changes may
// arrive on different goroutines; a rebuild is done outside the lock and
// swapped in whole, so a tick never sees a half-built tree.
type Stage struct {
	model   vehicle.Model
	driver  *animation.Driver
	tracker *animation.ScrollTracker
	sub     *animation.Subscription

	mu       sync.Mutex
	color    core.Color
	assembly *vehicle.Assembly
	scene    *scene.Scene
	version  uint64
}

// NewStage builds model in color and subscribes to scroll.
func NewStage(model vehicle.Model, color core.Color, scroll animation.ScrollSource) *Stage {
	a := vehicle.New(model, color)
	s := &Stage{
		model:    model,
		driver:   animation.NewDriver(model.Preset()),
		tracker:  animation.NewScrollTracker(),
		color:    color,
		assembly: a,
		scene:    Compose(a),
		version:  1,
	}
	s.sub = s.tracker.Subscribe(scroll)
	return s
}

// Close releases the scroll subscription.
func (s *Stage) Close() {
	s.sub.Close()
}

func (s *Stage) Model() vehicle.Model {
	return s.model
}

func (s *Stage) Progress() float64 {
	return s.tracker.Progress()
}

func (s *Stage) Color() core.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// Version increments on every rebuild.
func (s *Stage) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// SetColor rebuilds the vehicle in a new body color. Wheel spin and the root
// pose carry over from the replaced assembly.
func (s *Stage) SetColor(color core.Color) uint64 {
	next := vehicle.New(s.model, color)

	s.mu.Lock()
	defer s.mu.Unlock()
	next.CopySpinFrom(s.assembly)
	s.color = color
	s.assembly = next
	s.scene = Compose(next)
	s.version++
	return s.version
}

// Tick runs one animation step at elapsed seconds.
func (s *Stage) Tick(elapsed float64) Frame {
	progress := s.tracker.Progress()

	s.mu.Lock()
	defer s.mu.Unlock()
	pose := s.driver.Tick(s.assembly, progress, elapsed)
	return Frame{
		Version:    s.version,
		Progress:   progress,
		Elapsed:    elapsed,
		Pose:       pose,
		WheelSpins: s.assembly.WheelSpins(),
		Framed:     s.scene.Framed(s.assembly.Root),
	}
}

// Snapshot returns the composed scene as a document, with the version it
// belongs to.
func (s *Stage) Snapshot() (*scene.Document, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scene.NewDocument(s.scene), s.version
}

// WriteGLB exports the current vehicle tree as binary glTF.
func (s *Stage) WriteGLB(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := scene.ExportGLB(w, s.assembly.Root); err != nil {
		return fmt.Errorf("stage %s: %w", s.model.Name(), err)
	}
	return nil
}
