package showroom

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// FrameSink receives every frame the loop produces. Returning an error stops
// the loop.
type FrameSink func(Frame) error

// Loop drives a Stage at a fixed frame rate, one tick per frame.
type Loop struct {
	Stage  *Stage
	Logger zerolog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

func NewLoop(stage *Stage, logger zerolog.Logger) *Loop {
	return &Loop{Stage: stage, Logger: logger, now: time.Now}
}

// Run ticks until ctx is cancelled or sink fails. A cancelled context is a
// clean stop and returns nil.
func (l *Loop) Run(ctx context.Context, fps int, sink FrameSink) error {
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %d", fps)
	}
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := l.now()
	var frames uint64
	l.Logger.Debug().Int("fps", fps).Str("model", l.Stage.Model().Name()).Msg("frame loop started")

	for {
		select {
		case <-ctx.Done():
			l.Logger.Debug().Uint64("frames", frames).Msg("frame loop stopped")
			return nil
		case <-ticker.C:
			frame := l.Stage.Tick(l.now().Sub(start).Seconds())
			frames++
			if err := sink(frame); err != nil {
				return fmt.Errorf("frame %d: %w", frames, err)
			}
		}
	}
}
