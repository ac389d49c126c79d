package animation

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollProgress(t *testing.T) {
	tests := []struct {
		name                      string
		scrollY, height, viewport float64
		want                      float64
	}{
		{"top", 0, 3000, 1000, 0},
		{"middle", 1000, 3000, 1000, 0.5},
		{"bottom", 2000, 3000, 1000, 1},
		{"negative overscroll", -120, 3000, 1000, 0},
		{"past bottom", 2600, 3000, 1000, 1},
		{"no scroll range", 0, 1000, 1000, 0},
		{"viewport taller than page", 50, 800, 1000, 0},
		{"nan", math.NaN(), 3000, 1000, 0},
		{"nan height", 10, math.NaN(), 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrollProgress(tt.scrollY, tt.height, tt.viewport))
		})
	}
}

func TestScrollTracker_SubscribeReadsAtMount(t *testing.T) {
	feed := NewScrollFeed()
	feed.Set(ScrollMetrics{ScrollY: 500, ScrollHeight: 3000, ViewportHeight: 1000})

	tr := NewScrollTracker()
	sub := tr.Subscribe(feed)
	defer sub.Close()

	assert.Equal(t, 0.25, tr.Progress())
}

func TestScrollTracker_FollowsUntilClosed(t *testing.T) {
	feed := NewScrollFeed()
	tr := NewScrollTracker()
	sub := tr.Subscribe(feed)
	assert.Equal(t, 1, feed.Listeners())

	feed.Set(ScrollMetrics{ScrollY: 1000, ScrollHeight: 3000, ViewportHeight: 1000})
	assert.Equal(t, 0.5, tr.Progress())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, feed.Listeners())

	feed.Set(ScrollMetrics{ScrollY: 2000, ScrollHeight: 3000, ViewportHeight: 1000})
	assert.Equal(t, 0.5, tr.Progress())
}

func TestScrollTracker_ConcurrentUpdates(t *testing.T) {
	feed := NewScrollFeed()
	tr := NewScrollTracker()
	sub := tr.Subscribe(feed)
	defer sub.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				feed.Set(ScrollMetrics{ScrollY: float64(i*j) * 10, ScrollHeight: 3000, ViewportHeight: 1000})
				p := tr.Progress()
				assert.True(t, p >= 0 && p <= 1)
			}
		}(i)
	}
	wg.Wait()
}
