package animation

import (
	"math"
	"sync"
	"sync/atomic"
)

// ScrollMetrics is one sample of the page scroll state.
type ScrollMetrics struct {
	ScrollY        float64 `json:"scrollY"`
	ScrollHeight   float64 `json:"scrollHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// Progress returns the clamped scroll fraction for m.
func (m ScrollMetrics) Progress() float64 {
	return ScrollProgress(m.ScrollY, m.ScrollHeight, m.ViewportHeight)
}

// ScrollProgress maps raw scroll values to [0,1]. A page that cannot scroll
// reports 0.
func ScrollProgress(scrollY, scrollHeight, viewportHeight float64) float64 {
	denom := scrollHeight - viewportHeight
	if !(denom > 0) {
		return 0
	}
	return Clamp01(scrollY / denom)
}

func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ScrollSource publishes scroll state. OnScroll registers fn to run after
// every change and returns a function that unregisters it.
type ScrollSource interface {
	Metrics() ScrollMetrics
	OnScroll(fn func(ScrollMetrics)) (cancel func())
}

// ScrollTracker holds the latest clamped progress of one subscribed source.
// Progress may be read from any goroutine.
type ScrollTracker struct {
	progress atomic.Uint64
}

func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{}
}

func (t *ScrollTracker) Progress() float64 {
	return math.Float64frombits(t.progress.Load())
}

// Update records a new sample.
func (t *ScrollTracker) Update(m ScrollMetrics) {
	t.progress.Store(math.Float64bits(m.Progress()))
}

// Subscription is an active tracker registration. Close releases it; later
// scroll events no longer reach the tracker.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Subscribe samples source once immediately and then on every scroll event
// until the returned Subscription is closed.
func (t *ScrollTracker) Subscribe(source ScrollSource) *Subscription {
	t.Update(source.Metrics())
	return &Subscription{cancel: source.OnScroll(t.Update)}
}

// ScrollFeed is a ScrollSource fed by Set, used where scroll samples arrive
// over the network.
type ScrollFeed struct {
	mu        sync.Mutex
	current   ScrollMetrics
	nextID    int
	listeners map[int]func(ScrollMetrics)
}

func NewScrollFeed() *ScrollFeed {
	return &ScrollFeed{listeners: make(map[int]func(ScrollMetrics))}
}

func (f *ScrollFeed) Metrics() ScrollMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *ScrollFeed) OnScroll(fn func(ScrollMetrics)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// Set stores m and notifies every listener.
func (f *ScrollFeed) Set(m ScrollMetrics) {
	f.mu.Lock()
	f.current = m
	fns := make([]func(ScrollMetrics), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
}

// Listeners reports how many subscriptions are active.
func (f *ScrollFeed) Listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}
