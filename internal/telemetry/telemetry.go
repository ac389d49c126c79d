package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "aurex-showroom"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the service counters. Without an installed SDK the global
// meter is a no-op.
type Metrics struct {
	preordersCreated  metric.Int64Counter
	preordersRejected metric.Int64Counter
	streamSessions    metric.Int64UpDownCounter
	glbCache          metric.Int64Counter
}

// New registers the counters on the global meter.
func New() (*Metrics, error) {
	m := meter()
	var err error
	out := &Metrics{}

	out.preordersCreated, err = m.Int64Counter("aurex.preorders.created",
		metric.WithDescription("Pre-orders stored"))
	if err != nil {
		return nil, err
	}
	out.preordersRejected, err = m.Int64Counter("aurex.preorders.rejected",
		metric.WithDescription("Pre-orders rejected by validation or storage"))
	if err != nil {
		return nil, err
	}
	out.streamSessions, err = m.Int64UpDownCounter("aurex.stream.sessions",
		metric.WithDescription("Open showroom stream sessions"))
	if err != nil {
		return nil, err
	}
	out.glbCache, err = m.Int64Counter("aurex.glbcache.lookups",
		metric.WithDescription("GLB cache lookups by result"))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PreorderCreated counts one stored pre-order for variant.
func (m *Metrics) PreorderCreated(ctx context.Context, variant string) {
	if m == nil {
		return
	}
	m.preordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("variant", variant)))
}

// PreorderRejected counts one failed submission; reason is "validation" or
// "storage".
func (m *Metrics) PreorderRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.preordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// StreamOpened and StreamClosed track live stream sessions.
func (m *Metrics) StreamOpened(ctx context.Context) {
	if m == nil {
		return
	}
	m.streamSessions.Add(ctx, 1)
}

func (m *Metrics) StreamClosed(ctx context.Context) {
	if m == nil {
		return
	}
	m.streamSessions.Add(ctx, -1)
}

// CacheLookup counts one GLB cache lookup.
func (m *Metrics) CacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.glbCache.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
