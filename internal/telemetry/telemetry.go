// Package telemetry exposes OpenTelemetry instruments for the simulation.
// With no SDK configured the global meter is a no-op, so recording is always safe.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "spearhunt"

// Recorder bundles the counters fed by the game tick loop.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	arrivals     metric.Int64Counter
	respawns     metric.Int64Counter
	tickDuration metric.Float64Histogram
}

func NewRecorder() (*Recorder, error) {
	meter := otel.Meter(meterName)

	hits, err := meter.Int64Counter("game.hits",
		metric.WithDescription("projectile hits resolved"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create hits counter: %w", err)
	}
	misses, err := meter.Int64Counter("game.misses",
		metric.WithDescription("projectiles terminated without a hit"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create misses counter: %w", err)
	}
	arrivals, err := meter.Int64Counter("game.arrivals",
		metric.WithDescription("animals that reached the player boundary"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create arrivals counter: %w", err)
	}
	respawns, err := meter.Int64Counter("game.respawn_requests",
		metric.WithDescription("replacement spawns requested"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create respawns counter: %w", err)
	}
	tickDuration, err := meter.Float64Histogram("game.tick_duration",
		metric.WithDescription("wall time of one simulation tick"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create tick histogram: %w", err)
	}

	return &Recorder{
		hits:         hits,
		misses:       misses,
		arrivals:     arrivals,
		respawns:     respawns,
		tickDuration: tickDuration,
	}, nil
}

func (r *Recorder) RecordHit(ctx context.Context) {
	if r == nil {
		return
	}
	r.hits.Add(ctx, 1)
}

func (r *Recorder) RecordMiss(ctx context.Context) {
	if r == nil {
		return
	}
	r.misses.Add(ctx, 1)
}

func (r *Recorder) RecordArrival(ctx context.Context) {
	if r == nil {
		return
	}
	r.arrivals.Add(ctx, 1)
}

func (r *Recorder) RecordRespawnRequest(ctx context.Context) {
	if r == nil {
		return
	}
	r.respawns.Add(ctx, 1)
}

func (r *Recorder) RecordTick(ctx context.Context, d time.Duration) {
	if r == nil {
		return
	}
	r.tickDuration.Record(ctx, d.Seconds())
}
