package statsd

import (
	"context"
	"time"

	"github.com/tilinna/clock"
)

// AggregateTicker advances meter moving averages.
type AggregateTicker interface {
	TickMeters()
}

// MeterTicker drives the meter engine at its fixed cadence. It does not
// self-schedule beyond the injected clock; tests can drive it with a mock.
type MeterTicker struct {
	interval time.Duration
	target   AggregateTicker
}

// NewMeterTicker creates a new MeterTicker ticking at the given interval.
func NewMeterTicker(interval time.Duration, target AggregateTicker) *MeterTicker {
	return &MeterTicker{
		interval: interval,
		target:   target,
	}
}

// Run runs the MeterTicker until the context is done.
func (mt *MeterTicker) Run(ctx context.Context) {
	clck := clock.FromContext(ctx)
	ticker := clck.NewTicker(mt.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mt.target.TickMeters()
		}
	}
}
