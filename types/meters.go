package types

import (
	"math"
	"sort"
	"time"
)

// TickInterval is the fixed cadence at which meter EWMAs must be advanced.
// The decay constants below are derived from it; a collaborator is expected
// to call Meter.Tick once per interval.
const TickInterval = 5 * time.Second

var (
	alpha1  = 1 - math.Exp(-TickInterval.Seconds()/60)
	alpha5  = 1 - math.Exp(-TickInterval.Seconds()/(60*5))
	alpha15 = 1 - math.Exp(-TickInterval.Seconds()/(60*15))
)

// EWMA is an exponentially weighted moving average of an event rate.
// The first update seeds the average with the instant rate, subsequent
// updates decay towards it.
type EWMA struct {
	alpha  float64
	rate   float64
	seeded bool
}

// Rate returns the current average in events per second.
func (e *EWMA) Rate() float64 {
	return e.rate
}

func (e *EWMA) update(instantRate float64) {
	if !e.seeded {
		e.rate = instantRate
		e.seeded = true
		return
	}
	e.rate += e.alpha * (instantRate - e.rate)
}

// Meter measures the rate of events over 1, 5 and 15 minute windows, plus a
// cumulative mean rate since creation. Meters survive flushes; only Tick
// mutates the windowed averages.
type Meter struct {
	Count   float64   // cumulative marked value for the lifetime of the meter
	Created time.Time // when the meter was first seen

	pending float64 // marked since the last tick
	m1      EWMA
	m5      EWMA
	m15     EWMA
}

// NewMeter creates a meter created at the given time.
func NewMeter(now time.Time) *Meter {
	return &Meter{
		Created: now,
		m1:      EWMA{alpha: alpha1},
		m5:      EWMA{alpha: alpha5},
		m15:     EWMA{alpha: alpha15},
	}
}

// Mark records value events.
func (m *Meter) Mark(value float64) {
	m.Count += value
	m.pending += value
}

// Tick advances the moving averages by one TickInterval.
func (m *Meter) Tick() {
	instantRate := m.pending / TickInterval.Seconds()
	m.pending = 0
	m.m1.update(instantRate)
	m.m5.update(instantRate)
	m.m15.update(instantRate)
}

// MeanRate returns the cumulative throughput in events per second as of now.
func (m *Meter) MeanRate(now time.Time) float64 {
	elapsed := now.Sub(m.Created).Seconds()
	if elapsed <= 0 {
		elapsed = math.SmallestNonzeroFloat64
	}
	return m.Count / elapsed
}

// OneMinuteRate returns the one-minute moving average rate.
func (m *Meter) OneMinuteRate() float64 { return m.m1.Rate() }

// FiveMinuteRate returns the five-minute moving average rate.
func (m *Meter) FiveMinuteRate() float64 { return m.m5.Rate() }

// FifteenMinuteRate returns the fifteen-minute moving average rate.
func (m *Meter) FifteenMinuteRate() float64 { return m.m15.Rate() }

// Meters stores meters keyed by metric name.
type Meters map[string]*Meter

// Each iterates over each meter in ascending name order.
func (ms Meters) Each(f func(name string, m *Meter)) {
	keys := make([]string, 0, len(ms))
	for k := range ms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f(k, ms[k])
	}
}
