package statsd

import (
	"context"
	"math"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"

	backendTypes "github.com/statpipe/statpipe/backend/types"
	"github.com/statpipe/statpipe/types"
)

// Flush renders the current aggregation state into the outbound plaintext
// protocol and resets transient state. It returns an ordered sequence of
// text blocks, one per reported metric, followed by exactly one trailing
// numStats line. The time source is read exactly once; every line in the
// pass carries the same timestamp.
//
// Counters are normalized to the reporting interval and reset to zero.
// Timers are reduced to mean/upper/upper_<pct>/lower/count over the
// requested percentile and cleared. The gauge queue is drained. Meters are
// reported but never reset.
func (p *Processor) Flush(interval time.Duration, percentile float64, namer Namer) []string {
	now := p.clck.Now()
	ts := now.Unix()
	numStats := 0
	var blocks []string

	p.Counters.Each(func(name string, value float64) {
		perInterval := value / interval.Seconds()
		if isIntegral(value) {
			perInterval = math.Trunc(perInterval)
		}
		blocks = append(blocks,
			renderLine(namer.CounterRate(name), perInterval, ts)+"\n"+
				renderLine(namer.CounterCount(name), value, ts))
		p.Counters[name] = 0
		numStats++
	})

	pctSuffix := strconv.FormatFloat(percentile, 'f', -1, 64)
	p.Timers.Each(func(name string, values []float64) {
		count := len(values)
		if count == 0 {
			return
		}
		sort.Float64s(values)
		threshold := int(math.Round(percentile / 100 * float64(count)))
		if threshold < 1 {
			threshold = 1
		}
		inPct := values[:threshold]
		var sum float64
		integral := true
		for _, v := range inPct {
			sum += v
			integral = integral && isIntegral(v)
		}
		mean := sum / float64(threshold)
		if integral {
			mean = math.Trunc(mean)
		}
		base := namer.Timer(name)
		blocks = append(blocks,
			renderLine(base+".mean", mean, ts)+"\n"+
				renderLine(base+".upper", values[count-1], ts)+"\n"+
				renderLine(base+".upper_"+pctSuffix, inPct[threshold-1], ts)+"\n"+
				renderLine(base+".lower", values[0], ts)+"\n"+
				renderLine(base+".count", float64(count), ts))
		p.Timers[name] = values[:0]
		numStats++
	})

	for _, g := range p.Gauges {
		blocks = append(blocks, renderLine(namer.Gauge(g.Name)+".value", g.Value, ts))
		numStats++
	}
	p.Gauges = nil

	p.Meters.Each(func(name string, m *types.Meter) {
		base := namer.Meter(name)
		blocks = append(blocks,
			renderLine(base+".count", m.Count, ts)+"\n"+
				renderLine(base+".mean_rate", m.MeanRate(now), ts)+"\n"+
				renderLine(base+".1min_rate", m.OneMinuteRate(), ts)+"\n"+
				renderLine(base+".5min_rate", m.FiveMinuteRate(), ts)+"\n"+
				renderLine(base+".15min_rate", m.FifteenMinuteRate(), ts))
		numStats++
	})

	blocks = append(blocks, renderLine(NumStatsName, float64(numStats), ts))
	return blocks
}

func renderLine(name string, value float64, ts int64) string {
	return name + " " + formatValue(value) + " " + strconv.FormatInt(ts, 10)
}

// formatValue renders integral values without a decimal point and
// non-integral values in their natural decimal form.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}

// AggregateFlusher produces a rendered report from aggregation state.
type AggregateFlusher interface {
	Flush(interval time.Duration, percentile float64, namer Namer) []string
}

// FlusherStats holds statistics about a MetricFlusher.
type FlusherStats struct {
	LastFlush      time.Time // Last time the metrics were flushed
	LastFlushError time.Time // Time of the last flush error
}

// MetricFlusher periodically flushes the aggregation state to the backends.
type MetricFlusher struct {
	// Counter fields below must be read/written only using atomic instructions.
	// 64-bit fields must be the first fields in the struct to guarantee proper memory alignment.
	// See https://golang.org/pkg/sync/atomic/#pkg-note-BUG
	lastFlush      int64 // Unix timestamp in nsec
	lastFlushError int64 // Unix timestamp in nsec

	flushInterval time.Duration
	percentile    float64
	namer         Namer
	target        AggregateFlusher
	backends      []backendTypes.Backend
}

// NewMetricFlusher creates a new MetricFlusher with provided configuration.
func NewMetricFlusher(flushInterval time.Duration, percentile float64, namer Namer, target AggregateFlusher, backends []backendTypes.Backend) *MetricFlusher {
	return &MetricFlusher{
		flushInterval: flushInterval,
		percentile:    percentile,
		namer:         namer,
		target:        target,
		backends:      backends,
	}
}

// Run runs the MetricFlusher until the context is done.
func (f *MetricFlusher) Run(ctx context.Context) {
	clck := clock.FromContext(ctx)
	ticker := clck.NewTicker(f.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.flushData(ctx)
		}
	}
}

// GetStats returns MetricFlusher statistics. Safe for concurrent use.
func (f *MetricFlusher) GetStats() FlusherStats {
	return FlusherStats{
		LastFlush:      time.Unix(0, atomic.LoadInt64(&f.lastFlush)),
		LastFlushError: time.Unix(0, atomic.LoadInt64(&f.lastFlushError)),
	}
}

func (f *MetricFlusher) flushData(ctx context.Context) {
	report := f.target.Flush(f.flushInterval, f.percentile, f.namer)
	timestampPointer := &f.lastFlush
	for _, backend := range f.backends {
		if err := backend.SendMetrics(ctx, report); err != nil {
			timestampPointer = &f.lastFlushError
			if err != context.Canceled && err != context.DeadlineExceeded {
				logrus.WithError(err).WithField("backend", backend.BackendName()).Error("Sending metrics to backend failed")
			}
		}
	}
	atomic.StoreInt64(timestampPointer, time.Now().UnixNano())
}
