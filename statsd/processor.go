package statsd

import (
	"github.com/sirupsen/logrus"
	"github.com/tilinna/clock"
	"golang.org/x/time/rate"

	"github.com/statpipe/statpipe/types"
)

// FailFunc is invoked once per rejected line with the verbatim input.
// It must not panic and must not abort subsequent processing.
type FailFunc func(line string)

// Processor owns the per-type aggregation state for one independent
// processor instance. Updates, ticks and flushes must be serialized by the
// caller; none of the methods are internally synchronized.
//
// The function NewProcessor should be used to create the objects.
type Processor struct {
	Counters types.Counters
	Timers   types.Timers
	Gauges   types.GaugeQueue
	Meters   types.Meters

	clck clock.Clock
	fail FailFunc
}

// NewProcessor creates a new Processor with an injected time source and
// failure sink.
func NewProcessor(clck clock.Clock, fail FailFunc) *Processor {
	return &Processor{
		Counters: types.Counters{},
		Timers:   types.Timers{},
		Meters:   types.Meters{},
		clck:     clck,
		fail:     fail,
	}
}

// Process parses one line and applies it to the aggregation state. Rejected
// lines are reported to the failure sink and mutate nothing.
func (p *Processor) Process(line string) {
	m, err := parseLine(line)
	if err != nil {
		p.fail(line)
		return
	}
	switch m.Type {
	case types.COUNTER:
		p.receiveCounter(m)
	case types.TIMER:
		p.receiveTimer(m)
	case types.GAUGE:
		p.receiveGauge(m)
	case types.METER:
		p.receiveMeter(m)
	}
}

func (p *Processor) receiveCounter(m types.Metric) {
	p.Counters[m.Name] += m.Value / m.SampleRate
}

func (p *Processor) receiveTimer(m types.Metric) {
	p.Timers[m.Name] = append(p.Timers[m.Name], m.Value)
}

func (p *Processor) receiveGauge(m types.Metric) {
	p.Gauges = append(p.Gauges, types.GaugeValue{Value: m.Value, Name: m.Name})
}

func (p *Processor) receiveMeter(m types.Metric) {
	meter, ok := p.Meters[m.Name]
	if !ok {
		meter = types.NewMeter(p.clck.Now())
		p.Meters[m.Name] = meter
	}
	meter.Mark(m.Value)
}

// TickMeters advances every meter's moving averages by one tick. It must be
// called once per types.TickInterval.
func (p *Processor) TickMeters() {
	for _, m := range p.Meters {
		m.Tick()
	}
}

// LoggingFailSink returns a FailFunc that logs rejected lines at debug
// level, rate limited to avoid spamming logs when a bad actor sends badly
// formatted messages.
func LoggingFailSink(logger logrus.FieldLogger, badLinesPerSecond float64) FailFunc {
	limiter := rate.NewLimiter(rate.Limit(badLinesPerSecond), 1)
	return func(line string) {
		if limiter.Allow() {
			logger.WithField("line", line).Debug("Invalid line")
		}
	}
}
