package types

import (
	"fmt"
)

// MetricType is an enumeration of all the possible types of Metric.
type MetricType byte

const (
	// COUNTER is a cumulative event count, reset on every flush.
	COUNTER MetricType = iota
	// TIMER is a distribution of observed durations, reset on every flush.
	TIMER
	// GAUGE is an instantaneous externally measured value.
	GAUGE
	// METER is an event-rate metric with exponentially decayed averages.
	METER
)

func (m MetricType) String() string {
	switch m {
	case COUNTER:
		return "counter"
	case TIMER:
		return "timer"
	case GAUGE:
		return "gauge"
	case METER:
		return "meter"
	}
	return "unknown"
}

// Metric represents a single parsed datapoint.
type Metric struct {
	Type       MetricType // The type of metric
	Name       string     // The name of the metric
	Value      float64    // The numeric value of the metric
	SampleRate float64    // Sample rate in (0,1], 1 when not supplied
}

func (m Metric) String() string {
	return fmt.Sprintf("{%s, %s, %g, @%g}", m.Type, m.Name, m.Value, m.SampleRate)
}
