package types

import (
	"sort"
)

// Counters stores accumulated counter values keyed by metric name.
// Flush resets values to zero but keeps the keys.
type Counters map[string]float64

// Each iterates over each counter in ascending name order.
func (c Counters) Each(f func(name string, value float64)) {
	for _, name := range sortedKeysCounters(c) {
		f(name, c[name])
	}
}

// Timers stores recorded timer samples keyed by metric name, in arrival order.
// Flush clears the sample slices but keeps the keys.
type Timers map[string][]float64

// Each iterates over each timer in ascending name order.
func (t Timers) Each(f func(name string, values []float64)) {
	for _, name := range sortedKeysTimers(t) {
		f(name, t[name])
	}
}

// GaugeValue is a single queued gauge update.
type GaugeValue struct {
	Value float64
	Name  string
}

// GaugeQueue is the queue of gauge updates spanning all gauge names.
// Repeated updates to the same name are not coalesced; every queued entry
// renders exactly one output line and flush drains the whole queue.
type GaugeQueue []GaugeValue

func sortedKeysCounters(m Counters) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysTimers(m Timers) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
