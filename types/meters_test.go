package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeterUntickedRatesAreZero(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000, 0)
	m := NewMeter(now)
	m.Mark(3)

	assert.Equal(t, 3.0, m.Count)
	assert.Equal(t, 0.0, m.OneMinuteRate())
	assert.Equal(t, 0.0, m.FiveMinuteRate())
	assert.Equal(t, 0.0, m.FifteenMinuteRate())
	assert.InDelta(t, 3.0, m.MeanRate(now.Add(1*time.Second)), 0.0001)
}

func TestMeterFirstTickSeedsAverages(t *testing.T) {
	t.Parallel()
	m := NewMeter(time.Unix(1000, 0))
	m.Mark(3)
	m.Tick()

	// 3 events over a 5 second tick
	assert.InDelta(t, 0.6, m.OneMinuteRate(), 0.0001)
	assert.InDelta(t, 0.6, m.FiveMinuteRate(), 0.0001)
	assert.InDelta(t, 0.6, m.FifteenMinuteRate(), 0.0001)
}

func TestMeterDecayOverOneMinute(t *testing.T) {
	t.Parallel()
	start := time.Unix(1000, 0)
	m := NewMeter(start)
	m.Mark(3)
	m.Tick()
	for i := 0; i < 12; i++ {
		m.Tick()
	}

	assert.InDelta(t, 0.220728, m.OneMinuteRate(), 0.0001)
	assert.InDelta(t, 0.491238, m.FiveMinuteRate(), 0.0001)
	assert.InDelta(t, 0.561304, m.FifteenMinuteRate(), 0.0001)
	assert.InDelta(t, 0.049180, m.MeanRate(start.Add(61*time.Second)), 0.0001)
}

func TestMeterMeanRateNonZeroElapsed(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000, 0)
	m := NewMeter(now)
	m.Mark(5)

	// defined even with no elapsed time
	assert.False(t, m.MeanRate(now) != m.MeanRate(now)) // not NaN
	assert.InDelta(t, 0.5, m.MeanRate(now.Add(10*time.Second)), 0.0001)
}

func TestMeterTickResetsPending(t *testing.T) {
	t.Parallel()
	m := NewMeter(time.Unix(1000, 0))
	m.Mark(3)
	m.Tick()
	m.Tick() // no marks since the last tick

	assert.Equal(t, 3.0, m.Count)
	assert.Less(t, m.OneMinuteRate(), 0.6)
}

func TestMetersEachSortedOrder(t *testing.T) {
	t.Parallel()
	ms := Meters{
		"b": NewMeter(time.Unix(0, 0)),
		"a": NewMeter(time.Unix(0, 0)),
		"c": NewMeter(time.Unix(0, 0)),
	}
	var names []string
	ms.Each(func(name string, m *Meter) {
		names = append(names, name)
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}
