package statsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilinna/clock"

	"github.com/statpipe/statpipe/types"
)

// testProcessor collects failures instead of logging them.
type testProcessor struct {
	*Processor
	clck     *clock.Mock
	failures []string
}

func newTestProcessor() *testProcessor {
	tp := &testProcessor{
		clck: clock.NewMock(time.Unix(42, 0)),
	}
	tp.Processor = NewProcessor(tp.clck, func(line string) {
		tp.failures = append(tp.failures, line)
	})
	return tp
}

func TestProcessCounter(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("gorets:1|c")
	require.Len(t, tp.Counters, 1)
	assert.Equal(t, 1.0, tp.Counters["gorets"])

	tp.Process("gorets:1|c")
	assert.Equal(t, 2.0, tp.Counters["gorets"])
}

func TestProcessCounterSampleRate(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("gorets:1|c|@0.1")
	require.Len(t, tp.Counters, 1)
	assert.Equal(t, 10.0, tp.Counters["gorets"])
}

func TestProcessTimer(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("glork:320|ms")
	require.Len(t, tp.Timers, 1)
	assert.Equal(t, []float64{320}, tp.Timers["glork"])

	tp.Process("glork:8|ms")
	assert.Equal(t, []float64{320, 8}, tp.Timers["glork"])
}

func TestProcessGauge(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("gorets:9.6|g")
	require.Len(t, tp.Gauges, 1)
	assert.Equal(t, types.GaugeValue{Value: 9.6, Name: "gorets"}, tp.Gauges[0])

	// repeated updates to the same name are queued, not coalesced
	tp.Process("gorets:9.7|g")
	require.Len(t, tp.Gauges, 2)
	assert.Equal(t, types.GaugeValue{Value: 9.7, Name: "gorets"}, tp.Gauges[1])
}

func TestProcessMeter(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("gorets:3.0|m")
	require.Len(t, tp.Meters, 1)
	m := tp.Meters["gorets"]
	assert.Equal(t, 3.0, m.Count)
	assert.Equal(t, time.Unix(42, 0), m.Created)

	tp.Process("gorets:2|m")
	assert.Equal(t, 5.0, m.Count)
}

func TestProcessInvalidLines(t *testing.T) {
	t.Parallel()
	invalid := []string{
		"glork",
		"glork:1",
		"gorets:|c",
		"glork:|ms",
		"gorets:xyz|c",
		"gorets:1|q",
		"gorets:1|c|@0.1|yay",
		"gorets:1|c|@0",
	}
	for _, line := range invalid {
		tp := newTestProcessor()
		tp.Process(line)
		assert.Equal(t, []string{line}, tp.failures, line)
		assert.Empty(t, tp.Counters, line)
		assert.Empty(t, tp.Timers, line)
		assert.Empty(t, tp.Gauges, line)
		assert.Empty(t, tp.Meters, line)
	}
}

func TestProcessFailureDoesNotStopProcessing(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("bogus")
	tp.Process("gorets:1|c")
	assert.Equal(t, []string{"bogus"}, tp.failures)
	assert.Equal(t, 1.0, tp.Counters["gorets"])
}

func TestTickMeters(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()

	tp.Process("gorets:3|m")
	m := tp.Meters["gorets"]
	assert.Equal(t, 0.0, m.OneMinuteRate())

	tp.TickMeters()
	assert.InDelta(t, 0.6, m.OneMinuteRate(), 0.0001)
	assert.InDelta(t, 0.6, m.FiveMinuteRate(), 0.0001)
	assert.InDelta(t, 0.6, m.FifteenMinuteRate(), 0.0001)
}
