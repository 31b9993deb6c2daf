package statsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphiteNamer(t *testing.T) {
	t.Parallel()
	n := GraphiteNamer{}
	assert.Equal(t, "stats.gorets", n.CounterRate("gorets"))
	assert.Equal(t, "stats_counts.gorets", n.CounterCount("gorets"))
	assert.Equal(t, "stats.timers.glork", n.Timer("glork"))
	assert.Equal(t, "stats.gauge.gorets", n.Gauge("gorets"))
	assert.Equal(t, "stats.meter.gorets", n.Meter("gorets"))
}

func TestPrefixNamer(t *testing.T) {
	t.Parallel()
	n := PrefixNamer{Prefix: "test.metric"}
	assert.Equal(t, "test.metric.gorets", n.CounterRate("gorets"))
	assert.Equal(t, "test.metric.gorets", n.CounterCount("gorets"))
	assert.Equal(t, "test.metric.glork", n.Timer("glork"))
	assert.Equal(t, "test.metric.gorets", n.Gauge("gorets"))
	assert.Equal(t, "test.metric.gorets", n.Meter("gorets"))

	empty := PrefixNamer{}
	assert.Equal(t, "gorets", empty.CounterRate("gorets"))
}

func TestFlushCounterWithPrefix(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()
	tp.Counters["gorets"] = 42

	blocks := tp.Flush(10*time.Second, 90, PrefixNamer{Prefix: "test.metric"})
	require.Len(t, blocks, 2)
	assert.Equal(t, "test.metric.gorets 4 42\ntest.metric.gorets 42 42", blocks[0])
	assert.Equal(t, "statsd.numStats 1 42", blocks[1])
	assert.Equal(t, 0.0, tp.Counters["gorets"])
}

func TestFlushCounterWithEmptyPrefix(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()
	tp.Counters["gorets"] = 42

	blocks := tp.Flush(10*time.Second, 90, PrefixNamer{})
	require.Len(t, blocks, 2)
	assert.Equal(t, "gorets 4 42\ngorets 42 42", blocks[0])
	// the total line is never affected by the prefix
	assert.Equal(t, "statsd.numStats 1 42", blocks[1])
}

func TestFlushMeterWithPrefix(t *testing.T) {
	t.Parallel()
	tp := newTestProcessor()
	tp.Process("gorets:3.0|m")
	tp.clck.Add(1 * time.Second)

	blocks := tp.Flush(10*time.Second, 90, PrefixNamer{Prefix: "test.metric"})
	require.Len(t, blocks, 2)
	assert.Equal(t,
		"test.metric.gorets.count 3 43\n"+
			"test.metric.gorets.mean_rate 3 43\n"+
			"test.metric.gorets.1min_rate 0 43\n"+
			"test.metric.gorets.5min_rate 0 43\n"+
			"test.metric.gorets.15min_rate 0 43",
		blocks[0])
	assert.Equal(t, "statsd.numStats 1 43", blocks[1])
}
