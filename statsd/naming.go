package statsd

// NumStatsName is the name of the trailing total line. It is constant and
// never decorated by any Namer.
const NumStatsName = "statsd.numStats"

// Namer decorates output metric names with namespace segments. It is
// stateless and consulted only at render time.
type Namer interface {
	// CounterRate names the normalized-rate line of a counter.
	CounterRate(name string) string
	// CounterCount names the raw-count line of a counter.
	CounterCount(name string) string
	// Timer names the base of a timer's statistic lines.
	Timer(name string) string
	// Gauge names the base of a gauge's value line.
	Gauge(name string) string
	// Meter names the base of a meter's rate lines.
	Meter(name string) string
}

// GraphiteNamer is the default naming strategy, using the fixed graphite
// namespaces: stats, stats_counts, stats.timers, stats.gauge, stats.meter.
type GraphiteNamer struct{}

func (GraphiteNamer) CounterRate(name string) string  { return "stats." + name }
func (GraphiteNamer) CounterCount(name string) string { return "stats_counts." + name }
func (GraphiteNamer) Timer(name string) string        { return "stats.timers." + name }
func (GraphiteNamer) Gauge(name string) string        { return "stats.gauge." + name }
func (GraphiteNamer) Meter(name string) string        { return "stats.meter." + name }

// PrefixNamer replaces the per-type namespaces with a single configurable
// prefix shared by all metric families. An empty prefix yields the bare
// metric name.
type PrefixNamer struct {
	Prefix string
}

func (n PrefixNamer) join(name string) string {
	if n.Prefix == "" {
		return name
	}
	return n.Prefix + "." + name
}

func (n PrefixNamer) CounterRate(name string) string  { return n.join(name) }
func (n PrefixNamer) CounterCount(name string) string { return n.join(name) }
func (n PrefixNamer) Timer(name string) string        { return n.join(name) }
func (n PrefixNamer) Gauge(name string) string        { return n.join(name) }
func (n PrefixNamer) Meter(name string) string        { return n.join(name) }
