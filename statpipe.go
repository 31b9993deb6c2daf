package statpipe

import (
	"time"

	"github.com/spf13/pflag"
)

// DefaultBackends is the list of default backends' names.
var DefaultBackends = []string{"stdout"}

const (
	// DefaultMetricsAddr is the default address on which to listen for metrics.
	DefaultMetricsAddr = ":8125"
	// DefaultFlushInterval is the default reporting interval.
	DefaultFlushInterval = 10 * time.Second
	// DefaultPercentile is the default timer percentile.
	DefaultPercentile = 90.0
	// DefaultPrefix is the default metric name prefix when prefix naming is enabled.
	DefaultPrefix = ""
	// DefaultWebConsoleAddr is the default address of the web console (empty means disabled).
	DefaultWebConsoleAddr = ""
	// DefaultBadLinesPerSecond is the default rate limit on logging of unparseable lines.
	DefaultBadLinesPerSecond = 1.0
)

const (
	// ParamBackends is the name of parameter with backends.
	ParamBackends = "backends"
	// ParamFlushInterval is the name of parameter with the reporting interval.
	ParamFlushInterval = "flush-interval"
	// ParamMetricsAddr is the name of parameter with address on which to listen for metrics.
	ParamMetricsAddr = "metrics-addr"
	// ParamPercentile is the name of parameter with the timer percentile.
	ParamPercentile = "percentile"
	// ParamPrefix is the name of parameter with the metric name prefix.
	ParamPrefix = "prefix"
	// ParamPrefixEnabled is the name of parameter that switches to prefix-based naming.
	ParamPrefixEnabled = "prefix-enabled"
	// ParamWebAddr is the name of parameter with the address of the web console.
	ParamWebAddr = "web-addr"
	// ParamBadLinesPerSecond is the name of parameter with the limit on logging of unparseable lines.
	ParamBadLinesPerSecond = "bad-lines-per-second"
)

// AddFlags adds flags to the specified FlagSet.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringSlice(ParamBackends, DefaultBackends, "Comma-separated list of backends")
	fs.Duration(ParamFlushInterval, DefaultFlushInterval, "Reporting interval")
	fs.String(ParamMetricsAddr, DefaultMetricsAddr, "Address on which to listen for metrics")
	fs.Float64(ParamPercentile, DefaultPercentile, "Percentile applied to timers")
	fs.String(ParamPrefix, DefaultPrefix, "Prefix joined to metric names when prefix naming is enabled")
	fs.Bool(ParamPrefixEnabled, false, "Replace the default graphite namespaces with a configurable prefix")
	fs.String(ParamWebAddr, DefaultWebConsoleAddr, "Address of the web console, empty to disable")
	fs.Float64(ParamBadLinesPerSecond, DefaultBadLinesPerSecond, "Maximum number of unparseable lines to log per second")
}
