// Package statsd implements the aggregation core of a statsd-compatible
// metrics daemon: parsing of the inbound line protocol, per-type
// aggregation state for counters, timers, gauges and meters, a decayed-rate
// meter engine, and the periodic flush that renders state into graphite
// plaintext.
package statsd
