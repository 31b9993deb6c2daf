package statsd

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/statpipe/statpipe/types"
)

var (
	errMissingKeySep      = errors.New("missing key separator")
	errWrongFieldCount    = errors.New("wrong number of fields")
	errInvalidType        = errors.New("invalid type")
	errEmptyValue         = errors.New("value zero len")
	errInvalidValue       = errors.New("invalid value")
	errNaN                = errors.New("invalid value NaN")
	errMissingSamplingSep = errors.New("missing sampling separator")
	errInvalidSampling    = errors.New("invalid sampling")
)

// parseLine parses one line of the inbound protocol:
//
//	name:value|type[|@samplerate]
//
// type is one of "c", "ms", "g" or "m". The sample rate, when present, must
// be a number in (0,1]. Any deviation is an error and the caller must leave
// aggregation state untouched.
func parseLine(line string) (types.Metric, error) {
	m := types.Metric{SampleRate: 1}

	sep := strings.IndexByte(line, ':')
	if sep < 0 {
		return m, errMissingKeySep
	}
	m.Name = line[:sep]

	fields := strings.Split(line[sep+1:], "|")
	if len(fields) != 2 && len(fields) != 3 {
		return m, errWrongFieldCount
	}

	switch fields[1] {
	case "c":
		m.Type = types.COUNTER
	case "ms":
		m.Type = types.TIMER
	case "g":
		m.Type = types.GAUGE
	case "m":
		m.Type = types.METER
	default:
		return m, errInvalidType
	}

	if fields[0] == "" {
		return m, errEmptyValue
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return m, errInvalidValue
	}
	if math.IsNaN(v) {
		return m, errNaN
	}
	m.Value = v

	if len(fields) == 3 {
		if !strings.HasPrefix(fields[2], "@") {
			return m, errMissingSamplingSep
		}
		rate, err := strconv.ParseFloat(fields[2][1:], 64)
		if err != nil || math.IsNaN(rate) || rate <= 0 || rate > 1 {
			return m, errInvalidSampling
		}
		m.SampleRate = rate
	}

	return m, nil
}
