// +build gofuzz

package statsd

func Fuzz(data []byte) int {
	m, err := parseLine(string(data))
	if err != nil {
		return 0
	}
	if m.SampleRate <= 0 || m.SampleRate > 1 {
		panic("sample rate out of range")
	}
	return 1
}
