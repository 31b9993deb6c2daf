package graphite

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/spf13/viper"

	backendTypes "github.com/statpipe/statpipe/backend/types"
)

// BackendName is the name of this backend.
const BackendName = "graphite"

const sampleConfig = `
[graphite]
	# graphite host or ip address
	address = "ip:2003"
`

const dialTimeout = 5 * time.Second

// client is an object that is used to send messages to a Graphite server's TCP interface.
type client struct {
	address string
}

// SendMetrics sends the rendered report to the Graphite server. Transient
// connection failures are retried with exponential backoff until the
// context is done.
func (client *client) SendMetrics(ctx context.Context, report []string) error {
	if len(report) == 0 {
		return nil
	}
	payload := strings.Join(report, "\n") + "\n"

	op := func() error {
		conn, err := net.DialTimeout("tcp", client.address, dialTimeout)
		if err != nil {
			return fmt.Errorf("error connecting to graphite backend: %v", err)
		}
		defer conn.Close()
		if _, err := conn.Write([]byte(payload)); err != nil {
			return fmt.Errorf("error sending to graphite: %v", err)
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
}

// SampleConfig returns the sample config for the graphite backend.
func (client *client) SampleConfig() string {
	return sampleConfig
}

// NewClientFromViper constructs a graphite backend from the viper config.
func NewClientFromViper(v *viper.Viper) (backendTypes.Backend, error) {
	g := getSubViper(v, "graphite")
	g.SetDefault("address", "localhost:2003")
	return NewClient(g.GetString("address"))
}

// NewClient constructs a graphite backend for an address.
func NewClient(address string) (backendTypes.Backend, error) {
	if address == "" {
		return nil, fmt.Errorf("graphite: address is required")
	}
	return &client{address: address}, nil
}

// BackendName returns the name of the backend.
func (client *client) BackendName() string {
	return BackendName
}

// Workaround https://github.com/spf13/viper/pull/165 and https://github.com/spf13/viper/issues/191
func getSubViper(v *viper.Viper, key string) *viper.Viper {
	var n *viper.Viper
	namespace := v.Get(key)
	if namespace != nil {
		n = v.Sub(key)
	}
	if n == nil {
		n = viper.New()
	}
	return n
}
