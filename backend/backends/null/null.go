package null

import (
	"context"

	"github.com/spf13/viper"

	backendTypes "github.com/statpipe/statpipe/backend/types"
)

// BackendName is the name of this backend.
const BackendName = "null"

// client discards everything sent to it.
type client struct{}

// NewClientFromViper constructs a null backend.
func NewClientFromViper(v *viper.Viper) (backendTypes.Backend, error) {
	return NewClient()
}

// NewClient constructs a null backend.
func NewClient() (backendTypes.Backend, error) {
	return &client{}, nil
}

// SendMetrics discards the report.
func (client *client) SendMetrics(ctx context.Context, report []string) error {
	return nil
}

// SampleConfig returns the sample config for the null backend.
func (client *client) SampleConfig() string {
	return ""
}

// BackendName returns the name of the backend.
func (client *client) BackendName() string {
	return BackendName
}
