package stdout

import (
	"bytes"
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	backendTypes "github.com/statpipe/statpipe/backend/types"
)

// BackendName is the name of this backend.
const BackendName = "stdout"

// client writes rendered reports to the standard logger.
type client struct{}

// NewClientFromViper constructs a stdout backend.
func NewClientFromViper(v *viper.Viper) (backendTypes.Backend, error) {
	return NewClient()
}

// NewClient constructs a stdout backend.
func NewClient() (backendTypes.Backend, error) {
	return &client{}, nil
}

// SendMetrics writes the report to the logger's output.
func (client *client) SendMetrics(ctx context.Context, report []string) error {
	buf := new(bytes.Buffer)
	for _, block := range report {
		buf.WriteString(block)
		buf.WriteByte('\n')
	}
	_, err := buf.WriteTo(log.StandardLogger().Writer())
	return err
}

// SampleConfig returns the sample config for the stdout backend.
func (client *client) SampleConfig() string {
	return ""
}

// BackendName returns the name of the backend.
func (client *client) BackendName() string {
	return BackendName
}
