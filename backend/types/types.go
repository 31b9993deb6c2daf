package types

import (
	"context"

	"github.com/spf13/viper"
)

// Factory is a function that returns a Backend.
type Factory func(*viper.Viper) (Backend, error)

// Backend represents a delivery target for rendered reports.
type Backend interface {
	// BackendName returns the name of the backend.
	BackendName() string
	// SampleConfig returns the sample config for the backend.
	SampleConfig() string
	// SendMetrics delivers the rendered report blocks to the backend.
	SendMetrics(ctx context.Context, report []string) error
}
