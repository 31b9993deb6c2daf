package backends

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/statpipe/statpipe/backend/backends/graphite"
	"github.com/statpipe/statpipe/backend/backends/null"
	"github.com/statpipe/statpipe/backend/backends/stdout"
	backendTypes "github.com/statpipe/statpipe/backend/types"
)

// All known backend factories.
var all = map[string]backendTypes.Factory{
	graphite.BackendName: graphite.NewClientFromViper,
	null.BackendName:     null.NewClientFromViper,
	stdout.BackendName:   stdout.NewClientFromViper,
}

// GetBackend creates an instance of the named backend, or nil if the name
// is not known. The error return is only used if the named backend was
// known but failed to initialize.
func GetBackend(name string, v *viper.Viper) (backendTypes.Backend, error) {
	f, found := all[name]
	if !found {
		return nil, nil
	}
	return f(v)
}

// InitBackend creates an instance of the named backend.
func InitBackend(name string, v *viper.Viper) (backendTypes.Backend, error) {
	if name == "" {
		log.Info("No backend specified")
		return nil, nil
	}

	backend, err := GetBackend(name, v)
	if err != nil {
		return nil, fmt.Errorf("could not init backend %q: %v", name, err)
	}
	if backend == nil {
		return nil, fmt.Errorf("unknown backend %q", name)
	}
	log.Infof("Backend %q initialised", name)

	return backend, nil
}
