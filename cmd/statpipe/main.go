package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/statpipe/statpipe"
	"github.com/statpipe/statpipe/backend/backends"
	backendTypes "github.com/statpipe/statpipe/backend/types"
	"github.com/statpipe/statpipe/statsd"
)

const (
	// ParamVerbose enables verbose logging.
	ParamVerbose = "verbose"
	// ParamJSON makes logger log in JSON format.
	ParamJSON = "json"
	// ParamConfigPath provides file with configuration.
	ParamConfigPath = "config-path"
	// ParamVersion makes program output its version.
	ParamVersion = "version"
)

func main() {
	v, version, err := setupConfiguration()
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		logrus.Fatalf("Error while parsing configuration: %v", err)
	}
	if version {
		fmt.Printf("Version: %s - Commit: %s - Date: %s\n", Version, GitCommit, BuildDate)
		return
	}
	if err := run(v); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func run(v *viper.Viper) error {
	logrus.Info("Starting server")
	s, err := constructServer(v)
	if err != nil {
		return err
	}

	ctx, cancelFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFunc()

	if err := s.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("server error: %v", err)
	}
	return nil
}

func constructServer(v *viper.Viper) (*statsd.Server, error) {
	backendNames := v.GetStringSlice(statpipe.ParamBackends)
	backendsList := make([]backendTypes.Backend, 0, len(backendNames))
	for _, backendName := range backendNames {
		backend, errBackend := backends.InitBackend(backendName, v)
		if errBackend != nil {
			return nil, errBackend
		}
		backendsList = append(backendsList, backend)
	}

	return &statsd.Server{
		Backends:          backendsList,
		MetricsAddr:       v.GetString(statpipe.ParamMetricsAddr),
		WebConsoleAddr:    v.GetString(statpipe.ParamWebAddr),
		FlushInterval:     v.GetDuration(statpipe.ParamFlushInterval),
		Percentile:        v.GetFloat64(statpipe.ParamPercentile),
		Prefix:            v.GetString(statpipe.ParamPrefix),
		PrefixEnabled:     v.GetBool(statpipe.ParamPrefixEnabled),
		BadLinesPerSecond: v.GetFloat64(statpipe.ParamBadLinesPerSecond),
		Viper:             v,
	}, nil
}

func setupConfiguration() (*viper.Viper, bool, error) {
	v := viper.New()
	defer setupLogger(v) // Apply logging configuration in case of early exit

	var version bool

	cmd := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)

	cmd.BoolVar(&version, ParamVersion, false, "Print the version and exit")
	cmd.Bool(ParamVerbose, false, "Verbose")
	cmd.Bool(ParamJSON, false, "Log in JSON format")
	cmd.String(ParamConfigPath, "", "Path to the configuration file")

	statpipe.AddFlags(cmd)

	cmd.VisitAll(func(flag *pflag.Flag) {
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			panic(err) // Should never happen
		}
	})

	if err := cmd.Parse(os.Args[1:]); err != nil {
		return nil, false, err
	}

	configPath := v.GetString(ParamConfigPath)
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, false, err
		}
	}

	return v, version, nil
}

func setupLogger(v *viper.Viper) {
	if v.GetBool(ParamVerbose) {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if v.GetBool(ParamJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
