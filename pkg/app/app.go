package app

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/code-payments/mint-authority/pkg/metrics"
)

// Environment is the ambient process state a host sets up once before
// dispatching instructions.
type Environment struct {
	Config BaseConfig

	// Metrics is nil when no New Relic license key is configured
	Metrics *newrelic.Application
}

// Setup loads the base config from an optional file at configPath, overlaid
// with environment variables, then configures logging and metrics. A missing
// config file is not an error.
func Setup(configPath string) (*Environment, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var metricsProvider *newrelic.Application
	if len(config.NewRelicLicenseKey) > 0 {
		metricsProvider, err = newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "error connecting to new relic")
		}
	}

	configureLogger(config, metricsProvider, os.Stdout)

	return &Environment{
		Config:  config,
		Metrics: metricsProvider,
	}, nil
}

// Context returns a copy of ctx carrying the environment's metrics provider
func (e *Environment) Context(ctx context.Context) context.Context {
	if e.Metrics == nil {
		return ctx
	}
	return metrics.NewContext(ctx, e.Metrics)
}

// Shutdown flushes any pending metrics within the configured grace period
func (e *Environment) Shutdown() {
	if e.Metrics != nil {
		e.Metrics.Shutdown(e.Config.ShutdownGracePeriod)
	}
}

func loadConfig(configPath string) (BaseConfig, error) {
	v := viper.New()

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// viper only reports ConfigFileNotFoundError when searching for a default
	// file, so an explicitly set path is checked here instead.
	if len(configPath) > 0 {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return BaseConfig{}, errors.Wrap(err, "failed to load config")
			}
		} else if !os.IsNotExist(err) {
			return BaseConfig{}, errors.Wrap(err, "failed to check if config exists")
		}
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return BaseConfig{}, errors.Wrap(err, "failed to unmarshal config")
	}

	if len(config.AppName) == 0 {
		return BaseConfig{}, errors.New("must specify an application name")
	}

	return config, nil
}

func configureLogger(config BaseConfig, metricsProvider *newrelic.Application, out io.Writer) {
	if metricsProvider != nil {
		logrus.SetFormatter(metrics.NewCustomNewRelicLogFormatter(metricsProvider, &logrus.JSONFormatter{}))
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(out)
}
