package app

import (
	"time"
)

// BaseConfig contains the process level configuration shared by anything that
// hosts the mint authority program: logging and metrics.
type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`

	AppName string `mapstructure:"app_name"`

	// Metrics configuration. Metrics are disabled without a license key.
	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`

	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period"`
}

var defaultConfig = BaseConfig{
	LogLevel: "info",

	AppName: "mint-authority",

	ShutdownGracePeriod: 5 * time.Second,
}

var envBindings = map[string]string{
	"log_level":             "LOG_LEVEL",
	"app_name":              "APP_NAME",
	"new_relic_license_key": "NEW_RELIC_LICENSE_KEY",
	"shutdown_grace_period": "SHUTDOWN_GRACE_PERIOD",
}
