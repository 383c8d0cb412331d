package bootstrap

import (
	"github.com/kbukum/beankit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) automatically
// satisfies this interface via promoted methods.
//
// Example:
//
//	type MyConfig struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Greeting string `yaml:"greeting" mapstructure:"greeting"`
//	}
//
//	app, err := bootstrap.NewApp[*MyConfig](&cfg)
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

// ContainerConfigProvider is implemented by configs that carry a container
// section, such as config.AppConfig.
type ContainerConfigProvider interface {
	GetContainerConfig() *config.ContainerConfig
}

// ObservabilityConfigProvider is implemented by configs that carry tracing
// and metrics settings.
type ObservabilityConfigProvider interface {
	GetObservabilityConfig() *config.ObservabilityConfig
}
