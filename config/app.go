package config

import (
	"time"

	"github.com/kbukum/beankit/validation"
)

// ContainerConfig configures the DI container built by bootstrap.
type ContainerConfig struct {
	// EagerOrder is "registration" or "dependency".
	EagerOrder string `yaml:"eager_order" mapstructure:"eager_order" validate:"oneof=registration dependency"`
	// CyclePolicy is "reject" or "allow_setter".
	CyclePolicy string `yaml:"cycle_policy" mapstructure:"cycle_policy" validate:"oneof=reject allow_setter"`
}

// ApplyDefaults fills empty fields.
func (c *ContainerConfig) ApplyDefaults() {
	if c.EagerOrder == "" {
		c.EagerOrder = "registration"
	}
	if c.CyclePolicy == "" {
		c.CyclePolicy = "reject"
	}
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// MetricsConfig configures OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ObservabilityConfig groups tracing and metrics settings.
type ObservabilityConfig struct {
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills empty endpoints and rates.
func (c *ObservabilityConfig) ApplyDefaults() {
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1.0
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
}

// AppConfig is the configuration of a beankit application.
type AppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Container     ContainerConfig     `yaml:"container" mapstructure:"container"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Container.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Container); err != nil {
		return err
	}
	return validation.Validate(&c.Observability)
}

// GetContainerConfig returns the container section. Promoted to structs
// embedding AppConfig so bootstrap can build the container from it.
func (c *AppConfig) GetContainerConfig() *ContainerConfig {
	return &c.Container
}

// GetObservabilityConfig returns the observability section.
func (c *AppConfig) GetObservabilityConfig() *ObservabilityConfig {
	return &c.Observability
}
