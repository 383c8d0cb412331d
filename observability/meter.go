package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/beankit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
	// Reader overrides the periodic OTLP reader, mostly for tests.
	Reader sdkmetric.Reader
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	reader := config.Reader
	if reader == nil {
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(config.Endpoint),
		}
		if config.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}

		exporter, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}

		readerOpts := []sdkmetric.PeriodicReaderOption{}
		if config.Interval > 0 {
			readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
		}
		reader = sdkmetric.NewPeriodicReader(exporter, readerOpts...)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Container metric names.
const (
	MetricInstantiations  = "di.instantiations"
	MetricDestroys        = "di.destroys"
	MetricStartupDuration = "di.startup.duration"
)

// ContainerMetrics holds the instruments recorded by a DI container.
// A nil *ContainerMetrics records nothing.
type ContainerMetrics struct {
	instantiations  metric.Int64Counter
	destroys        metric.Int64Counter
	startupDuration metric.Float64Histogram
}

// NewContainerMetrics creates container instruments on the given meter.
func NewContainerMetrics(meter metric.Meter) (*ContainerMetrics, error) {
	instantiations, err := meter.Int64Counter(MetricInstantiations,
		metric.WithDescription("Number of bean instances created"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricInstantiations, err)
	}

	destroys, err := meter.Int64Counter(MetricDestroys,
		metric.WithDescription("Number of bean instances destroyed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDestroys, err)
	}

	startupDuration, err := meter.Float64Histogram(MetricStartupDuration,
		metric.WithDescription("Duration of container startup in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricStartupDuration, err)
	}

	return &ContainerMetrics{
		instantiations:  instantiations,
		destroys:        destroys,
		startupDuration: startupDuration,
	}, nil
}

// RecordInstantiation counts one created instance.
func (m *ContainerMetrics) RecordInstantiation(ctx context.Context, beanID, scope string) {
	if m == nil {
		return
	}
	m.instantiations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("bean", beanID),
		attribute.String("scope", scope),
	))
}

// RecordDestroy counts one destroyed instance.
func (m *ContainerMetrics) RecordDestroy(ctx context.Context, beanID, scope string) {
	if m == nil {
		return
	}
	m.destroys.Add(ctx, 1, metric.WithAttributes(
		attribute.String("bean", beanID),
		attribute.String("scope", scope),
	))
}

// RecordStartup records how long a startup pass took and whether it succeeded.
func (m *ContainerMetrics) RecordStartup(ctx context.Context, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.startupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
}
