// Package observability wires OpenTelemetry tracing and metrics for beankit.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("beandemo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("beandemo"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewContainerMetrics(observability.Meter("beandemo"))
//	metrics.RecordInstantiation(ctx, "shapeRunner", "singleton")
//
// The di container records spans named di.startup, di.instantiate and
// di.close and the instruments di.instantiations, di.destroys and
// di.startup.duration. Without InitTracer/InitMeter the global providers
// are no-ops.
//
// Health:
//
//	health := observability.NewServiceHealth("beandemo", version.Short())
//	health.AddComponent(container.CheckHealth(ctx))
package observability
