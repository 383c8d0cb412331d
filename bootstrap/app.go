package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/beankit/config"
	"github.com/kbukum/beankit/di"
	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
	"github.com/kbukum/beankit/version"
)

// App represents a generic application with uniform lifecycle management.
// The type parameter C is the config type, which must satisfy the Config interface.
// Any struct embedding config.ServiceConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnRegister(func(ctx context.Context, a *bootstrap.App[*config.AppConfig]) error {
//	    return di.Define[*Greeter]("greeter").Value(&Greeter{}).Register(a.Container)
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name      string
	Version   string
	Cfg       C
	Container *di.Container
	Logger    *logger.Logger
	Summary   *Summary

	eagerPolicy     di.EagerPolicy
	gracefulTimeout time.Duration
	quiet           bool
	onRegister      []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook

	telemetry []telemetryStarter
	shutdowns []func(context.Context) error
}

// telemetryStarter installs one telemetry provider and returns its shutdown.
// A nil shutdown means the provider is disabled.
type telemetryStarter func(ctx context.Context, base *config.ServiceConfig, oc *config.ObservabilityConfig) (func(context.Context) error, error)

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, initializes the logger and
// builds the container from the config's container section.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	if base.Version == "" {
		base.Version = version.Short()
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		eagerPolicy:     di.InRegistrationOrder,
		gracefulTimeout: 15 * time.Second,
		telemetry:       []telemetryStarter{startTracing, startMetrics},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	app.quiet = o.quiet

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	containerOpts := []di.Option{di.WithLogger(app.Logger)}
	if cp, ok := any(cfg).(ContainerConfigProvider); ok {
		cc := cp.GetContainerConfig()
		eager, err := di.ParseEagerPolicy(cc.EagerOrder)
		if err != nil {
			return nil, fmt.Errorf("container config: %w", err)
		}
		cycles, err := di.ParseCyclePolicy(cc.CyclePolicy)
		if err != nil {
			return nil, fmt.Errorf("container config: %w", err)
		}
		app.eagerPolicy = eager
		containerOpts = append(containerOpts, di.WithCyclePolicy(cycles))
	}

	if o.container != nil {
		app.Container = o.container
	} else {
		app.Container = di.New(append(containerOpts, o.containerOpts...)...)
	}

	app.Summary = NewSummary(base.Name, base.Version)
	if o.summaryOut != nil {
		app.Summary.SetOutput(o.summaryOut)
	}
	return app, nil
}

// OnRegister registers a callback that adds descriptors to the container.
// Callbacks run in order before the container starts.
func (a *App[C]) OnRegister(fn func(ctx context.Context, app *App[C]) error) {
	a.onRegister = append(a.onRegister, fn)
}

// EagerPolicy returns the order in which eager singletons are created.
func (a *App[C]) EagerPolicy() di.EagerPolicy {
	return a.eagerPolicy
}

// ReadyCheck verifies that the container is running.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	h := a.Container.CheckHealth(ctx)
	if h.Status != observability.HealthStatusUp {
		return fmt.Errorf("container %s: %s", h.Status, h.Message)
	}
	return nil
}

// Run executes the full application lifecycle for long-running services:
// Register → Startup → OnStart hooks → ReadyCheck → OnReady hooks →
// Block on signal → OnStop hooks → Close.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the full bootstrap lifecycle.
// Unlike Run(), it does not block on shutdown signals. It runs the task
// and closes the container when the task completes or the context is
// canceled (e.g., via SIGINT/SIGTERM).
//
// Example:
//
//	app, _ := bootstrap.NewApp(&cfg)
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    greeter := di.MustResolve[*Greeter](app.Container)
//	    return greeter.Greet(ctx)
//	})
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}

	return taskErr
}

// startup performs the common initialization sequence shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	fields := version.Get().Fields()
	fields["name"] = a.Name
	fields["version"] = a.Version
	fields["eager_order"] = a.eagerPolicy.String()
	a.Logger.Info("Starting application", fields)

	if err := a.initObservability(ctx); err != nil {
		return a.abort(fmt.Errorf("observability init failed: %w", err))
	}

	// Phase 1: Register descriptors
	if err := a.register(ctx); err != nil {
		return a.abort(fmt.Errorf("registration failed: %w", err))
	}

	// Phase 2: Start the container; eager singletons are created here
	a.Logger.Info("Phase 2: Starting container")
	if err := a.Container.Startup(ctx, a.eagerPolicy); err != nil {
		return a.abort(fmt.Errorf("container startup failed: %w", err))
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return a.abort(fmt.Errorf("onStart hook failed: %w", err))
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return a.abort(fmt.Errorf("onReady hook failed: %w", err))
	}

	a.Summary.SetStartupDuration(time.Since(start))
	if !a.quiet {
		a.DisplaySummary(ctx)
	}

	return nil
}

// register runs registration callbacks (Phase 1).
func (a *App[C]) register(ctx context.Context) error {
	if len(a.onRegister) == 0 {
		return nil
	}

	a.Logger.Info("Phase 1: Registering beans", logger.Fields(logger.FieldCount, len(a.onRegister)))

	for _, fn := range a.onRegister {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}

	a.Logger.Info("Phase 1: Registration complete", logger.Fields(logger.FieldCount, len(a.Container.Names())))
	return nil
}

// initObservability starts OTLP exporters when the config enables them.
func (a *App[C]) initObservability(ctx context.Context) error {
	op, ok := any(a.Cfg).(ObservabilityConfigProvider)
	if !ok {
		return nil
	}
	oc := op.GetObservabilityConfig()
	base := a.Cfg.GetServiceConfig()

	for _, start := range a.telemetry {
		shutdown, err := start(ctx, base, oc)
		if err != nil {
			return err
		}
		if shutdown != nil {
			a.shutdowns = append(a.shutdowns, shutdown)
		}
	}
	return nil
}

func startTracing(ctx context.Context, base *config.ServiceConfig, oc *config.ObservabilityConfig) (func(context.Context) error, error) {
	if !oc.Tracing.Enabled {
		return nil, nil
	}
	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       oc.Tracing.Endpoint,
		Insecure:       oc.Tracing.Insecure,
		SampleRate:     oc.Tracing.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	return tp.Shutdown, nil
}

func startMetrics(ctx context.Context, base *config.ServiceConfig, oc *config.ObservabilityConfig) (func(context.Context) error, error) {
	if !oc.Metrics.Enabled {
		return nil, nil
	}
	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    base.Name,
		ServiceVersion: base.Version,
		Environment:    base.Environment,
		Endpoint:       oc.Metrics.Endpoint,
		Insecure:       oc.Metrics.Insecure,
		Interval:       oc.Metrics.Interval,
	})
	if err != nil {
		return nil, err
	}
	return mp.Shutdown, nil
}

// DisplaySummary prints the bean table and container health.
func (a *App[C]) DisplaySummary(ctx context.Context) {
	a.Summary.DisplaySummary(ctx, a.Container)
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// abort releases whatever startup acquired and returns cause. OnStop hooks
// do not run because the application never became ready.
func (a *App[C]) abort(cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	if err := a.release(ctx); err != nil {
		a.Logger.Warn("Cleanup after failed startup reported errors", logger.Fields(logger.FieldError, err.Error()))
	}
	return cause
}

// stop runs OnStop hooks, closes the container and flushes exporters.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}

	if err := a.release(ctx); err != nil {
		a.Logger.Error("DI container close error", logger.Fields(logger.FieldError, err.Error()))
		errs = append(errs, err)
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}

// release closes the container and shuts down telemetry providers.
func (a *App[C]) release(ctx context.Context) error {
	err := a.Container.Close()
	if errors.Is(err, di.ErrContainerClosed) {
		err = nil
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if serr := a.shutdowns[i](ctx); serr != nil {
			a.Logger.Warn("Telemetry shutdown error", logger.Fields(logger.FieldError, serr.Error()))
		}
	}
	a.shutdowns = nil
	return err
}
