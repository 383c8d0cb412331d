package di

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
)

// ContainerState is the lifecycle phase of a Container.
type ContainerState int

const (
	ContainerRegistering ContainerState = iota // Accepting descriptors
	ContainerStarting                          // Startup in progress
	ContainerRunning                           // Lookups allowed
	ContainerFailed                            // Startup failed and was rolled back
	ContainerClosed                            // Closed, terminal
)

func (s ContainerState) String() string {
	switch s {
	case ContainerRegistering:
		return "registering"
	case ContainerStarting:
		return "starting"
	case ContainerRunning:
		return "running"
	case ContainerFailed:
		return "failed"
	case ContainerClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EagerPolicy orders eager singleton creation during Startup.
type EagerPolicy int

const (
	InRegistrationOrder EagerPolicy = iota
	InDependencyOrder
)

func (p EagerPolicy) String() string {
	if p == InDependencyOrder {
		return "dependency"
	}
	return "registration"
}

// Registration describes a registered descriptor for introspection.
type Registration struct {
	ID             string
	Type           reflect.Type
	Scope          Scope
	Init           InitMode
	Qualifier      string
	Primary        bool
	State          State
	Instantiations int64
}

// Container creates, wires, caches and tears down beans described by
// descriptors. It is safe for concurrent use once started.
type Container struct {
	id          string
	log         *logger.Logger
	tracer      trace.Tracer
	meter       metric.Meter
	metrics     *observability.ContainerMetrics
	cyclePolicy CyclePolicy
	rootCtx     context.Context

	registry *registry
	scopes   *scopeManager

	mu       sync.RWMutex
	state    ContainerState
	startErr error
	closed   atomic.Bool
}

// New creates an empty container in the registering state.
func New(opts ...Option) *Container {
	c := &Container{
		id:       uuid.NewString(),
		log:      logger.GetGlobalLogger(),
		tracer:   observability.Tracer(observability.TracerName),
		meter:    observability.Meter(observability.TracerName),
		rootCtx:  context.Background(),
		registry: newRegistry(),
		scopes:   newScopeManager(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("di").WithFields(logger.Fields(logger.FieldContainerID, c.id))

	metrics, err := observability.NewContainerMetrics(c.meter)
	if err != nil {
		c.log.Warn("container metrics disabled", logger.MergeWithError(nil, err))
	}
	c.metrics = metrics
	return c
}

// ID returns the unique id of this container instance.
func (c *Container) ID() string { return c.id }

// State returns the current lifecycle phase.
func (c *Container) State() ContainerState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Register adds a descriptor. It fails once Startup has been called.
func (c *Container) Register(d Descriptor) error {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()

	switch state {
	case ContainerRegistering:
	case ContainerClosed:
		return errClosed()
	default:
		return errAlreadyStarted(nil)
	}

	if err := c.registry.register(d); err != nil {
		return err
	}
	c.log.Debug("descriptor registered", logger.Fields(
		logger.FieldBeanID, d.ID,
		logger.FieldBeanType, typeName(d.Type),
		logger.FieldScope, d.Scope.String(),
	))
	return nil
}

// Startup validates the dependency graph and creates every eager singleton.
// On failure the singletons created so far are destroyed in reverse order
// and the container is left in the failed state.
func (c *Container) Startup(ctx context.Context, policy EagerPolicy) error {
	c.mu.Lock()
	switch c.state {
	case ContainerRegistering:
	case ContainerClosed:
		c.mu.Unlock()
		return errClosed()
	default:
		err := errAlreadyStarted(c.startErr)
		c.mu.Unlock()
		return err
	}
	c.state = ContainerStarting
	c.mu.Unlock()

	c.registry.seal()

	ctx, span := c.tracer.Start(ctx, observability.SpanStartup, trace.WithAttributes(
		attribute.String("di.container.id", c.id),
		attribute.String("di.eager_order", policy.String()),
		attribute.String("di.cycle_policy", c.cyclePolicy.String()),
	))
	defer span.End()
	start := time.Now()

	err := c.startup(ctx, policy)

	c.mu.Lock()
	if c.state == ContainerStarting {
		if err != nil {
			c.state = ContainerFailed
			c.startErr = err
		} else {
			c.state = ContainerRunning
		}
	}
	c.mu.Unlock()

	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.RecordStartup(ctx, "failed", elapsed)
		c.log.WithContext(ctx).Error("container startup failed", logger.MergeWithError(
			logger.DurationFields("startup", elapsed), err))
		return err
	}

	c.metrics.RecordStartup(ctx, "ok", elapsed)
	fields := logger.DurationFields("startup", elapsed)
	fields[logger.FieldCount] = c.scopes.size()
	c.log.WithContext(ctx).Info("container started", fields)
	return nil
}

func (c *Container) startup(ctx context.Context, policy EagerPolicy) error {
	g, err := buildGraph(c.registry)
	if err != nil {
		return err
	}
	if err := g.checkCycles(c.cyclePolicy); err != nil {
		return err
	}

	entries := g.nodes
	if policy == InDependencyOrder {
		entries = g.order()
	}

	for _, e := range entries {
		if !e.singleton() || e.desc.Init != Eager {
			continue
		}
		if _, err := c.resolveEntry(newChain(ctx), e); err != nil {
			c.scopes.createMu.Lock()
			records := c.scopes.drain()
			c.scopes.createMu.Unlock()

			c.log.Warn("rolling back eager singletons", logger.Fields(
				logger.FieldBeanID, e.desc.ID,
				logger.FieldCount, len(records),
			))
			if rollbackErr := c.destroyRecords(records); rollbackErr != nil {
				return errors.Join(err, rollbackErr)
			}
			return err
		}
	}
	return nil
}

// DependencyOrder returns descriptor ids with dependencies before
// dependents; ties keep registration order.
func (c *Container) DependencyOrder() ([]string, error) {
	g, err := buildGraph(c.registry)
	if err != nil {
		return nil, err
	}
	if err := g.checkCycles(c.cyclePolicy); err != nil {
		return nil, err
	}
	return ids(g.order()), nil
}

// GetByType returns the single bean of type t, using the primary flag to
// break ties.
func (c *Container) GetByType(t reflect.Type) (any, error) {
	return c.lookup(Dependency{Type: t})
}

// GetByQualifier returns the bean of type t selected by qualifier.
func (c *Container) GetByQualifier(t reflect.Type, qualifier string) (any, error) {
	return c.lookup(Dependency{Type: t, Qualifier: qualifier})
}

// GetByName returns the bean registered under id.
func (c *Container) GetByName(id string) (any, error) {
	ch, err := c.chainFor()
	if err != nil {
		return nil, err
	}
	e, err := c.registry.lookupByID(id)
	if err != nil {
		return nil, err
	}
	return c.resolveEntry(ch, e)
}

func (c *Container) lookup(dep Dependency) (any, error) {
	ch, err := c.chainFor()
	if err != nil {
		return nil, err
	}
	e, err := selectCandidate(dep, c.registry.lookupByType(dep.Type), "")
	if err != nil {
		return nil, err
	}
	return c.resolveEntry(ch, e)
}

// chainFor returns the chain a lookup runs in. A lookup from a lifecycle
// hook, on the goroutine already creating singletons, continues that chain,
// also during Startup.
func (c *Container) chainFor() (*chain, error) {
	gid := goroutineID()
	if held := c.scopes.heldBy(gid); held != nil {
		return held, nil
	}
	if err := c.checkRunning(); err != nil {
		return nil, err
	}
	ch := newChain(c.rootCtx)
	ch.gid = gid
	return ch, nil
}

func (c *Container) checkRunning() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch c.state {
	case ContainerRunning:
		return nil
	case ContainerClosed:
		return errClosed()
	case ContainerFailed:
		return errNotStarted(c.startErr)
	default:
		return errNotStarted(nil)
	}
}

// Destroy runs the pre-destroy hook of a prototype instance obtained from
// this container. Singletons are destroyed by Close.
func (c *Container) Destroy(id string, instance any) error {
	e, err := c.registry.lookupByID(id)
	if err != nil {
		return err
	}
	if e.singleton() {
		return errors.InvalidInput("id", "bean "+id+" is a singleton and is destroyed by Close")
	}
	if isNil(instance) {
		return errors.InvalidInput("instance", "must not be nil")
	}
	if err := runPreDestroy(&e.desc, instance); err != nil {
		return errDestroy(id, err)
	}
	c.metrics.RecordDestroy(c.rootCtx, id, e.desc.Scope.String())
	return nil
}

// Close runs pre-destroy on every active singleton, last created first,
// then clears the cache. Hook failures do not stop the sweep. A second call
// returns ErrContainerClosed.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.state == ContainerClosed {
		c.mu.Unlock()
		return errClosed()
	}
	c.state = ContainerClosed
	c.mu.Unlock()

	c.closed.Store(true)
	c.registry.seal()

	_, span := c.tracer.Start(c.rootCtx, observability.SpanClose, trace.WithAttributes(
		attribute.String("di.container.id", c.id),
	))
	defer span.End()

	c.scopes.createMu.Lock()
	records := c.scopes.drain()
	c.scopes.createMu.Unlock()

	err := c.destroyRecords(records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Error("container closed with errors", logger.Fields(
			logger.FieldCount, len(records),
			logger.FieldError, err.Error(),
		))
		return err
	}
	c.log.Info("container closed", logger.Fields(logger.FieldCount, len(records)))
	return nil
}

// Names returns descriptor ids in registration order.
func (c *Container) Names() []string {
	return c.registry.names()
}

// Registrations returns a snapshot of every descriptor and its bean state.
func (c *Container) Registrations() []Registration {
	entries := c.registry.entries()
	out := make([]Registration, len(entries))
	for i, e := range entries {
		out[i] = Registration{
			ID:             e.desc.ID,
			Type:           e.desc.Type,
			Scope:          e.desc.Scope,
			Init:           e.desc.Init,
			Qualifier:      e.desc.Qualifier,
			Primary:        e.desc.Primary,
			State:          e.getState(),
			Instantiations: e.instantiations.Load(),
		}
	}
	return out
}

// CheckHealth reports the container as a health component.
func (c *Container) CheckHealth(_ context.Context) observability.Health {
	state := c.State()
	h := observability.Health{
		Name: "di",
		Details: map[string]string{
			"container_id": c.id,
			"state":        state.String(),
		},
	}
	switch state {
	case ContainerRunning:
		h.Status = observability.HealthStatusUp
	case ContainerRegistering, ContainerStarting:
		h.Status = observability.HealthStatusDegraded
		h.Message = "container not started"
	default:
		h.Status = observability.HealthStatusDown
		h.Message = "container " + state.String()
	}
	return h
}
