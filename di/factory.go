package di

import (
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/observability"
)

// instantiate builds one instance of e: constructor dependencies, factory,
// injections, post-construct. Errors from nested resolution come back as is.
func (c *Container) instantiate(ch *chain, e *entry) (any, error) {
	d := &e.desc
	if err := ch.enter(d.ID); err != nil {
		return nil, err
	}
	defer ch.leave(d.ID)

	parent := ch.ctx
	ctx, span := c.tracer.Start(parent, observability.SpanInstantiate, trace.WithAttributes(
		attribute.String("di.bean.id", d.ID),
		attribute.String("di.bean.type", typeName(d.Type)),
		attribute.String("di.bean.scope", d.Scope.String()),
	))
	ch.ctx = ctx
	defer func() {
		ch.ctx = parent
		span.End()
	}()

	inst, err := c.build(ch, e)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.metrics.RecordInstantiation(ctx, d.ID, d.Scope.String())
	return inst, nil
}

func (c *Container) build(ch *chain, e *entry) (any, error) {
	d := &e.desc
	if e.singleton() {
		e.setState(StateResolving)
	}

	args := make(Args, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		v, err := c.resolveDependency(ch, dep, d.ID)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	e.instantiations.Add(1)
	inst, err := d.Factory(args)
	if err != nil {
		return nil, errInstantiation(d.ID, "factory", err)
	}
	if isNil(inst) {
		return nil, errInstantiation(d.ID, "factory", errors.New(errors.ErrCodeInternal, "factory returned nil"))
	}
	if e.singleton() {
		e.setState(StateInstantiated)
		if c.cyclePolicy == AllowSetterCycles && len(d.Injections) > 0 {
			ch.early[d.ID] = inst
		}
	}

	for _, inj := range d.Injections {
		v, err := c.resolveDependency(ch, inj.Dependency, d.ID)
		if err != nil {
			return nil, err
		}
		if err := inj.Apply(inst, v); err != nil {
			if _, ok := errors.AsAppError(err); ok {
				return nil, err
			}
			return nil, errInstantiation(d.ID, inj.Kind.String()+" "+inj.Name, err)
		}
	}
	if e.singleton() {
		e.setState(StateInitialized)
	}

	if err := runPostConstruct(d, inst); err != nil {
		return nil, errInstantiation(d.ID, "post-construct", err)
	}

	c.log.Debug("bean instantiated", logger.Fields(
		logger.FieldBeanID, d.ID,
		logger.FieldBeanType, typeName(d.Type),
		logger.FieldScope, d.Scope.String(),
	))
	return inst, nil
}

// resolveDependency selects the target of dep and resolves it within ch.
func (c *Container) resolveDependency(ch *chain, dep Dependency, requiredBy string) (any, error) {
	target, err := selectCandidate(dep, c.registry.lookupByType(dep.Type), requiredBy)
	if err != nil {
		return nil, err
	}
	return c.resolveEntry(ch, target)
}

func runPostConstruct(d *Descriptor, inst any) error {
	if d.PostConstruct != nil {
		return d.PostConstruct(inst)
	}
	if pc, ok := inst.(PostConstructor); ok {
		return pc.PostConstruct()
	}
	return nil
}

func runPreDestroy(d *Descriptor, inst any) error {
	if d.PreDestroy != nil {
		return d.PreDestroy(inst)
	}
	if pd, ok := inst.(PreDestroyer); ok {
		return pd.PreDestroy()
	}
	return nil
}

// destroyRecords runs pre-destroy over records in the given order. Failures
// do not stop the sweep; they are joined into the result.
func (c *Container) destroyRecords(records []*instanceRecord) error {
	var errs []error
	for _, rec := range records {
		d := &rec.entry.desc
		if err := runPreDestroy(d, rec.instance); err != nil {
			c.log.Warn("pre-destroy failed", logger.MergeWithError(beanFields(rec.entry, rec.order), err))
			errs = append(errs, errDestroy(d.ID, err))
		}
		rec.entry.setState(StateDestroyed)
		c.metrics.RecordDestroy(c.rootCtx, d.ID, d.Scope.String())
	}
	return errors.Join(errs...)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func beanFields(e *entry, order int64) map[string]interface{} {
	return logger.Fields(
		logger.FieldBeanID, e.desc.ID,
		logger.FieldScope, e.desc.Scope.String(),
		logger.FieldCreationOrder, order,
	)
}
