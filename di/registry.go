package di

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/kbukum/beankit/validation"
)

// entry is the registry record of one descriptor.
type entry struct {
	desc  Descriptor
	index int

	state          atomic.Int32
	instantiations atomic.Int64
}

func (e *entry) setState(s State) { e.state.Store(int32(s)) }

func (e *entry) getState() State { return State(e.state.Load()) }

func (e *entry) singleton() bool { return e.desc.Scope == Singleton }

// registry stores descriptors by id and by type identifier, in registration order.
type registry struct {
	mu     sync.RWMutex
	byID   map[string]*entry
	byType map[reflect.Type][]*entry
	order  []*entry
	sealed bool
}

func newRegistry() *registry {
	return &registry{
		byID:   make(map[string]*entry),
		byType: make(map[reflect.Type][]*entry),
	}
}

func (r *registry) register(d Descriptor) error {
	if err := validateDescriptor(&d); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errAlreadyStarted(nil)
	}
	if _, exists := r.byID[d.ID]; exists {
		return errDuplicateID(d.ID)
	}

	keys := d.typeKeys()
	if d.Primary {
		for _, t := range keys {
			for _, other := range r.byType[t] {
				if other.desc.Primary {
					return errMultiplePrimary(t, other.desc.ID, d.ID)
				}
			}
		}
	}

	e := &entry{desc: d, index: len(r.order)}
	r.byID[d.ID] = e
	r.order = append(r.order, e)
	for _, t := range keys {
		r.byType[t] = append(r.byType[t], e)
	}
	return nil
}

// seal stops further registration. After sealing the maps are read-only.
func (r *registry) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *registry) lookupByID(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errNotFound(id)
	}
	return e, nil
}

// lookupByType returns candidates for t in registration order.
func (r *registry) lookupByType(t reflect.Type) []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*entry(nil), r.byType[t]...)
}

func (r *registry) entries() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*entry(nil), r.order...)
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	for i, e := range r.order {
		out[i] = e.desc.ID
	}
	return out
}

// descriptorTags is the tag-validated view of a Descriptor's plain fields.
type descriptorTags struct {
	ID        string `json:"id" validate:"required,beanid"`
	Qualifier string `json:"qualifier" validate:"omitempty,beanid"`
	Scope     string `json:"scope" validate:"oneof=singleton prototype"`
	Init      string `json:"init" validate:"oneof=eager lazy"`
}

func validateDescriptor(d *Descriptor) error {
	v := validation.New().Struct(descriptorTags{
		ID:        d.ID,
		Qualifier: d.Qualifier,
		Scope:     d.Scope.String(),
		Init:      d.Init.String(),
	})
	v.NotNil("type", d.Type == nil)
	v.NotNil("factory", d.Factory == nil)
	v.Check(!(d.shared && d.Scope == Prototype && isReference(d.Type)), "scope",
		"a fixed value of reference type cannot back a prototype")

	if d.Type != nil {
		for _, p := range d.Provides {
			if p == nil {
				v.AddError("provides", "contains a nil type")
				continue
			}
			v.Check(d.Type.AssignableTo(p), "provides", d.Type.String()+" is not assignable to "+p.String())
		}
	}
	for _, dep := range d.Dependencies {
		v.NotNil("dependencies", dep.Type == nil)
	}
	for _, inj := range d.Injections {
		v.NotNil("injections."+inj.Name, inj.Type == nil || inj.Apply == nil)
	}

	if appErr := v.Validate(); appErr != nil {
		return errInvalidDescriptor(d.ID, appErr)
	}
	return nil
}

// isReference reports whether values of t share state when copied.
func isReference(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	}
	return false
}
