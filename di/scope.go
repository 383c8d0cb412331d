package di

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/kbukum/beankit/logger"
)

// instanceRecord is a cached singleton together with its creation order.
type instanceRecord struct {
	entry    *entry
	instance any
	order    int64
}

// scopeManager caches singletons. createMu serializes singleton creation
// across the whole container; it is taken once per resolution chain.
// owner and holder identify the goroutine and chain holding createMu so a
// lookup made from a lifecycle hook joins that chain instead of re-locking.
type scopeManager struct {
	createMu sync.Mutex
	owner    atomic.Uint64
	holder   *chain

	mu      sync.RWMutex
	cache   map[string]*instanceRecord
	created []*instanceRecord
	counter int64
}

func newScopeManager() *scopeManager {
	return &scopeManager{cache: make(map[string]*instanceRecord)}
}

func (s *scopeManager) cached(id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.cache[id]
	if !ok {
		return nil, false
	}
	return rec.instance, true
}

func (s *scopeManager) lock(ch *chain) {
	if ch.gid == 0 {
		ch.gid = goroutineID()
	}
	s.createMu.Lock()
	s.owner.Store(ch.gid)
	s.holder = ch
	ch.locked = true
}

func (s *scopeManager) unlock(ch *chain) {
	ch.locked = false
	s.holder = nil
	s.owner.Store(0)
	s.createMu.Unlock()
}

// heldBy returns the chain holding createMu if goroutine gid holds it.
// Only the owning goroutine can match, so holder is never read concurrently
// with a write.
func (s *scopeManager) heldBy(gid uint64) *chain {
	if gid == 0 || s.owner.Load() != gid {
		return nil
	}
	return s.holder
}

// activate caches a fully initialized singleton. Callers hold createMu.
func (s *scopeManager) activate(e *entry, instance any) *instanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	rec := &instanceRecord{entry: e, instance: instance, order: s.counter}
	s.cache[e.desc.ID] = rec
	s.created = append(s.created, rec)
	e.setState(StateActive)
	return rec
}

// evict removes records from the cache. Callers hold createMu.
func (s *scopeManager) evict(records []*instanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gone := make(map[*instanceRecord]bool, len(records))
	for _, rec := range records {
		gone[rec] = true
		if s.cache[rec.entry.desc.ID] == rec {
			delete(s.cache, rec.entry.desc.ID)
		}
	}
	kept := s.created[:0]
	for _, rec := range s.created {
		if !gone[rec] {
			kept = append(kept, rec)
		}
	}
	s.created = kept
}

// drain empties the cache and returns its records, last created first.
func (s *scopeManager) drain() []*instanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*instanceRecord, len(s.created))
	for i, rec := range s.created {
		out[len(s.created)-1-i] = rec
	}
	s.cache = make(map[string]*instanceRecord)
	s.created = nil
	return out
}

func (s *scopeManager) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// chain is the state of one top-level resolution and everything it
// triggers. Nested resolutions reuse it instead of re-locking.
type chain struct {
	ctx      context.Context
	gid      uint64
	locked   bool
	path     []string
	building map[string]bool
	// early holds raw singletons whose injections have not run yet.
	early map[string]any
	// exposed maps a raw singleton handed out through early to the length
	// of activated at that moment.
	exposed   map[string]int
	activated []*instanceRecord
}

func newChain(ctx context.Context) *chain {
	if ctx == nil {
		ctx = context.Background()
	}
	return &chain{
		ctx:      ctx,
		building: make(map[string]bool),
		early:    make(map[string]any),
		exposed:  make(map[string]int),
	}
}

// goroutineID parses the current goroutine's id from its stack header.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (ch *chain) enter(id string) error {
	if ch.building[id] {
		start := 0
		for i, p := range ch.path {
			if p == id {
				start = i
				break
			}
		}
		cycle := append(append([]string(nil), ch.path[start:]...), id)
		return errCircular(cycle)
	}
	ch.building[id] = true
	ch.path = append(ch.path, id)
	return nil
}

func (ch *chain) leave(id string) {
	delete(ch.building, id)
	delete(ch.early, id)
	ch.path = ch.path[:len(ch.path)-1]
}

// resolveEntry returns the instance for e according to its scope.
// Singletons follow check, lock, check, create.
func (c *Container) resolveEntry(ch *chain, e *entry) (any, error) {
	id := e.desc.ID
	if !e.singleton() {
		return c.instantiate(ch, e)
	}

	if inst, ok := c.scopes.cached(id); ok {
		return inst, nil
	}
	if raw, ok := ch.early[id]; ok {
		if _, seen := ch.exposed[id]; !seen {
			ch.exposed[id] = len(ch.activated)
		}
		return raw, nil
	}

	if !ch.locked {
		c.scopes.lock(ch)
		defer c.scopes.unlock(ch)

		if c.closed.Load() {
			return nil, errClosed()
		}
		if inst, ok := c.scopes.cached(id); ok {
			return inst, nil
		}
	}

	inst, err := c.instantiate(ch, e)
	mark, exposed := ch.exposed[id]
	delete(ch.exposed, id)
	if err != nil {
		e.setState(StateRegistered)
		if exposed {
			c.discardActivated(ch, id, mark)
		}
		return nil, err
	}
	rec := c.scopes.activate(e, inst)
	ch.activated = append(ch.activated, rec)
	c.log.Debug("singleton active", beanFields(e, rec.order))
	return inst, nil
}

// discardActivated evicts the singletons activated in ch since mark, last
// created first, and runs their pre-destroy hooks. They may hold a raw
// reference to failed, whose creation did not complete. Hook failures are
// logged.
func (c *Container) discardActivated(ch *chain, failed string, mark int) {
	if mark >= len(ch.activated) {
		return
	}
	records := make([]*instanceRecord, 0, len(ch.activated)-mark)
	for i := len(ch.activated) - 1; i >= mark; i-- {
		records = append(records, ch.activated[i])
	}
	ch.activated = ch.activated[:mark]

	c.scopes.evict(records)
	c.log.Warn("discarding singletons bound to a failed bean", logger.Fields(
		logger.FieldBeanID, failed,
		logger.FieldCount, len(records),
	))
	// destroyRecords logs each hook failure.
	_ = c.destroyRecords(records)
	for _, rec := range records {
		rec.entry.setState(StateRegistered)
	}
}
