package scene

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry is an insertion-ordered collection of scene entities keyed by
// identifier. Identifiers are assigned on insertion from an atomic counter and
// never reused while the entity stays registered.
//
// The registry is mutated only between frames. During a frame subsystems share
// it read-only, so iteration order is stable for the whole frame; the internal
// mutex guards the between-frame mutations, not per-frame reads.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64

	order   []uint64
	objects map[uint64]Entity
}

// NewRegistry creates an empty scene registry.
//
// Returns:
//   - *Registry: a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		objects: make(map[uint64]Entity),
	}
}

// Insert adds an entity to the registry, assigning its identifier when it does
// not already carry one. Panics when an entity with the same identifier is
// already registered, since duplicate identifiers break every consumer that
// keys on them.
//
// Parameters:
//   - e: the entity to insert
//
// Returns:
//   - uint64: the identifier the entity is registered under
func (r *Registry) Insert(e Entity) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID() == 0 {
		e.SetID(atomic.AddUint64(&r.nextID, 1))
	}
	id := e.ID()
	if _, exists := r.objects[id]; exists {
		panic(fmt.Sprintf("scene: entity ID %d is already registered", id))
	}
	r.objects[id] = e
	r.order = append(r.order, id)
	return id
}

// Get looks up an entity by identifier.
//
// Parameters:
//   - id: the identifier to look up
//
// Returns:
//   - Entity: the registered entity, or nil if not found
//   - bool: true if the entity was found
func (r *Registry) Get(id uint64) (Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.objects[id]
	return e, ok
}

// Remove deletes an entity from the registry and releases its mesh handle.
// Must only be called between frames; removing an entity a subsystem is
// reading mid-frame is a data race by contract.
//
// Parameters:
//   - id: the identifier of the entity to remove
//
// Returns:
//   - bool: true if an entity was removed
func (r *Registry) Remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.objects[id]
	if !ok {
		return false
	}
	delete(r.objects, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if h := e.Mesh(); h != nil {
		h.Release()
	}
	return true
}

// Len returns the number of registered entities.
//
// Returns:
//   - int: the entity count
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// ForEach calls fn for every registered entity in insertion order.
//
// Parameters:
//   - fn: the function to call with each entity
func (r *Registry) ForEach(fn func(Entity)) {
	r.mu.RLock()
	ids := make([]uint64, len(r.order))
	copy(ids, r.order)
	r.mu.RUnlock()

	for _, id := range ids {
		r.mu.RLock()
		e, ok := r.objects[id]
		r.mu.RUnlock()
		if ok {
			fn(e)
		}
	}
}

// Clear removes every entity from the registry, releasing all mesh handles.
// Must only be called between frames.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.objects {
		if h := e.Mesh(); h != nil {
			h.Release()
		}
	}
	r.objects = make(map[uint64]Entity)
	r.order = nil
}
