package frame

import (
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
)

// ring is the implementation of the Ring interface.
type ring struct {
	mu *sync.Mutex

	slotCount int
	counter   uint64
	bindings  []binding.Provider
}

// Ring cycles a fixed set of per-frame resource slots so the CPU can prepare frame
// N+1 while the GPU consumes frame N. Each slot owns its own uniform binding; a
// frame only ever touches the resources of the slot it acquired, so no
// cross-frame synchronization of buffer contents is needed.
type Ring interface {
	// AcquireSlot returns the slot index for the next frame and advances the ring.
	// Slots are handed out in strict round-robin order: frame F gets slot F mod SlotCount.
	//
	// Returns:
	//   - int: the acquired slot index, in [0, SlotCount)
	AcquireSlot() int

	// SlotCount returns the number of slots in the ring.
	//
	// Returns:
	//   - int: the slot count
	SlotCount() int

	// FrameCount returns the number of slots acquired so far. The next AcquireSlot
	// call returns FrameCount() mod SlotCount.
	//
	// Returns:
	//   - uint64: the number of AcquireSlot calls made
	FrameCount() uint64

	// Binding returns the uniform binding owned by the given slot, or nil when the
	// ring was built without bindings.
	//
	// Parameters:
	//   - slot: the slot index, in [0, SlotCount)
	//
	// Returns:
	//   - binding.Provider: the slot's binding, or nil
	Binding(slot int) binding.Provider

	// Release releases every slot's binding. The ring must not be used afterward.
	Release()
}

var _ Ring = &ring{}

func (r *ring) AcquireSlot() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := int(r.counter % uint64(r.slotCount))
	r.counter++
	return slot
}

func (r *ring) SlotCount() int {
	return r.slotCount
}

func (r *ring) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter
}

func (r *ring) Binding(slot int) binding.Provider {
	if slot < 0 || slot >= len(r.bindings) {
		return nil
	}
	return r.bindings[slot]
}

func (r *ring) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bindings {
		if b != nil {
			b.Release()
		}
	}
	r.bindings = nil
}
