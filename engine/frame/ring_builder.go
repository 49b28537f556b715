package frame

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
)

// defaultSlotCount is the number of frames in flight when not configured.
const defaultSlotCount = 2

// RingOption is a functional option used to configure a Ring during construction.
type RingOption func(*ring)

// NewRing creates a frame-resource ring with the provided options applied.
// The slot count defaults to 2 frames in flight and is fixed for the ring's
// lifetime. Panics when the configuration is inconsistent, since a ring with
// mismatched slots and bindings cannot serve any frame correctly.
//
// Parameters:
//   - options: a variadic list of RingOption functions to configure the Ring
//
// Returns:
//   - Ring: a new instance of Ring configured with the provided options
func NewRing(options ...RingOption) Ring {
	r := &ring{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(r)
	}
	if r.slotCount == 0 {
		if len(r.bindings) > 0 {
			r.slotCount = len(r.bindings)
		} else {
			r.slotCount = defaultSlotCount
		}
	}
	if r.slotCount < 1 {
		panic(fmt.Sprintf("frame: ring slot count %d is invalid", r.slotCount))
	}
	if len(r.bindings) > 0 && len(r.bindings) != r.slotCount {
		panic(fmt.Sprintf("frame: ring has %d slots but %d bindings", r.slotCount, len(r.bindings)))
	}
	return r
}

// WithSlotCount is an option builder that sets the number of frames in flight.
//
// Parameters:
//   - count: the slot count, at least 1
//
// Returns:
//   - RingOption: a function that sets the slot count
func WithSlotCount(count int) RingOption {
	return func(r *ring) {
		r.slotCount = count
	}
}

// WithBindings is an option builder that attaches one uniform binding per
// slot. When no slot count is configured, the binding count becomes the slot
// count.
//
// Parameters:
//   - bindings: the per-slot bindings, in slot order
//
// Returns:
//   - RingOption: a function that attaches the bindings
func WithBindings(bindings []binding.Provider) RingOption {
	return func(r *ring) {
		r.bindings = bindings
	}
}
