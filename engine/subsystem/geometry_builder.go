package subsystem

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// GeometrySubsystemBuilderOption is a functional option used to configure a
// GeometrySubsystem during construction.
type GeometrySubsystemBuilderOption func(*geometrySubsystem)

// NewGeometrySubsystem creates the geometry subsystem with the provided
// options applied. GPU resources are not created here; the engine calls Init
// before the first frame.
//
// Parameters:
//   - options: variadic list of GeometrySubsystemBuilderOption functions
//
// Returns:
//   - GeometrySubsystem: the newly created subsystem
func NewGeometrySubsystem(options ...GeometrySubsystemBuilderOption) GeometrySubsystem {
	g := &geometrySubsystem{
		mu:          &sync.Mutex{},
		maxObjects:  1024,
		prepWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, opt := range options {
		opt(g)
	}

	// Queue size of 256 accommodates typical visible-set sizes with headroom.
	g.prepPool = worker.NewDynamicWorkerPool(g.prepWorkers, 256, 1*time.Second)

	return g
}

// WithMaxObjects sets the per-frame cap on staged draws. The object uniform
// buffer is sized as slotCount * n entries at Init. Draws beyond the cap are
// dropped for the frame. Defaults to 1024.
//
// Parameters:
//   - n: the maximum number of objects per frame (minimum 1)
//
// Returns:
//   - GeometrySubsystemBuilderOption: option function to apply
func WithMaxObjects(n int) GeometrySubsystemBuilderOption {
	return func(g *geometrySubsystem) {
		if n < 1 {
			n = 1
		}
		g.maxObjects = n
	}
}

// WithPrepWorkers sets the number of worker goroutines used for the parallel
// matrix-build phase of Update. Defaults to runtime.NumCPU()-1. Lower values
// reduce scheduling overhead for small scenes.
//
// Parameters:
//   - n: the number of prep workers (minimum 1)
//
// Returns:
//   - GeometrySubsystemBuilderOption: option function to apply
func WithPrepWorkers(n int) GeometrySubsystemBuilderOption {
	return func(g *geometrySubsystem) {
		if n < 1 {
			n = 1
		}
		g.prepWorkers = n
	}
}
