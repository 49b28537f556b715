package engine

import (
	"time"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
	"github.com/Carmen-Shannon/prism-go/engine/subsystem"
	"github.com/Carmen-Shannon/prism-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a pre-configured window for the engine to drive its frame
// loop with.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine renders through. Required for
// Run; the frame ring's bindings and every subsystem's GPU resources are
// created against it during construction.
//
// Parameters:
//   - r: a pre-configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRegistry sets a pre-populated scene registry. When omitted the engine
// creates an empty one, reachable through Registry().
//
// Parameters:
//   - r: the scene registry to render each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRegistry(r *scene.Registry) EngineBuilderOption {
	return func(e *engine) {
		e.registry = r
	}
}

// WithCamera sets a custom camera. When omitted the engine creates one with
// default perspective parameters.
//
// Parameters:
//   - c: the camera to render frames with
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithController sets a custom keyboard controller for the camera pose. When
// omitted the engine creates one at the world origin.
//
// Parameters:
//   - c: the keyboard controller steering the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(c camera.KeyboardController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithSubsystems registers the render subsystems in order. Update order
// equals render order equals the order given here, and the set is fixed for
// the engine's lifetime.
//
// Parameters:
//   - subsystems: the subsystems, in update and render order
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSubsystems(subsystems ...subsystem.RenderSubsystem) EngineBuilderOption {
	return func(e *engine) {
		e.subsystems = append(e.subsystems, subsystems...)
	}
}

// WithSlotCount sets the number of frames in flight. Values < 1 are treated
// as the default (2).
//
// Parameters:
//   - count: the frame-resource ring slot count (default 2)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSlotCount(count int) EngineBuilderOption {
	return func(e *engine) {
		if count < 1 {
			count = 2
		}
		e.slotCount = count
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
