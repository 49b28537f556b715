package frame

import (
	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
)

// Context carries everything the render subsystems need for one frame. The
// orchestrator builds a fresh Context every iteration and threads it through
// the update and render phases; nothing may retain it past the frame's end,
// since the slot it names is recycled a few frames later.
type Context struct {
	// Slot is the frame-resource slot acquired for this frame.
	Slot int

	// DT is the wall-clock time in seconds since the previous frame started,
	// 0 on the first frame. Passed through unclamped, so a debugger pause or
	// window drag shows up as one large step.
	DT float32

	// Pass is the in-progress GPU command sequence for the frame's render
	// phase. Nil during the update phase, where drawing is a contract
	// violation anyway.
	Pass renderer.RenderPass

	// Camera supplies the projection, view, and inverse-view matrices the
	// frame is rendered with.
	Camera camera.Camera

	// Binding is the acquired slot's uniform binding; per-frame GPU data is
	// staged and flushed through it.
	Binding binding.Provider

	// Registry is the scene registry. Read-only for the duration of the
	// frame by contract.
	Registry *scene.Registry
}
