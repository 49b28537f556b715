// Package engine ties the window, renderer, frame ring, camera, scene
// registry, and render subsystems together into the per-frame orchestration
// loop. One Engine owns the whole frame lifecycle: acquire a slot, update
// subsystems, upload the shared global state, record the render pass, and
// present.
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/frame"
	"github.com/Carmen-Shannon/prism-go/engine/profiler"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
	"github.com/Carmen-Shannon/prism-go/engine/subsystem"
	"github.com/Carmen-Shannon/prism-go/engine/window"
)

// engine implements the Engine interface.
type engine struct {
	window   window.Window
	renderer renderer.Renderer

	ring     frame.Ring
	state    *frame.GPUGlobalState
	registry *scene.Registry

	camera     camera.Camera
	controller camera.KeyboardController

	// subsystems in registration order. Update order equals render order and
	// neither changes after construction.
	subsystems []subsystem.RenderSubsystem

	profiler         *profiler.Profiler
	profilingEnabled bool

	running         bool
	wg              sync.WaitGroup
	quitChannel     chan struct{}
	quitOnce        sync.Once          // Ensures quitChannel is only closed once
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	slotCount int
	lastFrame time.Time
	lastDelta float32

	skippedFrames    uint64
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point: it runs the frame loop and owns every
// per-frame resource. Construct it with NewEngine, populate the registry, and
// call Run; Run blocks until the window closes or Quit is called, then tears
// the GPU state down in order.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer driving the GPU backend.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Registry returns the scene registry rendered each frame.
	//
	// Returns:
	//   - *scene.Registry: the registry instance
	Registry() *scene.Registry

	// Camera returns the camera the frames are rendered with.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Controller returns the keyboard controller that steers the camera pose.
	//
	// Returns:
	//   - camera.KeyboardController: the controller instance
	Controller() camera.KeyboardController

	// Ring returns the frame-resource ring.
	//
	// Returns:
	//   - frame.Ring: the ring instance
	Ring() frame.Ring

	// SkippedFrames returns the number of frames skipped because the surface
	// was unavailable (outdated swapchain, minimized window).
	//
	// Returns:
	//   - uint64: the skipped frame count
	SkippedFrames() uint64

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (values <= 0 become the default 60)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// The tick loop runs in its own goroutine at the configured tick rate,
	// decoupled from the render frame rate.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called after each rendered
	// frame on the frame loop thread.
	//
	// Parameters:
	//   - callback: function to call after each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run starts the frame loop and blocks until the window closes or Quit is
	// called, then releases all GPU resources after the device goes idle.
	Run()

	// Quit signals the frame loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine wired to the given window and renderer. The
// frame ring's uniform bindings and every registered subsystem's GPU
// resources are created here, so NewEngine panics if any of that fails; a
// misconfigured engine has nothing sensible to fall back to.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, subsystems, slot count)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:     make(chan struct{}),
		tickRateChannel: make(chan time.Duration, 1),
		state:           frame.NewGlobalState(),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		slotCount:       2,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.registry == nil {
		e.registry = scene.NewRegistry()
	}
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.controller == nil {
		e.controller = camera.NewKeyboardController()
	}

	// Each ring slot owns a uniform binding sized for the global state, so
	// the frame being prepared never writes the buffer a frame in flight
	// still reads.
	if e.renderer != nil {
		bindings := make([]binding.Provider, e.slotCount)
		for i := range bindings {
			b, err := e.renderer.CreateUniformBinding(fmt.Sprintf("Frame Slot %d", i), uint64(e.state.Size()))
			if err != nil {
				panic(fmt.Sprintf("engine: failed to create frame slot binding: %v", err))
			}
			bindings[i] = b
		}
		e.ring = frame.NewRing(frame.WithBindings(bindings))

		for _, ss := range e.subsystems {
			if err := ss.Init(e.renderer, e.slotCount); err != nil {
				panic(fmt.Sprintf("engine: failed to init subsystem %s: %v", ss.Name(), err))
			}
		}
	} else {
		e.ring = frame.NewRing(frame.WithSlotCount(e.slotCount))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Registry() *scene.Registry {
	return e.registry
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() camera.KeyboardController {
	return e.controller
}

func (e *engine) Ring() frame.Ring {
	return e.ring
}

func (e *engine) SkippedFrames() uint64 {
	return e.skippedFrames
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Send to channel for immediate update in running engine loop
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// Run drives the frame loop on the calling goroutine; the window message
// pump must stay on the main thread, so the tick loop is what runs
// elsewhere. Blocks until the window closes or Quit is called.
func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}
	if e.renderer == nil {
		panic("engine: Run requires a renderer")
	}

	e.running = true
	e.wg.Add(2)
	go e.handleTick()
	go e.handleQuit()

	e.window.SetUpdateCallback(func() {
		// Recover from panics inside the frame loop so shutdown still runs
		// and releases GPU resources.
		defer func() {
			if r := recover(); r != nil {
				log.Printf("frame loop recovered from panic: %v", r)
				e.signalQuit()
			}
		}()

		select {
		case <-e.quitChannel:
			if err := e.window.Close(); err != nil {
				log.Printf("failed to close window: %v", err)
			}
			return
		default:
		}

		start := time.Now()
		if err := e.frame(); err != nil {
			log.Printf("frame failed: %v", err)
			e.signalQuit()
			return
		}

		if e.renderCallback != nil {
			e.renderCallback(e.lastDT())
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.running = false

	e.shutdown()
}

// Quit signals the frame loop to stop after the current frame.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleTick runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// lastDT returns the delta the most recent frame ran with.
func (e *engine) lastDT() float32 {
	return e.lastDelta
}

// frame runs one full frame: input, camera pose, slot acquisition, subsystem
// updates, global state upload, render pass recording, and present. A frame
// whose surface is unavailable is skipped entirely without consuming a slot.
func (e *engine) frame() error {
	// Unclamped frame delta, 0 on the first frame. A debugger pause or window
	// drag shows up as one large step.
	now := time.Now()
	var dt float32
	if !e.lastFrame.IsZero() {
		dt = float32(now.Sub(e.lastFrame).Seconds())
	}
	e.lastFrame = now
	e.lastDelta = dt

	if e.window != nil {
		e.controller.MoveInPlaneXZ(e.window, dt)
	}
	e.camera.SetViewYXZ(e.controller.Position(), e.controller.Rotation())
	e.camera.SetPerspective(e.renderer.AspectRatio())

	// Acquire the surface before the slot: a skipped frame must not consume
	// a slot or advance the frame counter.
	cmd, err := e.renderer.BeginFrame()
	if err != nil {
		if errors.Is(err, renderer.ErrSurfaceUnavailable) {
			e.skippedFrames++
			return nil
		}
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	slot := e.ring.AcquireSlot()
	ctx := &frame.Context{
		Slot:     slot,
		DT:       dt,
		Camera:   e.camera,
		Binding:  e.ring.Binding(slot),
		Registry: e.registry,
	}

	// Camera matrices land in the state before updates run so every
	// subsystem sees a coherent snapshot.
	e.state.Projection = e.camera.ProjectionMatrix()
	e.state.View = e.camera.ViewMatrix()
	e.state.InverseView = e.camera.InverseViewMatrix()

	for _, ss := range e.subsystems {
		ss.Update(ctx, e.state)
	}

	// One upload per frame, between the update and render phases.
	if ctx.Binding != nil {
		if err := ctx.Binding.Write(e.state.Marshal()); err != nil {
			return fmt.Errorf("failed to stage global state: %w", err)
		}
		ctx.Binding.Flush()
	}

	pass := e.renderer.BeginTargetPass(cmd)
	ctx.Pass = pass
	for _, ss := range e.subsystems {
		ss.Render(ctx)
	}
	e.renderer.EndTargetPass(pass)
	ctx.Pass = nil

	e.renderer.EndFrame(cmd)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	return nil
}

// shutdown releases every GPU resource the engine owns. The device is drained
// first so no in-flight frame still references a buffer being freed.
func (e *engine) shutdown() {
	if e.renderer != nil {
		e.renderer.WaitIdle()
	}

	for _, ss := range e.subsystems {
		ss.Release()
	}
	if e.ring != nil {
		e.ring.Release()
	}
	if e.registry != nil {
		e.registry.Clear()
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
}
