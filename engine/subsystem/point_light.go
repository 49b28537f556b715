package subsystem

import (
	_ "embed"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/frame"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
)

// PointLightPipelineKey is the renderer cache key for the light billboard pipeline.
const PointLightPipelineKey = "point_light"

//go:embed assets/point_light.wgsl
var pointLightShaderSource string

// pointLightSubsystem owns the lighting portion of the per-frame global state
// and draws a camera-facing billboard for every active light. It is the one
// subsystem that writes to the shared state during the update phase: each
// frame it resets the light list and refills it from the registry in insertion
// order, orbiting the resolved positions around the world Y axis. Entity
// translations are never modified.
type pointLightSubsystem struct {
	mu *sync.Mutex

	renderer renderer.Renderer

	orbitSpeed float32
	angle      float32

	lastCount  uint32
	overflowed bool // light cap exceeded this frame; logged once per transition
}

// PointLightSubsystem is the RenderSubsystem that maintains the global light
// list and draws the light billboards.
type PointLightSubsystem interface {
	RenderSubsystem

	// OrbitSpeed returns the orbit angular speed in radians per second.
	//
	// Returns:
	//   - float32: the orbit speed
	OrbitSpeed() float32

	// ActiveLightCount returns the number of lights written to the global
	// state by the most recent Update.
	//
	// Returns:
	//   - uint32: the active light count
	ActiveLightCount() uint32
}

var _ PointLightSubsystem = &pointLightSubsystem{}

func (p *pointLightSubsystem) Name() string {
	return "point_light"
}

func (p *pointLightSubsystem) Init(r renderer.Renderer, _ int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.renderer = r

	source := frame.GPUGlobalStateSource + "\n" + pointLightShaderSource
	vs := shader.NewShader(PointLightPipelineKey+"_vs", shader.ShaderTypeVertex, source,
		shader.WithBindGroupLayoutDescriptor(0, globalStateLayout()),
	)
	fs := shader.NewShader(PointLightPipelineKey+"_fs", shader.ShaderTypeFragment, source)

	pl := pipeline.NewPipeline(PointLightPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendEnabled(true),
	)
	if err := r.RegisterPipelines(pl); err != nil {
		return fmt.Errorf("point light subsystem: failed to register pipeline: %w", err)
	}

	return nil
}

func (p *pointLightSubsystem) Update(ctx *frame.Context, state *frame.GPUGlobalState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx == nil || state == nil {
		return
	}

	// Advance the shared orbit, wrapping so the angle never grows unbounded.
	p.angle += p.orbitSpeed * ctx.DT
	p.angle = float32(math.Mod(float64(p.angle), 2*math.Pi))

	sin := float32(math.Sin(float64(p.angle)))
	cos := float32(math.Cos(float64(p.angle)))

	state.ResetLights()
	dropped := 0
	if ctx.Registry != nil {
		ctx.Registry.ForEach(func(e scene.Entity) {
			l := e.Light()
			if l == nil {
				return
			}
			t := e.Translation()
			c := e.Color()

			// Orbit about the world Y axis. Only the resolved position
			// reaches the GPU; the entity's translation stays put.
			resolved := [3]float32{
				cos*t[0] - sin*t[2],
				t[1],
				sin*t[0] + cos*t[2],
			}

			if !state.AppendLight(frame.GPUPointLight{
				Position: [4]float32{resolved[0], resolved[1], resolved[2], l.Radius},
				Color:    [4]float32{c[0], c[1], c[2], l.Intensity},
			}) {
				dropped++
			}
		})
	}

	if dropped > 0 && !p.overflowed {
		log.Printf("[PointLightSubsystem] light cap %d exceeded, dropping %d lights", frame.MaxGlobalLights, dropped)
		p.overflowed = true
	} else if dropped == 0 {
		p.overflowed = false
	}

	p.lastCount = state.LightCount
}

func (p *pointLightSubsystem) Render(ctx *frame.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ctx == nil || ctx.Pass == nil || p.lastCount == 0 {
		return
	}
	pl := p.renderer.Pipeline(PointLightPipelineKey)
	if pl == nil {
		return
	}

	ctx.Pass.SetPipeline(pl)
	if ctx.Binding != nil {
		ctx.Pass.SetBindGroup(0, ctx.Binding.BindGroup(), nil)
	}
	// Six vertices per billboard quad, one instance per active light.
	ctx.Pass.Draw(6, p.lastCount, 0, 0)
}

func (p *pointLightSubsystem) Release() {
	// The light pipeline lives in the renderer's cache; nothing to free here.
}

func (p *pointLightSubsystem) OrbitSpeed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.orbitSpeed
}

func (p *pointLightSubsystem) ActiveLightCount() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCount
}
