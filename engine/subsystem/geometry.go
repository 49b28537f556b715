package subsystem

import (
	_ "embed"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/frame"
	"github.com/Carmen-Shannon/prism-go/engine/mesh"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// GeometryPipelineKey is the renderer cache key for the lit mesh pipeline.
const GeometryPipelineKey = "geometry"

//go:embed assets/geometry.wgsl
var geometryShaderSource string

// drawEntry is one culled, staged draw recorded during Update and consumed by
// Render in the same frame.
type drawEntry struct {
	meshBinding binding.Provider
	indexCount  int
	offset      uint32 // dynamic offset into the object uniform buffer
}

// prepItem is the transform snapshot taken under the registry lock; the matrix
// builds run on the worker pool afterward without touching the entity again.
type prepItem struct {
	translation [3]float32
	rotation    [3]float32
	scale       [3]float32
	meshBinding binding.Provider
	indexCount  int
}

// geometrySubsystem draws every visible mesh-bearing entity with the lit
// geometry pipeline. During Update it frustum-culls the registry, builds model
// and normal matrices on the worker pool, and stages the per-object uniforms
// into the acquired slot's region of the object buffer; Render then replays
// the staged draws with one dynamic-offset bind per object.
type geometrySubsystem struct {
	mu *sync.Mutex

	renderer      renderer.Renderer
	objectBinding binding.Provider

	maxObjects int
	slotCount  int

	// prepPool runs the per-entity matrix builds in parallel during Update.
	// Workers persist across frames, avoiding per-frame goroutine spawn/teardown.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int

	staging []byte // one frame's marshaled object data, reused across frames
	prep    []prepItem
	draws   []drawEntry

	culled     int
	overflowed bool // capacity exceeded this frame; logged once per transition
}

// GeometrySubsystem is the RenderSubsystem that draws scene meshes, with
// read-only accessors for the previous Update's culling results.
type GeometrySubsystem interface {
	RenderSubsystem

	// DrawCount returns the number of draws staged by the most recent Update.
	//
	// Returns:
	//   - int: the staged draw count
	DrawCount() int

	// CulledCount returns the number of mesh entities rejected by the frustum
	// test in the most recent Update.
	//
	// Returns:
	//   - int: the culled entity count
	CulledCount() int
}

var _ GeometrySubsystem = &geometrySubsystem{}

func (g *geometrySubsystem) Name() string {
	return "geometry"
}

func (g *geometrySubsystem) Init(r renderer.Renderer, slotCount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if slotCount < 1 {
		return fmt.Errorf("geometry subsystem: slot count must be at least 1, got %d", slotCount)
	}
	g.renderer = r
	g.slotCount = slotCount

	source := frame.GPUGlobalStateSource + "\n" + geometryShaderSource
	vs := shader.NewShader(GeometryPipelineKey+"_vs", shader.ShaderTypeVertex, source,
		shader.WithVertexLayouts(mesh.VertexBufferLayout()),
		shader.WithBindGroupLayoutDescriptor(0, globalStateLayout()),
		shader.WithBindGroupLayoutDescriptor(1, objectDataLayout()),
	)
	fs := shader.NewShader(GeometryPipelineKey+"_fs", shader.ShaderTypeFragment, source)

	p := pipeline.NewPipeline(GeometryPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return fmt.Errorf("geometry subsystem: failed to register pipeline: %w", err)
	}

	// Each frame slot owns its own region of the object buffer so a frame
	// being prepared never writes bytes a frame in flight still reads.
	ob, err := r.CreateDynamicUniformBinding("Geometry Objects", ObjectStride, slotCount*g.maxObjects)
	if err != nil {
		return fmt.Errorf("geometry subsystem: failed to create object uniform: %w", err)
	}
	g.objectBinding = ob
	g.staging = make([]byte, g.maxObjects*ObjectStride)

	return nil
}

func (g *geometrySubsystem) Update(ctx *frame.Context, _ *frame.GPUGlobalState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.draws = g.draws[:0]
	g.prep = g.prep[:0]
	g.culled = 0
	if ctx == nil || ctx.Registry == nil || ctx.Camera == nil {
		return
	}

	vp := ctx.Camera.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(vp[:])

	// Snapshot the visible entities in registry order under the registry's
	// read lock; everything after this loop works on the snapshot.
	overflow := 0
	ctx.Registry.ForEach(func(e scene.Entity) {
		h := e.Mesh()
		if h == nil {
			return
		}
		m := h.Mesh()

		t := e.Translation()
		s := e.Scale()
		radius := m.BoundingRadius() * maxAbsScale(s)
		if !frustum.ContainsSphere(t[0], t[1], t[2], radius) {
			g.culled++
			return
		}
		if len(g.prep) >= g.maxObjects {
			overflow++
			return
		}
		g.prep = append(g.prep, prepItem{
			translation: t,
			rotation:    e.Rotation(),
			scale:       s,
			meshBinding: m.Binding(),
			indexCount:  m.IndexCount(),
		})
	})

	if overflow > 0 && !g.overflowed {
		log.Printf("[GeometrySubsystem] object capacity %d exceeded, dropping %d draws", g.maxObjects, overflow)
		g.overflowed = true
	} else if overflow == 0 {
		g.overflowed = false
	}

	n := len(g.prep)
	if n == 0 {
		return
	}

	// Matrix builds are independent per entity; fan them out to the pool.
	// Each task writes a disjoint window of the staging buffer.
	var wg sync.WaitGroup
	taskID := 0
	for i := range g.prep {
		wg.Add(1)
		idx := i
		item := g.prep[i]
		id := taskID
		taskID++
		g.prepPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				var data GPUObjectData
				common.BuildModelMatrix(data.Model[:],
					item.translation[0], item.translation[1], item.translation[2],
					item.rotation[0], item.rotation[1], item.rotation[2],
					item.scale[0], item.scale[1], item.scale[2],
				)
				common.BuildNormalMatrix(data.Normal[:],
					item.rotation[0], item.rotation[1], item.rotation[2],
					item.scale[0], item.scale[1], item.scale[2],
				)
				data.MarshalInto(g.staging[idx*ObjectStride:])
				return nil, nil
			},
		})
	}
	wg.Wait()

	base := uint64(ctx.Slot) * uint64(g.maxObjects) * ObjectStride
	g.renderer.WriteBuffers([]binding.BufferWrite{{
		Provider: g.objectBinding,
		Offset:   base,
		Data:     g.staging[:n*ObjectStride],
	}})

	for i := range g.prep {
		g.draws = append(g.draws, drawEntry{
			meshBinding: g.prep[i].meshBinding,
			indexCount:  g.prep[i].indexCount,
			offset:      uint32(base) + uint32(i*ObjectStride),
		})
	}
}

func (g *geometrySubsystem) Render(ctx *frame.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ctx == nil || ctx.Pass == nil || len(g.draws) == 0 {
		return
	}
	p := g.renderer.Pipeline(GeometryPipelineKey)
	if p == nil {
		return
	}

	ctx.Pass.SetPipeline(p)
	if ctx.Binding != nil {
		ctx.Pass.SetBindGroup(0, ctx.Binding.BindGroup(), nil)
	}
	for _, d := range g.draws {
		ctx.Pass.SetBindGroup(1, g.objectBinding.BindGroup(), []uint32{d.offset})
		ctx.Pass.SetVertexBuffer(0, d.meshBinding.VertexBuffer())
		ctx.Pass.SetIndexBuffer(d.meshBinding.IndexBuffer(), wgpu.IndexFormatUint32)
		ctx.Pass.DrawIndexed(uint32(d.indexCount), 1, 0, 0, 0)
	}
}

func (g *geometrySubsystem) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.objectBinding != nil {
		g.objectBinding.Release()
		g.objectBinding = nil
	}
}

func (g *geometrySubsystem) DrawCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.draws)
}

func (g *geometrySubsystem) CulledCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.culled
}

// maxAbsScale returns the largest absolute scale component, used to grow the
// bounding sphere conservatively for non-uniform scales.
func maxAbsScale(s [3]float32) float32 {
	m := float32(0)
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
