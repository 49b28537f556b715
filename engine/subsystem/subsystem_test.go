package subsystem

import (
	"testing"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/frame"
	"github.com/Carmen-Shannon/prism-go/engine/mesh"
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeRenderer satisfies renderer.Renderer without a GPU. Registered pipelines
// are cached CPU-side and buffer writes are recorded for assertions.
type fakeRenderer struct {
	pipelines map[string]pipeline.Pipeline
	writes    []binding.BufferWrite
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: make(map[string]pipeline.Pipeline)}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline   { return f.pipelines[key] }
func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline { return f.pipelines }
func (f *fakeRenderer) SetPipeline(key string, p pipeline.Pipeline) {
	f.pipelines[key] = p
}
func (f *fakeRenderer) SetPipelines(ps map[string]pipeline.Pipeline) { f.pipelines = ps }

func (f *fakeRenderer) RegisterPipelines(ps ...pipeline.Pipeline) error {
	for _, p := range ps {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int)            {}
func (f *fakeRenderer) AspectRatio() float32                { return 1 }
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) CreateUniformBinding(label string, size uint64) (binding.Provider, error) {
	return binding.NewProvider(label, binding.WithSize(size)), nil
}

func (f *fakeRenderer) CreateDynamicUniformBinding(label string, stride uint64, count int) (binding.Provider, error) {
	return binding.NewProvider(label, binding.WithSize(stride*uint64(count))), nil
}

func (f *fakeRenderer) InitMeshBuffers(p binding.Provider, vertexData, indexData []byte, indexCount int) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []binding.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeRenderer) BeginFrame() (renderer.CommandHandle, error) { return struct{}{}, nil }
func (f *fakeRenderer) BeginTargetPass(renderer.CommandHandle) renderer.RenderPass {
	return &fakePass{}
}
func (f *fakeRenderer) EndTargetPass(renderer.RenderPass) {}
func (f *fakeRenderer) EndFrame(renderer.CommandHandle)   {}
func (f *fakeRenderer) WaitIdle()                         {}
func (f *fakeRenderer) Release()                          {}

// bindCall records one SetBindGroup invocation.
type bindCall struct {
	index   uint32
	offsets []uint32
}

// drawCall records one Draw or DrawIndexed invocation.
type drawCall struct {
	indexed       bool
	count         uint32 // indexCount for indexed draws, vertexCount otherwise
	instanceCount uint32
}

// fakePass records the command sequence so tests can assert recording order.
type fakePass struct {
	pipelines  []string
	bindGroups []bindCall
	draws      []drawCall
	order      []string
}

var _ renderer.RenderPass = &fakePass{}

func (f *fakePass) SetPipeline(p pipeline.Pipeline) {
	f.pipelines = append(f.pipelines, p.PipelineKey())
	f.order = append(f.order, "SetPipeline")
}

func (f *fakePass) SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	f.bindGroups = append(f.bindGroups, bindCall{
		index:   index,
		offsets: append([]uint32(nil), dynamicOffsets...),
	})
	f.order = append(f.order, "SetBindGroup")
}

func (f *fakePass) SetVertexBuffer(slot uint32, buf *wgpu.Buffer) {
	f.order = append(f.order, "SetVertexBuffer")
}

func (f *fakePass) SetIndexBuffer(buf *wgpu.Buffer, format wgpu.IndexFormat) {
	f.order = append(f.order, "SetIndexBuffer")
}

func (f *fakePass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	f.draws = append(f.draws, drawCall{indexed: true, count: indexCount, instanceCount: instanceCount})
	f.order = append(f.order, "DrawIndexed")
}

func (f *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	f.draws = append(f.draws, drawCall{count: vertexCount, instanceCount: instanceCount})
	f.order = append(f.order, "Draw")
}

// testCamera returns a camera posed like the demo viewer: at z = -2.5 looking
// down +Z with a square aspect.
func testCamera() camera.Camera {
	c := camera.NewCamera()
	c.SetPerspective(1)
	c.SetViewYXZ([3]float32{0, 0, -2.5}, [3]float32{0, 0, 0})
	return c
}

// testLibrary returns a library holding the quad and cube primitives with no
// renderer attached, so handles never touch the GPU.
func testLibrary(t *testing.T) mesh.Library {
	t.Helper()
	lib := mesh.NewLibrary()

	qv, qi := mesh.Quad()
	if err := lib.Register(mesh.NewMesh("quad", qv, qi)); err != nil {
		t.Fatalf("failed to register quad: %v", err)
	}
	cv, ci := mesh.Cube()
	if err := lib.Register(mesh.NewMesh("cube", cv, ci)); err != nil {
		t.Fatalf("failed to register cube: %v", err)
	}
	return lib
}

// acquire fetches a mesh handle or fails the test.
func acquire(t *testing.T, lib mesh.Library, name string) *mesh.Handle {
	t.Helper()
	h, err := lib.Acquire(name)
	if err != nil {
		t.Fatalf("failed to acquire %q: %v", name, err)
	}
	return h
}

// updateContext builds the frame context the orchestrator would pass to the
// update phase: no pass, no binding.
func updateContext(slot int, dt float32, cam camera.Camera, reg *scene.Registry) *frame.Context {
	return &frame.Context{Slot: slot, DT: dt, Camera: cam, Registry: reg}
}

// initGeometry creates and initializes a geometry subsystem against a fresh
// fake renderer.
func initGeometry(t *testing.T, slotCount int, options ...GeometrySubsystemBuilderOption) (GeometrySubsystem, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	g := NewGeometrySubsystem(options...)
	if err := g.Init(r, slotCount); err != nil {
		t.Fatalf("failed to init geometry subsystem: %v", err)
	}
	return g, r
}

// initPointLight creates and initializes a point light subsystem against a
// fresh fake renderer.
func initPointLight(t *testing.T, options ...PointLightSubsystemBuilderOption) (PointLightSubsystem, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	p := NewPointLightSubsystem(options...)
	if err := p.Init(r, 2); err != nil {
		t.Fatalf("failed to init point light subsystem: %v", err)
	}
	return p, r
}
