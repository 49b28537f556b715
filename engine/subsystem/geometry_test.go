package subsystem

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
)

func TestGeometrySubsystem_RegistersPipeline(t *testing.T) {
	_, r := initGeometry(t, 2)

	if r.Pipeline(GeometryPipelineKey) == nil {
		t.Fatal("expected the geometry pipeline in the renderer cache after Init")
	}
}

func TestGeometrySubsystem_StagesVisibleMeshesInOrder(t *testing.T) {
	g, _ := initGeometry(t, 2)
	lib := testLibrary(t)

	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "quad")),
		scene.WithTranslation([3]float32{0, 0.5, 0}),
		scene.WithScale([3]float32{6, 1, 6}),
	))
	reg.Insert(scene.NewEntity(scene.WithPointLight(1.0, 0.1))) // no mesh, skipped
	reg.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "cube")),
		scene.WithTranslation([3]float32{1, -0.2, 0}),
		scene.WithScale([3]float32{0.2, 0.2, 0.2}),
	))

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)

	if g.DrawCount() != 2 {
		t.Fatalf("DrawCount() = %d, expected 2", g.DrawCount())
	}

	pass := &fakePass{}
	ctx := updateContext(0, 0.016, testCamera(), reg)
	ctx.Pass = pass
	g.Render(ctx)

	// Quad first, cube second, matching registry insertion order.
	if len(pass.draws) != 2 {
		t.Fatalf("recorded %d draws, expected 2", len(pass.draws))
	}
	if pass.draws[0].count != 6 || pass.draws[1].count != 36 {
		t.Errorf("draw index counts = %d, %d; expected 6, 36", pass.draws[0].count, pass.draws[1].count)
	}
	if !pass.draws[0].indexed || !pass.draws[1].indexed {
		t.Error("geometry draws must be indexed")
	}
}

func TestGeometrySubsystem_CullsBehindCamera(t *testing.T) {
	g, _ := initGeometry(t, 2)
	lib := testLibrary(t)

	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(scene.WithMesh(acquire(t, lib, "cube"))))
	reg.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "cube")),
		scene.WithTranslation([3]float32{0, 0, -50}), // behind the viewer at z=-2.5
	))

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)

	if g.DrawCount() != 1 {
		t.Errorf("DrawCount() = %d, expected 1", g.DrawCount())
	}
	if g.CulledCount() != 1 {
		t.Errorf("CulledCount() = %d, expected 1", g.CulledCount())
	}
}

func TestGeometrySubsystem_ScaleGrowsCullingSphere(t *testing.T) {
	g, _ := initGeometry(t, 2)
	lib := testLibrary(t)

	// A unit cube 8 units to the right of the view axis is outside the 50
	// degree cone, but scaled by 12 its bounding sphere reaches back in.
	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "cube")),
		scene.WithTranslation([3]float32{8, 0, 2}),
	))

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)
	if g.DrawCount() != 0 {
		t.Fatalf("unscaled off-axis cube should be culled, got %d draws", g.DrawCount())
	}

	reg2 := scene.NewRegistry()
	reg2.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "cube")),
		scene.WithTranslation([3]float32{8, 0, 2}),
		scene.WithScale([3]float32{12, 12, 12}),
	))

	g.Update(updateContext(0, 0.016, testCamera(), reg2), nil)
	if g.DrawCount() != 1 {
		t.Fatalf("scaled cube should survive culling, got %d draws", g.DrawCount())
	}
}

func TestGeometrySubsystem_ObjectDataMatchesTransforms(t *testing.T) {
	g, r := initGeometry(t, 2, WithMaxObjects(8))
	lib := testLibrary(t)

	translation := [3]float32{1, 2, 3}
	rotation := [3]float32{0.1, 0.2, 0.3}
	scale := [3]float32{2, 1, 1}

	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(
		scene.WithMesh(acquire(t, lib, "cube")),
		scene.WithTranslation(translation),
		scene.WithRotation(rotation),
		scene.WithScale(scale),
	))

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)

	if len(r.writes) != 1 {
		t.Fatalf("recorded %d buffer writes, expected 1", len(r.writes))
	}
	w := r.writes[0]
	if w.Offset != 0 {
		t.Errorf("write offset = %d, expected 0 for slot 0", w.Offset)
	}
	if len(w.Data) != ObjectStride {
		t.Errorf("write size = %d, expected %d for one object", len(w.Data), ObjectStride)
	}

	var wantModel, wantNormal [16]float32
	common.BuildModelMatrix(wantModel[:],
		translation[0], translation[1], translation[2],
		rotation[0], rotation[1], rotation[2],
		scale[0], scale[1], scale[2])
	common.BuildNormalMatrix(wantNormal[:],
		rotation[0], rotation[1], rotation[2],
		scale[0], scale[1], scale[2])

	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(w.Data[i*4:]))
		if got != wantModel[i] {
			t.Fatalf("model[%d] = %v, expected %v", i, got, wantModel[i])
		}
	}
	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(w.Data[64+i*4:]))
		if got != wantNormal[i] {
			t.Fatalf("normal[%d] = %v, expected %v", i, got, wantNormal[i])
		}
	}
}

func TestGeometrySubsystem_SlotSelectsBufferRegion(t *testing.T) {
	g, r := initGeometry(t, 2, WithMaxObjects(8))
	lib := testLibrary(t)

	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(scene.WithMesh(acquire(t, lib, "quad"))))
	reg.Insert(scene.NewEntity(scene.WithMesh(acquire(t, lib, "cube"))))

	g.Update(updateContext(1, 0.016, testCamera(), reg), nil)

	wantBase := uint64(1) * 8 * ObjectStride
	if len(r.writes) != 1 || r.writes[0].Offset != wantBase {
		t.Fatalf("write offset = %v, expected %d", r.writes, wantBase)
	}

	pass := &fakePass{}
	ctx := updateContext(1, 0.016, testCamera(), reg)
	ctx.Pass = pass
	g.Render(ctx)

	// Group 1 binds carry the dynamic offsets: base, base+stride.
	var offsets []uint32
	for _, b := range pass.bindGroups {
		if b.index == 1 {
			offsets = append(offsets, b.offsets...)
		}
	}
	if len(offsets) != 2 || offsets[0] != uint32(wantBase) || offsets[1] != uint32(wantBase)+ObjectStride {
		t.Errorf("dynamic offsets = %v, expected [%d, %d]", offsets, wantBase, wantBase+ObjectStride)
	}
}

func TestGeometrySubsystem_CapsObjectCount(t *testing.T) {
	g, _ := initGeometry(t, 2, WithMaxObjects(2))
	lib := testLibrary(t)

	reg := scene.NewRegistry()
	for range 5 {
		reg.Insert(scene.NewEntity(scene.WithMesh(acquire(t, lib, "cube"))))
	}

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)

	if g.DrawCount() != 2 {
		t.Errorf("DrawCount() = %d, expected the 2-object cap", g.DrawCount())
	}
}

func TestGeometrySubsystem_RenderRecordsFullSequence(t *testing.T) {
	g, _ := initGeometry(t, 2)
	lib := testLibrary(t)

	reg := scene.NewRegistry()
	reg.Insert(scene.NewEntity(scene.WithMesh(acquire(t, lib, "quad"))))

	g.Update(updateContext(0, 0.016, testCamera(), reg), nil)

	pass := &fakePass{}
	ctx := updateContext(0, 0.016, testCamera(), reg)
	ctx.Pass = pass
	g.Render(ctx)

	want := []string{"SetPipeline", "SetBindGroup", "SetVertexBuffer", "SetIndexBuffer", "DrawIndexed"}
	if len(pass.order) != len(want) {
		t.Fatalf("recorded sequence %v, expected %v", pass.order, want)
	}
	for i, m := range want {
		if pass.order[i] != m {
			t.Fatalf("recorded sequence %v, expected %v", pass.order, want)
		}
	}
	if pass.pipelines[0] != GeometryPipelineKey {
		t.Errorf("bound pipeline %q, expected %q", pass.pipelines[0], GeometryPipelineKey)
	}
}

func TestGeometrySubsystem_EmptyUpdateRendersNothing(t *testing.T) {
	g, _ := initGeometry(t, 2)

	g.Update(updateContext(0, 0.016, testCamera(), scene.NewRegistry()), nil)

	pass := &fakePass{}
	ctx := updateContext(0, 0.016, testCamera(), scene.NewRegistry())
	ctx.Pass = pass
	g.Render(ctx)

	if len(pass.order) != 0 {
		t.Errorf("recorded %v with nothing staged, expected no commands", pass.order)
	}
}
