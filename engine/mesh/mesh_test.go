package mesh

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestGPUVertex_MarshalLayout(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{0.5, 0.25, 0.125},
		Normal:   [3]float32{0, -1, 0},
		UV:       [2]float32{0.75, 1},
	}

	if v.Size() != 44 {
		t.Fatalf("Size() = %d, expected 44", v.Size())
	}
	buf := v.Marshal()
	if len(buf) != 44 {
		t.Fatalf("Marshal() returned %d bytes, expected 44", len(buf))
	}

	at := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	}
	if at(0) != 1 || at(4) != 2 || at(8) != 3 {
		t.Errorf("position bytes wrong: %v %v %v", at(0), at(4), at(8))
	}
	if at(12) != 0.5 {
		t.Errorf("color offset 12 = %v, expected 0.5", at(12))
	}
	if at(28) != -1 {
		t.Errorf("normal offset 28 = %v, expected -1", at(28))
	}
	if at(36) != 0.75 {
		t.Errorf("uv offset 36 = %v, expected 0.75", at(36))
	}
}

func TestVertexBufferLayout_MatchesStruct(t *testing.T) {
	layout := VertexBufferLayout()
	if layout.ArrayStride != 44 {
		t.Errorf("ArrayStride = %d, expected 44", layout.ArrayStride)
	}
	if len(layout.Attributes) != 4 {
		t.Fatalf("attribute count = %d, expected 4", len(layout.Attributes))
	}
	wantOffsets := []uint64{0, 12, 24, 36}
	for i, attr := range layout.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, expected %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d shader location = %d", i, attr.ShaderLocation)
		}
	}
}

func TestMarshalIndices_LittleEndian(t *testing.T) {
	buf := MarshalIndices([]uint32{0, 1, 258})
	if len(buf) != 12 {
		t.Fatalf("MarshalIndices returned %d bytes, expected 12", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[8:12]); got != 258 {
		t.Errorf("index 2 = %d, expected 258", got)
	}
}

func TestNewMesh_ComputesDataAndRadius(t *testing.T) {
	vertices, indices := Quad()
	m := NewMesh("quad", vertices, indices)

	if m.Name() != "quad" {
		t.Errorf("Name() = %q", m.Name())
	}
	if got := len(m.VertexData()); got != len(vertices)*44 {
		t.Errorf("vertex data = %d bytes, expected %d", got, len(vertices)*44)
	}
	if got := len(m.IndexData()); got != len(indices)*4 {
		t.Errorf("index data = %d bytes, expected %d", got, len(indices)*4)
	}
	if m.IndexCount() != len(indices) {
		t.Errorf("IndexCount() = %d, expected %d", m.IndexCount(), len(indices))
	}

	// Quad corners sit at (±1, 0, ±1), radius sqrt(2).
	want := float32(math.Sqrt(2))
	if diff := m.BoundingRadius() - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("BoundingRadius() = %v, expected %v", m.BoundingRadius(), want)
	}
	if m.Binding() == nil {
		t.Error("Binding() = nil, expected a provider")
	}
}

func TestCube_GeometryIsClosed(t *testing.T) {
	vertices, indices := Cube()
	if len(vertices) != 24 {
		t.Fatalf("cube vertex count = %d, expected 24", len(vertices))
	}
	if len(indices) != 36 {
		t.Fatalf("cube index count = %d, expected 36", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Fatalf("index %d refers to vertex %d, out of range", i, idx)
		}
	}

	// Unit cube corners sit at ±0.5, radius sqrt(3)/2.
	want := float32(math.Sqrt(3) / 2)
	got := ComputeBoundingRadius(vertices)
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("bounding radius = %v, expected %v", got, want)
	}

	// Every face normal must be unit length along a single axis.
	for i, v := range vertices {
		n := v.Normal
		sum := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if diff := sum - 1; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("vertex %d normal %v is not unit length", i, n)
		}
	}
}

func TestLibrary_AcquireAndRefCounting(t *testing.T) {
	lib := NewLibrary()
	vertices, indices := Quad()
	if err := lib.Register(NewMesh("floor", vertices, indices)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := lib.Register(NewMesh("floor", vertices, indices)); err == nil {
		t.Error("duplicate Register succeeded, expected error")
	}
	if !lib.Contains("floor") {
		t.Error("Contains(floor) = false after Register")
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", lib.Len())
	}

	h1, err := lib.Acquire("floor")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	h2, err := lib.Acquire("floor")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if h1.Mesh() != h2.Mesh() {
		t.Error("two handles to the same name returned different meshes")
	}
	if lib.Refs("floor") != 2 {
		t.Errorf("Refs = %d, expected 2", lib.Refs("floor"))
	}

	h1.Release()
	h1.Release() // idempotent
	if lib.Refs("floor") != 1 {
		t.Errorf("Refs = %d after one release, expected 1", lib.Refs("floor"))
	}
	h2.Release()
	if lib.Refs("floor") != 0 {
		t.Errorf("Refs = %d after all releases, expected 0", lib.Refs("floor"))
	}

	// The mesh stays registered and can be acquired again.
	h3, err := lib.Acquire("floor")
	if err != nil {
		t.Fatalf("re-Acquire failed: %v", err)
	}
	if lib.Refs("floor") != 1 {
		t.Errorf("Refs = %d after re-acquire, expected 1", lib.Refs("floor"))
	}
	h3.Release()
}

func TestLibrary_AcquireUnknownFails(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.Acquire("missing"); err == nil {
		t.Error("Acquire of unregistered mesh succeeded, expected error")
	}
}
