package frame

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
)

func TestRing_SlotSequenceIsFrameModSlotCount(t *testing.T) {
	r := NewRing(WithSlotCount(2))

	want := []int{0, 1, 0, 1, 0}
	for i, expected := range want {
		if got := r.AcquireSlot(); got != expected {
			t.Fatalf("acquisition %d returned slot %d, expected %d", i, got, expected)
		}
	}
	if r.FrameCount() != uint64(len(want)) {
		t.Errorf("FrameCount() = %d, expected %d", r.FrameCount(), len(want))
	}
}

func TestRing_SlotSequenceAtThreeSlots(t *testing.T) {
	r := NewRing(WithSlotCount(3))

	for frame := 0; frame < 10; frame++ {
		if got := r.AcquireSlot(); got != frame%3 {
			t.Fatalf("frame %d got slot %d, expected %d", frame, got, frame%3)
		}
	}
}

func TestRing_DefaultsToTwoSlots(t *testing.T) {
	r := NewRing()
	if r.SlotCount() != 2 {
		t.Errorf("SlotCount() = %d, expected 2", r.SlotCount())
	}
}

func TestRing_SlotCountFollowsBindings(t *testing.T) {
	bindings := []binding.Provider{
		binding.NewProvider("slot0", binding.WithSize(16)),
		binding.NewProvider("slot1", binding.WithSize(16)),
		binding.NewProvider("slot2", binding.WithSize(16)),
	}
	r := NewRing(WithBindings(bindings))

	if r.SlotCount() != 3 {
		t.Fatalf("SlotCount() = %d, expected 3", r.SlotCount())
	}
	for i, b := range bindings {
		if r.Binding(i) != b {
			t.Errorf("Binding(%d) did not return the slot's own provider", i)
		}
	}
}

func TestRing_BindingOutOfRangeIsNil(t *testing.T) {
	r := NewRing(WithSlotCount(2))
	if r.Binding(-1) != nil || r.Binding(2) != nil {
		t.Error("out-of-range Binding() returned a provider, expected nil")
	}
}

func TestRing_MismatchedBindingsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mismatched slot/binding counts did not panic")
		}
	}()
	NewRing(WithSlotCount(2), WithBindings([]binding.Provider{
		binding.NewProvider("only", binding.WithSize(16)),
	}))
}

func TestNewGlobalState_Defaults(t *testing.T) {
	g := NewGlobalState()

	if g.AmbientColor != [4]float32{1, 1, 1, 0.02} {
		t.Errorf("ambient = %v, expected (1, 1, 1, 0.02)", g.AmbientColor)
	}
	if g.LightCount != 0 {
		t.Errorf("LightCount = %d, expected 0", g.LightCount)
	}
	for i := 0; i < 4; i++ {
		if g.Projection[i*4+i] != 1 || g.View[i*4+i] != 1 || g.InverseView[i*4+i] != 1 {
			t.Fatal("camera matrices are not identity")
		}
	}
}

func TestGlobalState_SizeAndMarshalLength(t *testing.T) {
	g := NewGlobalState()
	if g.Size() != 544 {
		t.Fatalf("Size() = %d, expected 544", g.Size())
	}
	if got := len(g.Marshal()); got != 544 {
		t.Fatalf("Marshal() returned %d bytes, expected 544", got)
	}
}

func TestGlobalState_MarshalOffsets(t *testing.T) {
	g := NewGlobalState()
	g.Projection[0] = 2.5
	g.View[0] = 3.5
	g.InverseView[12] = -7 // column 3 x, the camera position
	g.AppendLight(GPUPointLight{
		Position: [4]float32{1, 2, 3, 0.4},
		Color:    [4]float32{1, 0.5, 0, 350.2},
	})

	buf := g.Marshal()
	at := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	}

	if at(0) != 2.5 {
		t.Errorf("projection offset 0 = %v, expected 2.5", at(0))
	}
	if at(64) != 3.5 {
		t.Errorf("view offset 64 = %v, expected 3.5", at(64))
	}
	if at(128+12*4) != -7 {
		t.Errorf("inverse view camera position = %v, expected -7", at(128+12*4))
	}
	if at(192) != 1 || at(204) != 0.02 {
		t.Errorf("ambient at offset 192 = (%v .. %v), expected (1 .. 0.02)", at(192), at(204))
	}
	// First light: position at 208, color at 224.
	if at(208) != 1 || at(220) != 0.4 {
		t.Errorf("light position/radius = (%v, %v), expected (1, 0.4)", at(208), at(220))
	}
	if at(224) != 1 || at(236) != 350.2 {
		t.Errorf("light color/intensity = (%v, %v), expected (1, 350.2)", at(224), at(236))
	}
	if got := binary.LittleEndian.Uint32(buf[528:532]); got != 1 {
		t.Errorf("light count at offset 528 = %d, expected 1", got)
	}
}

func TestGlobalState_AppendLightTruncatesAtCap(t *testing.T) {
	g := NewGlobalState()

	for i := 0; i < MaxGlobalLights; i++ {
		if !g.AppendLight(GPUPointLight{Position: [4]float32{float32(i), 0, 0, 1}}) {
			t.Fatalf("append %d rejected below the cap", i)
		}
	}
	if g.AppendLight(GPUPointLight{}) {
		t.Error("append beyond MaxGlobalLights succeeded")
	}
	if g.LightCount != MaxGlobalLights {
		t.Errorf("LightCount = %d, expected %d", g.LightCount, MaxGlobalLights)
	}

	// The first MaxGlobalLights lights survive unchanged.
	if g.Lights[MaxGlobalLights-1].Position[0] != float32(MaxGlobalLights-1) {
		t.Error("a light below the cap was overwritten by the rejected append")
	}
}

func TestGlobalState_ResetLightsClearsCountOnly(t *testing.T) {
	g := NewGlobalState()
	g.AppendLight(GPUPointLight{Position: [4]float32{9, 9, 9, 9}})
	g.ResetLights()

	if g.LightCount != 0 {
		t.Errorf("LightCount = %d after reset, expected 0", g.LightCount)
	}
	if !g.AppendLight(GPUPointLight{Position: [4]float32{1, 0, 0, 0}}) {
		t.Fatal("append after reset failed")
	}
	if g.Lights[0].Position[0] != 1 {
		t.Error("append after reset did not overwrite slot 0")
	}
}
