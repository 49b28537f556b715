package frame

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGlobalLights is the number of point light slots in the per-frame global state
// uniform. Subsystems may hold any number of lights CPU-side; AppendLight silently
// drops lights beyond this cap and the caller decides whether to report it.
const MaxGlobalLights = 10

// GPUGlobalStateSource is the canonical WGSL definition of the GlobalState struct.
// Matches GPUGlobalState layout exactly (544 bytes, uniform address space aligned).
// Shader sources that read the global state prepend this via shader.WithSource.
//
//go:embed assets/global_state.wgsl
var GPUGlobalStateSource string

// GPUPointLight is the GPU-aligned representation of a single point light.
// Matches the WGSL PointLight struct layout exactly (see GPUGlobalStateSource).
// Size: 32 bytes (two vec4s, uniform aligned).
type GPUPointLight struct {
	Position [4]float32 // offset  0: xyz = world-space position, w = billboard radius
	Color    [4]float32 // offset 16: rgb = color, w = intensity
}

// GPUGlobalState is the GPU-aligned representation of the per-frame global uniform:
// camera matrices, ambient light, and the active point lights. One instance is
// populated on the CPU each frame and uploaded into the acquired slot's uniform
// buffer before the render pass begins.
// Matches the WGSL GlobalState struct layout exactly (see GPUGlobalStateSource).
// Size: 544 bytes (uniform address space aligned).
type GPUGlobalState struct {
	Projection   [16]float32                    // offset   0: camera projection matrix (mat4x4<f32>)
	View         [16]float32                    // offset  64: camera view matrix (mat4x4<f32>)
	InverseView  [16]float32                    // offset 128: inverse view matrix; column 3 holds the camera position
	AmbientColor [4]float32                     // offset 192: rgb = ambient color, w = intensity
	Lights       [MaxGlobalLights]GPUPointLight // offset 208: active point lights, first LightCount entries valid
	LightCount   uint32                         // offset 528: number of valid entries in Lights
	_pad         [3]uint32                      // offset 532: padding to 544-byte struct size
}

// NewGlobalState creates a GPUGlobalState with identity camera matrices, the
// default ambient light (white at 0.02 intensity), and no active lights.
//
// Returns:
//   - *GPUGlobalState: the initialized global state
func NewGlobalState() *GPUGlobalState {
	g := &GPUGlobalState{
		AmbientColor: [4]float32{1.0, 1.0, 1.0, 0.02},
	}
	for i := range 4 {
		g.Projection[i*4+i] = 1.0
		g.View[i*4+i] = 1.0
		g.InverseView[i*4+i] = 1.0
	}
	return g
}

// Size returns the size of the GPUGlobalState struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (544)
func (g *GPUGlobalState) Size() int {
	return int(unsafe.Sizeof(*g))
}

// ResetLights clears the active light list. Stale entries beyond the new count are
// left in place; shaders only read the first LightCount entries.
func (g *GPUGlobalState) ResetLights() {
	g.LightCount = 0
}

// AppendLight adds a point light to the global state if a slot is free.
//
// Parameters:
//   - light: the light to append
//
// Returns:
//   - bool: true if the light was added, false if all MaxGlobalLights slots are taken
func (g *GPUGlobalState) AppendLight(light GPUPointLight) bool {
	if g.LightCount >= MaxGlobalLights {
		return false
	}
	g.Lights[g.LightCount] = light
	g.LightCount++
	return true
}

// Marshal serializes the GPUGlobalState struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 544-byte buffer ready for GPU upload
func (g *GPUGlobalState) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.InverseView[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(g.AmbientColor[i]))
	}
	for l := range MaxGlobalLights {
		base := 208 + l*32
		for i := range 4 {
			binary.LittleEndian.PutUint32(buf[base+i*4:], math.Float32bits(g.Lights[l].Position[i]))
		}
		for i := range 4 {
			binary.LittleEndian.PutUint32(buf[base+16+i*4:], math.Float32bits(g.Lights[l].Color[i]))
		}
	}
	binary.LittleEndian.PutUint32(buf[528:], g.LightCount)
	binary.LittleEndian.PutUint32(buf[532:], 0) // _pad
	binary.LittleEndian.PutUint32(buf[536:], 0) // _pad
	binary.LittleEndian.PutUint32(buf[540:], 0) // _pad
	return buf
}
