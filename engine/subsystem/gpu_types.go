package subsystem

import (
	"encoding/binary"
	"math"
)

// ObjectStride is the byte stride between consecutive entries in the geometry
// subsystem's per-object uniform buffer. WebGPU requires dynamic offsets to be
// multiples of 256 bytes, so the 128 bytes of matrix data are padded up to
// that boundary.
const ObjectStride = 256

// GPUObjectData is the GPU-aligned per-object uniform for the geometry
// pipeline. Matches the WGSL ObjectData struct layout exactly (see
// assets/geometry.wgsl). Content size: 128 bytes, stored at ObjectStride
// intervals in the object uniform buffer.
type GPUObjectData struct {
	Model  [16]float32 // offset  0: local-to-world transform (mat4x4<f32>)
	Normal [16]float32 // offset 64: normal matrix, corrects normals for rotation and non-uniform scale
}

// MarshalInto serializes the object data into buf, which must hold at least
// 128 bytes. The remaining bytes of the stride window are left untouched.
//
// Parameters:
//   - buf: the destination buffer
func (d *GPUObjectData) MarshalInto(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(d.Model[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(d.Normal[i]))
	}
}
