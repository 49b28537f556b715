package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the VertexInput struct of the geometry pipeline's WGSL exactly.
// Size: 44 bytes (tightly packed vertex buffer stride, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: per-vertex RGB color (12 bytes)
	Normal   [3]float32 // offset 24: vertex normal for lighting (12 bytes)
	UV       [2]float32 // offset 36: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 44-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 44)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.UV[1]))
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout describing GPUVertex
// to render pipelines. Shader locations 0-3 map to position, color, normal, uv.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for a GPUVertex vertex buffer
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x3},
			{ShaderLocation: 3, Offset: 36, Format: wgpu.VertexFormatFloat32x2},
		},
	}
}

// MarshalVertices serializes a vertex slice into one contiguous byte buffer
// suitable for vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * 44 bytes of packed vertex data
func MarshalVertices(vertices []GPUVertex) []byte {
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, 0, len(vertices)*stride)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes an index slice into little-endian uint32 bytes
// suitable for index buffer upload.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: len(indices) * 4 bytes of packed index data
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// GPUVertex positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
