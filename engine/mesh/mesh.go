package mesh

import (
	"github.com/Carmen-Shannon/prism-go/engine/renderer/binding"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name           string
	vertexData     []byte
	indexData      []byte
	indexCount     int
	boundingRadius float32
	binding        binding.Provider
}

// Mesh defines the interface for a GPU-ready triangle mesh.
// A Mesh holds marshaled vertex and index data plus the binding.Provider that
// carries its GPU buffers once uploaded. Meshes are produced by the Loader or
// the procedural primitive builders and shared between entities through a
// reference-counted Library.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// VertexData returns the marshaled vertex data for this mesh.
	//
	// Returns:
	//   - []byte: the packed GPUVertex data
	VertexData() []byte

	// IndexData returns the marshaled index data for this mesh.
	//
	// Returns:
	//   - []byte: the packed uint32 index data
	IndexData() []byte

	// IndexCount returns the number of indices in this mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this mesh, measured
	// as the maximum vertex distance from the model-space origin. Used by
	// frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Binding retrieves the binding.Provider holding this mesh's GPU vertex and
	// index buffers. The buffers are nil until the Library uploads them.
	//
	// Returns:
	//   - binding.Provider: the mesh buffer provider
	Binding() binding.Provider
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from raw vertices and indices. The vertex and index
// data are marshaled once at construction and the bounding radius is computed
// from the vertex positions. GPU buffers are not created here; the Library
// uploads them when the mesh is first acquired.
//
// Parameters:
//   - name: the mesh identifier, used as the Library registration key
//   - vertices: the mesh vertices
//   - indices: the triangle indices into the vertex slice
//
// Returns:
//   - Mesh: a new GPU-less Mesh instance
func NewMesh(name string, vertices []GPUVertex, indices []uint32) Mesh {
	return &mesh{
		name:           name,
		vertexData:     MarshalVertices(vertices),
		indexData:      MarshalIndices(indices),
		indexCount:     len(indices),
		boundingRadius: ComputeBoundingRadius(vertices),
		binding:        binding.NewProvider(name + "_mesh"),
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) IndexData() []byte {
	return m.indexData
}

func (m *mesh) IndexCount() int {
	return m.indexCount
}

func (m *mesh) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *mesh) Binding() binding.Provider {
	return m.binding
}
