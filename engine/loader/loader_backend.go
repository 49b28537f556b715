package loader

import (
	"io"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// loaderBackend defines the generic interface for parsing mesh geometry from
// files or streams. Concrete implementations (e.g., objLoaderBackend) handle
// format-specific details.
type loaderBackend interface {
	// Load parses mesh geometry from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []mesh.GPUVertex: the deduplicated vertex data
	//   - []uint32: the triangle index data
	//   - error: error if parsing fails
	Load(path string) ([]mesh.GPUVertex, []uint32, error)

	// LoadReader parses mesh geometry from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//
	// Returns:
	//   - []mesh.GPUVertex: the deduplicated vertex data
	//   - []uint32: the triangle index data
	//   - error: error if parsing fails
	LoadReader(r io.Reader) ([]mesh.GPUVertex, []uint32, error)
}
