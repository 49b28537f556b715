package mesh

import (
	"github.com/Carmen-Shannon/prism-go/engine/renderer"
)

// LibraryOption is a functional option used to configure a Library during construction.
type LibraryOption func(*library)

// NewLibrary creates a new mesh Library with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LibraryOption functions to configure the Library
//
// Returns:
//   - Library: a new instance of Library configured with the provided options
func NewLibrary(options ...LibraryOption) Library {
	l := &library{
		meshes: make(map[string]*libraryEntry),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// WithRenderer is an option builder that attaches the renderer used to upload
// mesh buffers to the GPU. Without it the library skips GPU uploads, which is
// the mode used by tests.
//
// Parameters:
//   - r: the renderer to upload mesh buffers through
//
// Returns:
//   - LibraryOption: a function that attaches the renderer
func WithRenderer(r renderer.Renderer) LibraryOption {
	return func(l *library) {
		l.renderer = r
	}
}
