package loader

import (
	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLibrary is an option builder that sets the mesh library loaded meshes
// are registered in. Without a library the loader only caches parsed meshes.
//
// Parameters:
//   - lib: the mesh library instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the library option to a loader
func WithLibrary(lib mesh.Library) LoaderBuilderOption {
	return func(l *loader) {
		l.library = lib
	}
}

// WithMesh is an option builder that pre-populates the mesh cache with a mesh.
//
// Parameters:
//   - key: the cache key for the mesh
//   - m: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, m mesh.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = m
	}
}
