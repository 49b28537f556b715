package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	library mesh.Library

	meshCache map[string]mesh.Mesh

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching mesh
// geometry from model files. It abstracts the file format behind a generic
// backend and registers loaded meshes in a mesh library when one is attached,
// so scene entities can acquire reference-counted handles to them.
type Loader interface {
	// Load imports a model file, registers the mesh in the attached library
	// under the given name, and caches the result. If a mesh is already
	// cached under the name, the cached version is returned. The backend is
	// selected based on the file extension (.obj → OBJ backend).
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - name: the library registration name and cache key for the mesh
	//
	// Returns:
	//   - mesh.Mesh: the loaded mesh
	//   - error: error if parsing or registration fails
	Load(path, name string) (mesh.Mesh, error)

	// LoadFromReader imports a model from a reader stream and caches it by
	// the given name, registering it in the attached library. The stream
	// must contain text in the configured backend's format.
	//
	// Parameters:
	//   - name: the library registration name and cache key for the mesh
	//   - r: the reader providing model data
	//
	// Returns:
	//   - mesh.Mesh: the loaded mesh
	//   - error: error if parsing or registration fails
	LoadFromReader(name string, r io.Reader) (mesh.Mesh, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - mesh.Mesh: the cached mesh or nil
	Get(name string) mesh.Mesh

	// Meshes returns the full mesh cache.
	//
	// Returns:
	//   - map[string]mesh.Mesh: all cached meshes keyed by name
	Meshes() map[string]mesh.Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:        sync.RWMutex{},
		meshCache: make(map[string]mesh.Mesh),
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path, name string) (mesh.Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	vertices, indices, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.registerMesh(name, vertices, indices)
}

func (l *loader) LoadFromReader(name string, r io.Reader) (mesh.Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	vertices, indices, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.registerMesh(name, vertices, indices)
}

func (l *loader) Get(name string) mesh.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]mesh.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]mesh.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only Wavefront OBJ is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
}

// registerMesh wraps parsed geometry in a Mesh, registers it in the attached
// library, and caches it under name.
func (l *loader) registerMesh(name string, vertices []mesh.GPUVertex, indices []uint32) (mesh.Mesh, error) {
	m := mesh.NewMesh(name, vertices, indices)

	if l.library != nil {
		if err := l.library.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register mesh %q: %w", name, err)
		}
	}

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()

	return m, nil
}
