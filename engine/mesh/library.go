package mesh

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/renderer"
)

// libraryEntry pairs a registered mesh with its live handle count.
type libraryEntry struct {
	m    Mesh
	refs int
}

// library is the implementation of the Library interface.
type library struct {
	mu sync.Mutex

	renderer renderer.Renderer

	meshes map[string]*libraryEntry
}

// Library defines the interface for a reference-counted mesh registry.
// Meshes are registered once by name and borrowed through Handles; multiple
// entities can share one mesh resource. GPU buffers are uploaded when a mesh
// gains its first handle and released when its last handle is released, while
// the CPU-side data stays registered so the mesh can be acquired again later.
//
// Without an attached renderer (tests, headless use) the Library tracks
// reference counts normally and skips the GPU upload and release steps.
type Library interface {
	// Register adds a mesh to the library under its name.
	//
	// Parameters:
	//   - m: the mesh to register
	//
	// Returns:
	//   - error: an error if a mesh is already registered under the same name
	Register(m Mesh) error

	// Acquire borrows a registered mesh, incrementing its reference count.
	// The first acquisition uploads the mesh's GPU buffers when a renderer is
	// attached.
	//
	// Parameters:
	//   - name: the registration name of the mesh
	//
	// Returns:
	//   - *Handle: a reference-counted handle to the mesh
	//   - error: an error if no mesh is registered under name or the GPU upload fails
	Acquire(name string) (*Handle, error)

	// Contains reports whether a mesh is registered under name.
	//
	// Parameters:
	//   - name: the registration name to check
	//
	// Returns:
	//   - bool: true if a mesh is registered under name
	Contains(name string) bool

	// Refs returns the live handle count for a registered mesh.
	//
	// Parameters:
	//   - name: the registration name of the mesh
	//
	// Returns:
	//   - int: the number of unreleased handles, or 0 if name is unknown
	Refs(name string) int

	// Len returns the number of registered meshes.
	//
	// Returns:
	//   - int: the registered mesh count
	Len() int

	// Release frees the GPU resources of every registered mesh and clears the
	// library. Outstanding handles become inert; releasing them is a no-op.
	Release()
}

var _ Library = &library{}

// Handle is a reference-counted borrow of a library mesh. Entities hold a
// Handle rather than the Mesh itself so the library can track sharing and
// free GPU buffers when the last borrower lets go.
type Handle struct {
	lib  *library
	name string
	m    Mesh
	once sync.Once
}

// Mesh returns the borrowed mesh.
//
// Returns:
//   - Mesh: the mesh this handle refers to
func (h *Handle) Mesh() Mesh {
	return h.m
}

// Name returns the registration name of the borrowed mesh.
//
// Returns:
//   - string: the mesh name
func (h *Handle) Name() string {
	return h.name
}

// Release returns this handle's reference to the library. Releasing the last
// handle for a mesh frees its GPU buffers. Release is idempotent; calling it
// again has no effect.
func (h *Handle) Release() {
	if h == nil || h.lib == nil {
		return
	}
	h.once.Do(func() {
		h.lib.release(h.name)
	})
}

func (l *library) Register(m Mesh) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.meshes[m.Name()]; ok {
		return fmt.Errorf("mesh library: mesh %q is already registered", m.Name())
	}
	l.meshes[m.Name()] = &libraryEntry{m: m}
	return nil
}

func (l *library) Acquire(name string) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.meshes[name]
	if !ok {
		return nil, fmt.Errorf("mesh library: no mesh registered under %q", name)
	}
	if e.refs == 0 {
		if err := l.upload(e.m); err != nil {
			return nil, fmt.Errorf("failed to upload mesh %q: %w", name, err)
		}
	}
	e.refs++
	return &Handle{lib: l, name: name, m: e.m}, nil
}

func (l *library) Contains(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.meshes[name]
	return ok
}

func (l *library) Refs(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.meshes[name]; ok {
		return e.refs
	}
	return 0
}

func (l *library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.meshes)
}

func (l *library) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.meshes {
		e.m.Binding().Release()
	}
	l.meshes = make(map[string]*libraryEntry)
}

// upload pushes the mesh's vertex and index data to the GPU. A no-op without
// an attached renderer or when the buffers already exist.
func (l *library) upload(m Mesh) error {
	if l.renderer == nil {
		return nil
	}
	if m.Binding().VertexBuffer() != nil {
		return nil
	}
	return l.renderer.InitMeshBuffers(m.Binding(), m.VertexData(), m.IndexData(), m.IndexCount())
}

// release decrements the handle count for name, freeing GPU buffers when the
// count reaches zero. Called from Handle.Release under the handle's sync.Once.
func (l *library) release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.meshes[name]
	if !ok || e.refs == 0 {
		return
	}
	e.refs--
	if e.refs == 0 {
		e.m.Binding().Release()
	}
}
