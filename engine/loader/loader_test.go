package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// quadOBJ is a floor-style quad: four positions, one shared normal, a single
// four-cornered face that triangulates into two triangles.
const quadOBJ = `# floor quad
v -1 0 -1
v -1 0 1
v 1 0 1
v 1 0 -1
vn 0 -1 0
f 1//1 2//1 3//1 4//1
`

// parseOBJ runs the OBJ backend over src and fails the test on error.
func parseOBJ(t *testing.T, src string) ([]mesh.GPUVertex, []uint32) {
	t.Helper()
	vertices, indices, err := newOBJLoaderBackend().LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse OBJ: %v", err)
	}
	return vertices, indices
}

func TestOBJBackend_QuadFanTriangulation(t *testing.T) {
	vertices, indices := parseOBJ(t, quadOBJ)

	if len(vertices) != 4 {
		t.Fatalf("expected 4 deduplicated vertices, got %d", len(vertices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(indices) != len(want) {
		t.Fatalf("expected %d indices, got %d", len(want), len(indices))
	}
	for i, idx := range want {
		if indices[i] != idx {
			t.Fatalf("index %d: expected %d, got %d (all: %v)", i, idx, indices[i], indices)
		}
	}
	for i, v := range vertices {
		if v.Normal != [3]float32{0, -1, 0} {
			t.Fatalf("vertex %d: expected the shared normal, got %v", i, v.Normal)
		}
	}
}

func TestOBJBackend_DedupSharedCorners(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 3 2 4
`
	vertices, indices := parseOBJ(t, src)

	if len(vertices) != 4 {
		t.Fatalf("expected shared corners to deduplicate to 4 vertices, got %d", len(vertices))
	}
	want := []uint32{0, 1, 2, 2, 1, 3}
	for i, idx := range want {
		if indices[i] != idx {
			t.Fatalf("index %d: expected %d, got %d (all: %v)", i, idx, indices[i], indices)
		}
	}
}

func TestOBJBackend_DistinctTriplesSplitVertices(t *testing.T) {
	// Same positions under two normals must produce separate vertices; the
	// deduplication key is the full index triple, not the position alone.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 -1
f 1//1 2//1 3//1
f 1//2 2//2 3//2
`
	vertices, _ := parseOBJ(t, src)

	if len(vertices) != 6 {
		t.Fatalf("expected 6 vertices for two normal sets, got %d", len(vertices))
	}
	if vertices[0].Normal != [3]float32{0, 0, 1} || vertices[3].Normal != [3]float32{0, 0, -1} {
		t.Fatalf("expected per-face normals to be preserved, got %v and %v", vertices[0].Normal, vertices[3].Normal)
	}
}

func TestOBJBackend_FullTripleAttributes(t *testing.T) {
	src := `v 1 2 3
v 4 5 6
v 7 8 9
vt 0.25 0.75
vt 0.5 0.5
vt 1 0
vn 0 1 0
f 1/1/1 2/2/1 3/3/1
`
	vertices, indices := parseOBJ(t, src)

	if len(vertices) != 3 || len(indices) != 3 {
		t.Fatalf("expected 3 vertices and 3 indices, got %d and %d", len(vertices), len(indices))
	}
	v := vertices[0]
	if v.Position != [3]float32{1, 2, 3} {
		t.Fatalf("expected position (1, 2, 3), got %v", v.Position)
	}
	if v.UV != [2]float32{0.25, 0.75} {
		t.Fatalf("expected uv (0.25, 0.75), got %v", v.UV)
	}
	if v.Normal != [3]float32{0, 1, 0} {
		t.Fatalf("expected normal (0, 1, 0), got %v", v.Normal)
	}
	if v.Color != [3]float32{1, 1, 1} {
		t.Fatalf("expected the default white color, got %v", v.Color)
	}
}

func TestOBJBackend_VertexColors(t *testing.T) {
	src := `v 0 0 0 0.2 0.4 0.6
v 1 0 0 0.2 0.4 0.6
v 0 1 0 0.2 0.4 0.6
f 1 2 3
`
	vertices, _ := parseOBJ(t, src)

	want := [3]float32{0.2, 0.4, 0.6}
	for i, v := range vertices {
		if v.Color != want {
			t.Fatalf("vertex %d: expected color %v, got %v", i, want, v.Color)
		}
	}
}

func TestOBJBackend_MissingAttributesDefaultZero(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	vertices, _ := parseOBJ(t, src)

	for i, v := range vertices {
		if v.Normal != [3]float32{} {
			t.Fatalf("vertex %d: expected a zero normal, got %v", i, v.Normal)
		}
		if v.UV != [2]float32{} {
			t.Fatalf("vertex %d: expected a zero uv, got %v", i, v.UV)
		}
	}
}

func TestOBJBackend_NegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	vertices, indices := parseOBJ(t, src)

	if len(vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(vertices))
	}
	if vertices[indices[0]].Position != [3]float32{0, 0, 0} {
		t.Fatalf("expected -3 to resolve to the first position, got %v", vertices[indices[0]].Position)
	}
	if vertices[indices[2]].Position != [3]float32{0, 1, 0} {
		t.Fatalf("expected -1 to resolve to the last position, got %v", vertices[indices[2]].Position)
	}
}

func TestOBJBackend_IgnoresNonGeometry(t *testing.T) {
	src := `# exported model
mtllib scene.mtl
o bush
g crown
usemtl leaves
s off
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	vertices, indices := parseOBJ(t, src)

	if len(vertices) != 3 || len(indices) != 3 {
		t.Fatalf("expected material statements to be skipped, got %d vertices and %d indices", len(vertices), len(indices))
	}
}

func TestOBJBackend_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"short position", "v 1 2\n"},
		{"position out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"too many reference parts", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n"},
		{"bad float", "v a b c\n"},
		{"no faces", "v 0 0 0\n"},
	}

	backend := newOBJLoaderBackend()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := backend.LoadReader(strings.NewReader(tc.src)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestOBJBackend_ErrorsNameLine(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"
	_, _, err := newOBJLoaderBackend().LoadReader(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("expected the error to name line 4, got %q", err)
	}
}

func TestLoader_LoadFromReaderRegistersInLibrary(t *testing.T) {
	lib := mesh.NewLibrary()
	l := NewLoader(BackendTypeOBJ, WithLibrary(lib))

	m, err := l.LoadFromReader("floor", strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if m.IndexCount() != 6 {
		t.Fatalf("expected 6 indices, got %d", m.IndexCount())
	}
	if !lib.Contains("floor") {
		t.Fatal("expected the mesh to be registered in the library")
	}

	h, err := lib.Acquire("floor")
	if err != nil {
		t.Fatalf("failed to acquire the registered mesh: %v", err)
	}
	if h.Mesh() != m {
		t.Fatal("expected the library to hold the loaded mesh")
	}
	h.Release()
}

func TestLoader_CachedMeshReturned(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	first, err := l.LoadFromReader("floor", strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	// A second load under the same name returns the cache without touching
	// the reader.
	second, err := l.LoadFromReader("floor", strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to return the cached mesh: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached mesh instance")
	}
	if got := l.Get("floor"); got != first {
		t.Fatal("expected Get to return the cached mesh")
	}
	if got := len(l.Meshes()); got != 1 {
		t.Fatalf("expected one cached mesh, got %d", got)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("failed to write the model file: %v", err)
	}

	lib := mesh.NewLibrary()
	l := NewLoader(BackendTypeOBJ, WithLibrary(lib))

	m, err := l.Load(path, "floor")
	if err != nil {
		t.Fatalf("failed to load the file: %v", err)
	}
	if m.IndexCount() != 6 {
		t.Fatalf("expected 6 indices, got %d", m.IndexCount())
	}
	if !lib.Contains("floor") {
		t.Fatal("expected the mesh to be registered in the library")
	}
}

func TestLoader_UnsupportedFormat(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	_, err := l.Load("model.gltf", "model")
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported model format") {
		t.Fatalf("expected an unsupported-format error, got %q", err)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	if _, err := l.Load(filepath.Join(t.TempDir(), "missing.obj"), "missing"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoader_WithMeshPrePopulatesCache(t *testing.T) {
	seeded := mesh.NewMesh("seeded", []mesh.GPUVertex{{}}, []uint32{0})
	l := NewLoader(BackendTypeOBJ, WithMesh("seeded", seeded))

	if got := l.Get("seeded"); got != seeded {
		t.Fatal("expected the pre-populated mesh in the cache")
	}
}
