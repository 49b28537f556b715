package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct{}

// objLoaderBackend is a loaderBackend implementation for Wavefront OBJ files.
// Faces with more than three vertices are triangulated as a fan around the
// first vertex, and vertices are deduplicated by their v/vt/vn index triple.
type objLoaderBackend interface {
	loaderBackend
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new Wavefront OBJ loader backend.
//
// Returns:
//   - objLoaderBackend: the loader backend for OBJ files
func newOBJLoaderBackend() objLoaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) ([]mesh.GPUVertex, []uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return b.LoadReader(f)
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader) ([]mesh.GPUVertex, []uint32, error) {
	p := newOBJParser()
	if err := p.parse(r); err != nil {
		return nil, nil, err
	}
	if len(p.vertices) == 0 {
		return nil, nil, fmt.Errorf("no faces found")
	}
	return p.vertices, p.indices, nil
}

// faceRef identifies one corner of a face by its resolved 0-based attribute
// indices. uv and normal are -1 when the face reference omits them. Used as
// the deduplication key: two corners naming the same triple share one vertex.
type faceRef struct {
	position int
	uv       int
	normal   int
}

// objParser accumulates attribute lists from v/vt/vn statements and emits
// deduplicated vertices while walking f statements.
type objParser struct {
	positions [][3]float32
	colors    [][3]float32
	uvs       [][2]float32
	normals   [][3]float32

	unique   map[faceRef]uint32
	vertices []mesh.GPUVertex
	indices  []uint32
}

func newOBJParser() *objParser {
	return &objParser{
		unique: make(map[faceRef]uint32),
	}
}

func (p *objParser) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			err = p.parsePosition(fields[1:])
		case "vt":
			err = p.parseUV(fields[1:])
		case "vn":
			err = p.parseNormal(fields[1:])
		case "f":
			err = p.parseFace(fields[1:])
		default:
			// Object names, groups, smoothing groups, and material
			// statements carry no geometry; skip them.
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// parsePosition handles a v statement: x y z, optionally followed by an RGB
// vertex color. Positions without a color default to white so untextured
// models are lit instead of black.
func (p *objParser) parsePosition(args []string) error {
	pos, err := parseFloats(args, 3)
	if err != nil {
		return fmt.Errorf("invalid vertex position: %w", err)
	}
	p.positions = append(p.positions, [3]float32{pos[0], pos[1], pos[2]})

	color := [3]float32{1, 1, 1}
	if len(args) >= 6 {
		c, err := parseFloats(args[3:], 3)
		if err != nil {
			return fmt.Errorf("invalid vertex color: %w", err)
		}
		color = [3]float32{c[0], c[1], c[2]}
	}
	p.colors = append(p.colors, color)
	return nil
}

func (p *objParser) parseUV(args []string) error {
	uv, err := parseFloats(args, 2)
	if err != nil {
		return fmt.Errorf("invalid texture coordinate: %w", err)
	}
	p.uvs = append(p.uvs, [2]float32{uv[0], uv[1]})
	return nil
}

func (p *objParser) parseNormal(args []string) error {
	n, err := parseFloats(args, 3)
	if err != nil {
		return fmt.Errorf("invalid vertex normal: %w", err)
	}
	p.normals = append(p.normals, [3]float32{n[0], n[1], n[2]})
	return nil
}

// parseFace handles an f statement, fanning polygons with more than three
// corners into triangles around the first corner.
func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face has %d vertices, need at least 3", len(args))
	}

	corners := make([]uint32, len(args))
	for i, arg := range args {
		ref, err := p.parseFaceRef(arg)
		if err != nil {
			return err
		}
		corners[i] = p.vertexFor(ref)
	}

	for i := 2; i < len(corners); i++ {
		p.indices = append(p.indices, corners[0], corners[i-1], corners[i])
	}
	return nil
}

// parseFaceRef resolves one face corner of the form v, v/vt, v//vn, or
// v/vt/vn into 0-based attribute indices. Indices are 1-based in the file;
// negative values count back from the end of the respective attribute list.
func (p *objParser) parseFaceRef(ref string) (faceRef, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return faceRef{}, fmt.Errorf("invalid face reference %q", ref)
	}

	out := faceRef{uv: -1, normal: -1}

	idx, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return faceRef{}, fmt.Errorf("invalid position reference %q: %w", ref, err)
	}
	out.position = idx

	if len(parts) > 1 && parts[1] != "" {
		idx, err := resolveIndex(parts[1], len(p.uvs))
		if err != nil {
			return faceRef{}, fmt.Errorf("invalid texture reference %q: %w", ref, err)
		}
		out.uv = idx
	}

	if len(parts) > 2 && parts[2] != "" {
		idx, err := resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return faceRef{}, fmt.Errorf("invalid normal reference %q: %w", ref, err)
		}
		out.normal = idx
	}

	return out, nil
}

// vertexFor returns the vertex index for a face corner, reusing the existing
// vertex when the same index triple was seen before. Attributes the corner
// does not reference stay zero.
func (p *objParser) vertexFor(ref faceRef) uint32 {
	if id, ok := p.unique[ref]; ok {
		return id
	}

	v := mesh.GPUVertex{
		Position: p.positions[ref.position],
		Color:    p.colors[ref.position],
	}
	if ref.uv >= 0 {
		v.UV = p.uvs[ref.uv]
	}
	if ref.normal >= 0 {
		v.Normal = p.normals[ref.normal]
	}

	id := uint32(len(p.vertices))
	p.vertices = append(p.vertices, v)
	p.unique[ref] = id
	return id
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based slice
// index, validating it against the attribute count.
func resolveIndex(s string, count int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if raw == 0 {
		return 0, fmt.Errorf("index 0 is not valid")
	}

	idx := raw - 1
	if raw < 0 {
		idx = count + raw
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range [1, %d]", raw, count)
	}
	return idx, nil
}

// parseFloats parses at least want floats from args, returning exactly want
// values.
func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) < want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(args))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", args[i], err)
		}
		out[i] = float32(f)
	}
	return out, nil
}
