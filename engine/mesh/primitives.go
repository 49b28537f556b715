package mesh

// Quad builds a flat 2x2 quad in the XZ plane at y=0, centered on the origin.
// The normal points up in the engine's Y-down world (0, -1, 0) and the color
// is white, so entity color or lighting drives the final look. Commonly scaled
// up and used as a floor.
//
// Returns:
//   - []GPUVertex: 4 vertices spanning x,z in [-1, 1]
//   - []uint32: 6 indices forming 2 triangles
func Quad() ([]GPUVertex, []uint32) {
	up := [3]float32{0, -1, 0}
	white := [3]float32{1, 1, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-1, 0, -1}, Color: white, Normal: up, UV: [2]float32{0, 0}},
		{Position: [3]float32{1, 0, -1}, Color: white, Normal: up, UV: [2]float32{1, 0}},
		{Position: [3]float32{1, 0, 1}, Color: white, Normal: up, UV: [2]float32{1, 1}},
		{Position: [3]float32{-1, 0, 1}, Color: white, Normal: up, UV: [2]float32{0, 1}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return vertices, indices
}

// Cube builds a unit cube centered on the origin with per-face normals and
// the classic per-face colors (white left, yellow right, orange top, red
// bottom, blue nose, green tail). Each face carries its own 4 vertices so
// normals stay hard.
//
// Returns:
//   - []GPUVertex: 24 vertices spanning [-0.5, 0.5] on each axis
//   - []uint32: 36 indices forming 12 triangles
func Cube() ([]GPUVertex, []uint32) {
	type face struct {
		normal [3]float32
		color  [3]float32
		// corners in CCW order viewed from outside the cube
		corners [4][3]float32
	}
	faces := []face{
		// left (x = -0.5), white
		{
			normal: [3]float32{-1, 0, 0},
			color:  [3]float32{0.9, 0.9, 0.9},
			corners: [4][3]float32{
				{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
			},
		},
		// right (x = 0.5), yellow
		{
			normal: [3]float32{1, 0, 0},
			color:  [3]float32{0.8, 0.8, 0.1},
			corners: [4][3]float32{
				{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5},
			},
		},
		// top (y = -0.5, up in the Y-down world), orange
		{
			normal: [3]float32{0, -1, 0},
			color:  [3]float32{0.9, 0.6, 0.1},
			corners: [4][3]float32{
				{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
			},
		},
		// bottom (y = 0.5), red
		{
			normal: [3]float32{0, 1, 0},
			color:  [3]float32{0.8, 0.1, 0.1},
			corners: [4][3]float32{
				{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			},
		},
		// nose (z = 0.5), blue
		{
			normal: [3]float32{0, 0, 1},
			color:  [3]float32{0.1, 0.1, 0.8},
			corners: [4][3]float32{
				{0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
			},
		},
		// tail (z = -0.5), green
		{
			normal: [3]float32{0, 0, -1},
			color:  [3]float32{0.1, 0.8, 0.1},
			corners: [4][3]float32{
				{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			},
		},
	}

	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	vertices := make([]GPUVertex, 0, len(faces)*4)
	indices := make([]uint32, 0, len(faces)*6)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corners {
			vertices = append(vertices, GPUVertex{
				Position: c,
				Color:    f.color,
				Normal:   f.normal,
				UV:       uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}
