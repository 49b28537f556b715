package common

import (
	"math"
	"testing"
)

const matrixTolerance = 1e-5

func matricesClose(t *testing.T, got, want []float32, label string) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(got[i]-want[i])) > matrixTolerance {
			t.Errorf("%s: element %d = %f, expected %f", label, i, got[i], want[i])
		}
	}
}

// transformPoint applies a column-major 4x4 matrix to a point with w = 1 and
// returns the result after perspective divide.
func transformPoint(m []float32, x, y, z float32) (float32, float32, float32) {
	ox := m[0]*x + m[4]*y + m[8]*z + m[12]
	oy := m[1]*x + m[5]*y + m[9]*z + m[13]
	oz := m[2]*x + m[6]*y + m[10]*z + m[14]
	ow := m[3]*x + m[7]*y + m[11]*z + m[15]
	if ow != 0 && ow != 1 {
		return ox / ow, oy / ow, oz / ow
	}
	return ox, oy, oz
}

func TestIdentity_ResetsDirtyMatrix(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 42
	}
	Identity(m)

	var want [16]float32
	want[0], want[5], want[10], want[15] = 1, 1, 1, 1
	matricesClose(t, m, want[:], "identity")
}

func TestMul4_IdentityIsNeutral(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.4, 0.5, 0.6, 2, 2, 2)

	Mul4(out[:], id[:], m[:])
	matricesClose(t, out[:], m[:], "identity * m")

	Mul4(out[:], m[:], id[:])
	matricesClose(t, out[:], m[:], "m * identity")
}

func TestMul4_AliasedOutput(t *testing.T) {
	var a, b, want [16]float32
	BuildModelMatrix(a[:], 1, 0, 0, 0, math.Pi/3, 0, 1, 1, 1)
	BuildModelMatrix(b[:], 0, 2, 0, 0.2, 0, 0, 1, 1, 1)

	Mul4(want[:], a[:], b[:])

	got := a
	Mul4(got[:], got[:], b[:])
	matricesClose(t, got[:], want[:], "out aliased with a")
}

func TestPerspective_DepthRangeZeroToOne(t *testing.T) {
	var proj [16]float32
	near := float32(0.1)
	far := float32(100.0)
	Perspective(proj[:], math.Pi/4, 16.0/9.0, near, far)

	_, _, nearDepth := transformPoint(proj[:], 0, 0, near)
	if math.Abs(float64(nearDepth)) > matrixTolerance {
		t.Errorf("depth at near plane = %f, expected 0", nearDepth)
	}

	_, _, farDepth := transformPoint(proj[:], 0, 0, far)
	if math.Abs(float64(farDepth-1)) > 1e-3 {
		t.Errorf("depth at far plane = %f, expected 1", farDepth)
	}
}

func TestPerspective_FlipsYForYDownWorld(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math.Pi/4, 1.0, 0.1, 100.0)

	// A point below the viewer (positive Y, world down) must land in the lower
	// half of clip space (negative Y).
	_, y, _ := transformPoint(proj[:], 0, 1, 5)
	if y >= 0 {
		t.Errorf("world-down point projected to clip y = %f, expected negative", y)
	}
}

func TestViewYXZ_ZeroRotationAtOriginIsIdentity(t *testing.T) {
	var view, id [16]float32
	Identity(id[:])
	ViewYXZ(view[:], 0, 0, 0, 0, 0, 0)
	matricesClose(t, view[:], id[:], "view at origin")
}

func TestViewYXZ_TranslatesWorldIntoViewSpace(t *testing.T) {
	var view [16]float32
	ViewYXZ(view[:], 0, 0, -2.5, 0, 0, 0)

	// The origin sits 2.5 units in front of a viewer at z = -2.5.
	x, y, z := transformPoint(view[:], 0, 0, 0)
	if math.Abs(float64(x)) > matrixTolerance || math.Abs(float64(y)) > matrixTolerance {
		t.Errorf("origin off-axis in view space: (%f, %f)", x, y)
	}
	if math.Abs(float64(z-2.5)) > matrixTolerance {
		t.Errorf("origin view depth = %f, expected 2.5", z)
	}
}

func TestViewYXZ_MatchesInverse(t *testing.T) {
	cases := []struct {
		name     string
		pos, rot [3]float32
	}{
		{"translation only", [3]float32{1, -2, 3}, [3]float32{0, 0, 0}},
		{"yaw", [3]float32{0, 0, -2.5}, [3]float32{0, 1.2, 0}},
		{"full rotation", [3]float32{4, 1, -7}, [3]float32{0.3, -0.8, 0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var view, inv, product, id [16]float32
			Identity(id[:])
			ViewYXZ(view[:], tc.pos[0], tc.pos[1], tc.pos[2], tc.rot[0], tc.rot[1], tc.rot[2])
			InverseViewYXZ(inv[:], tc.pos[0], tc.pos[1], tc.pos[2], tc.rot[0], tc.rot[1], tc.rot[2])

			Mul4(product[:], view[:], inv[:])
			matricesClose(t, product[:], id[:], "view * inverseView")
		})
	}
}

func TestInverseViewYXZ_LastColumnHoldsPosition(t *testing.T) {
	var inv [16]float32
	InverseViewYXZ(inv[:], 1.5, -0.5, 4.0, 0.2, 0.9, 0)

	if inv[12] != 1.5 || inv[13] != -0.5 || inv[14] != 4.0 {
		t.Errorf("position column = (%f, %f, %f), expected (1.5, -0.5, 4.0)", inv[12], inv[13], inv[14])
	}
	if inv[15] != 1 {
		t.Errorf("homogeneous element = %f, expected 1", inv[15])
	}
}

func TestBuildModelMatrix_TranslationOnly(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 5, -3, 2, 0, 0, 0, 1, 1, 1)

	x, y, z := transformPoint(m[:], 0, 0, 0)
	if x != 5 || y != -3 || z != 2 {
		t.Errorf("origin transformed to (%f, %f, %f), expected (5, -3, 2)", x, y, z)
	}
}

func TestBuildModelMatrix_YawRotatesXTowardNegativeZ(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, math.Pi/2, 0, 1, 1, 1)

	x, _, z := transformPoint(m[:], 1, 0, 0)
	if math.Abs(float64(x)) > matrixTolerance || math.Abs(float64(z+1)) > matrixTolerance {
		t.Errorf("+X rotated to (%f, _, %f), expected (0, _, -1)", x, z)
	}
}

func TestBuildModelMatrix_ScaleAppliesPerAxis(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, 0, 0, 6, 1, 6)

	x, y, z := transformPoint(m[:], 1, 1, 1)
	if x != 6 || y != 1 || z != 6 {
		t.Errorf("unit point scaled to (%f, %f, %f), expected (6, 1, 6)", x, y, z)
	}
}

func TestBuildNormalMatrix_UndoesNonUniformScale(t *testing.T) {
	var normal [16]float32
	BuildNormalMatrix(normal[:], 0, 0, 0, 2, 1, 0.5)

	// A Y-facing normal on a squashed model must stay Y-facing after the
	// normal transform, up to renormalization.
	x, y, z := transformPoint(normal[:], 0, 1, 0)
	if math.Abs(float64(x)) > matrixTolerance || math.Abs(float64(z)) > matrixTolerance {
		t.Errorf("normal skewed to (%f, %f, %f)", x, y, z)
	}
	if y <= 0 {
		t.Errorf("normal flipped: y = %f", y)
	}
}

func TestInvert4_RoundTripOnModelMatrix(t *testing.T) {
	var m, inv, product, id [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], -2, 0.5, 4, 0, 2, 0, 0.5, 0.5, 0.5)

	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported a singular matrix for an invertible transform")
	}
	Mul4(product[:], m[:], inv[:])
	matricesClose(t, product[:], id[:], "m * inverse(m)")
}

func TestInvert4_SingularMatrixReturnsFalse(t *testing.T) {
	var m, out [16]float32 // all zeros, determinant 0
	out[0] = 99

	if Invert4(out[:], m[:]) {
		t.Error("Invert4 returned true for a singular matrix")
	}
	if out[0] != 99 {
		t.Errorf("output modified on failure: out[0] = %f", out[0])
	}
}

func TestLookAt_ForwardIsPositiveZ(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, -2.5, 0, 0, 0, 0, -1, 0)

	// Matches ViewYXZ at zero rotation for a viewer on the -Z axis.
	var want [16]float32
	ViewYXZ(want[:], 0, 0, -2.5, 0, 0, 0)
	matricesClose(t, view[:], want[:], "lookAt vs viewYXZ")
}

func TestSliceToBytes_LengthAndContent(t *testing.T) {
	data := []float32{1.0, 2.0}
	raw := SliceToBytes(data)

	if len(raw) != 8 {
		t.Fatalf("byte length = %d, expected 8", len(raw))
	}
	if bits := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24; bits != math.Float32bits(1.0) {
		t.Errorf("first element bits = %#x, expected %#x", bits, math.Float32bits(1.0))
	}

	if SliceToBytes([]float32(nil)) != nil {
		t.Error("empty slice should convert to nil")
	}
}

func TestStructToBytes_MatchesStructSize(t *testing.T) {
	type payload struct {
		A [16]float32
		B [4]float32
	}
	var p payload
	raw := StructToBytes(&p)
	if len(raw) != 80 {
		t.Errorf("byte length = %d, expected 80", len(raw))
	}
}
