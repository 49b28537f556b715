package common

import (
	"math"
	"testing"
)

// litSceneFrustum builds a frustum for a viewer at the origin looking down +Z
// with a 50 degree vertical field of view.
func litSceneFrustum() Frustum {
	var proj, view, viewProj [16]float32
	Perspective(proj[:], 50.0*math.Pi/180.0, 1366.0/768.0, 0.1, 100.0)
	ViewYXZ(view[:], 0, 0, 0, 0, 0, 0)
	Mul4(viewProj[:], proj[:], view[:])
	return ExtractFrustumFromMatrix(viewProj[:])
}

func TestExtractFrustumFromMatrix_PlanesAreNormalized(t *testing.T) {
	f := litSceneFrustum()
	for i, p := range f.Planes {
		length := math.Sqrt(float64(p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]))
		if math.Abs(length-1.0) > 1e-5 {
			t.Errorf("plane %d normal length = %f, expected 1", i, length)
		}
	}
}

func TestContainsSphere_VisibilityCases(t *testing.T) {
	f := litSceneFrustum()

	cases := []struct {
		name    string
		center  [3]float32
		radius  float32
		visible bool
	}{
		{"directly ahead", [3]float32{0, 0, 5}, 1, true},
		{"behind viewer", [3]float32{0, 0, -5}, 1, false},
		{"beyond far plane", [3]float32{0, 0, 200}, 1, false},
		{"far off to the left", [3]float32{-500, 0, 5}, 1, false},
		{"far below", [3]float32{0, 500, 5}, 1, false},
		{"huge sphere engulfing viewer", [3]float32{0, 0, -5}, 50, true},
		{"straddling the near plane", [3]float32{0, 0, 0}, 0.5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.ContainsSphere(tc.center[0], tc.center[1], tc.center[2], tc.radius)
			if got != tc.visible {
				t.Errorf("ContainsSphere(%v, r=%f) = %v, expected %v", tc.center, tc.radius, got, tc.visible)
			}
		})
	}
}

func TestContainsSphere_EdgeTouchIsVisible(t *testing.T) {
	f := litSceneFrustum()

	// Slightly behind the near plane but with a radius large enough to reach it.
	if !f.ContainsSphere(0, 0, 0.05, 0.1) {
		t.Error("sphere touching the near plane reported invisible")
	}
}
