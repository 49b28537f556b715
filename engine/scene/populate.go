package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// Mesh library names the demo scene expects to be registered before population.
const (
	// MeshFloor is the library name of the floor quad mesh.
	MeshFloor = "floor"
	// MeshCharacter is the library name of the character model mesh.
	MeshCharacter = "character"
	// MeshBush is the library name of the bush model mesh.
	MeshBush = "bush"
)

// PopulateDemoScene fills the registry with the stock demo scene: a large
// floor quad, a low-poly character, a rotated bush, and the orange "solar"
// point light hanging high above. The library must already hold meshes under
// MeshFloor, MeshCharacter, and MeshBush; each placed entity acquires its own
// handle so meshes are shared, not copied.
//
// Parameters:
//   - reg: the registry to insert entities into
//   - lib: the mesh library to acquire geometry from
//
// Returns:
//   - error: an error if any required mesh is not registered
func PopulateDemoScene(reg *Registry, lib mesh.Library) error {
	floorMesh, err := lib.Acquire(MeshFloor)
	if err != nil {
		return fmt.Errorf("failed to populate scene: %w", err)
	}
	reg.Insert(NewEntity(
		WithMesh(floorMesh),
		WithTranslation([3]float32{0, 0.5, 0}),
		WithScale([3]float32{6, 1, 6}),
	))

	characterMesh, err := lib.Acquire(MeshCharacter)
	if err != nil {
		return fmt.Errorf("failed to populate scene: %w", err)
	}
	reg.Insert(NewEntity(
		WithMesh(characterMesh),
		WithTranslation([3]float32{1, -0.2, 0}),
		WithScale([3]float32{0.2, 0.2, 0.2}),
	))

	bushMesh, err := lib.Acquire(MeshBush)
	if err != nil {
		return fmt.Errorf("failed to populate scene: %w", err)
	}
	reg.Insert(NewEntity(
		WithMesh(bushMesh),
		WithTranslation([3]float32{-2, 0.5, 4}),
		WithScale([3]float32{0.5, 0.5, 0.5}),
		WithRotation([3]float32{0, 2, 0}),
	))

	// The sun: far overhead in the Y-down world, warm orange, strong enough to
	// light the whole floor.
	reg.Insert(NewEntity(
		WithPointLight(350.2, 0.4),
		WithColor([3]float32{1, 0.5, 0}),
		WithTranslation([3]float32{-2, -30, -5}),
	))

	return nil
}

// ScatterBushes sprinkles count bush entities across the floor area at random
// positions and orientations. The caller seeds the random source, which makes
// placement reproducible.
//
// Parameters:
//   - reg: the registry to insert entities into
//   - lib: the mesh library to acquire the bush mesh from
//   - rng: the seeded random source driving placement
//   - count: the number of bushes to place
//
// Returns:
//   - error: an error if the bush mesh is not registered
func ScatterBushes(reg *Registry, lib mesh.Library, rng *rand.Rand, count int) error {
	for i := 0; i < count; i++ {
		h, err := lib.Acquire(MeshBush)
		if err != nil {
			return fmt.Errorf("failed to scatter bushes: %w", err)
		}
		x := float32(rng.Float64()*11 - 5.5)
		z := float32(rng.Float64()*11 - 5.5)
		yaw := float32(rng.Float64() * 2 * math.Pi)
		reg.Insert(NewEntity(
			WithMesh(h),
			WithTranslation([3]float32{x, 0.5, z}),
			WithScale([3]float32{0.5, 0.5, 0.5}),
			WithRotation([3]float32{0, yaw, 0}),
		))
	}
	return nil
}
