package scene

import (
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// PointLight is the light attribute an entity can carry. An entity with a
// PointLight contributes one entry to the frame's global light array; its
// color comes from the entity color and its position from the entity
// translation.
type PointLight struct {
	// Intensity scales the light's contribution in the lighting pass.
	Intensity float32
	// Radius is the world-space radius of the light's billboard.
	Radius float32
}

// entity is the implementation of the Entity interface.
type entity struct {
	mu sync.RWMutex

	id          uint64
	translation [3]float32
	rotation    [3]float32
	scale       [3]float32
	color       [3]float32
	meshHandle  *mesh.Handle
	light       *PointLight
}

// Entity defines the interface for a scene object. An entity is a transform
// plus optional attributes: a shared mesh reference for geometry and a point
// light. Entities are created between frames; during a frame subsystems read
// them concurrently, so accessors are guarded.
type Entity interface {
	// ID returns the entity's unique identifier. Zero until the entity is
	// inserted into a Registry, which assigns the identifier.
	//
	// Returns:
	//   - uint64: the entity ID, or 0 if unassigned
	ID() uint64

	// SetID assigns the entity's unique identifier. Called by the Registry on
	// insertion; not intended for general use.
	//
	// Parameters:
	//   - id: the identifier to assign
	SetID(id uint64)

	// Translation returns the world-space position.
	//
	// Returns:
	//   - [3]float32: the translation as (x, y, z)
	Translation() [3]float32

	// SetTranslation sets the world-space position.
	//
	// Parameters:
	//   - t: the translation as (x, y, z)
	SetTranslation(t [3]float32)

	// Rotation returns the orientation as Tait-Bryan angles in radians,
	// applied in Y, X, Z order.
	//
	// Returns:
	//   - [3]float32: the rotation as (x, y, z) angles
	Rotation() [3]float32

	// SetRotation sets the orientation angles.
	//
	// Parameters:
	//   - r: the rotation as (x, y, z) angles in radians
	SetRotation(r [3]float32)

	// Scale returns the non-uniform scale vector.
	//
	// Returns:
	//   - [3]float32: the scale as (x, y, z)
	Scale() [3]float32

	// SetScale sets the non-uniform scale vector.
	//
	// Parameters:
	//   - s: the scale as (x, y, z)
	SetScale(s [3]float32)

	// Color returns the entity color. Used as the light color for light
	// entities; mesh entities are colored by their vertex data.
	//
	// Returns:
	//   - [3]float32: the color as (r, g, b)
	Color() [3]float32

	// SetColor sets the entity color.
	//
	// Parameters:
	//   - c: the color as (r, g, b)
	SetColor(c [3]float32)

	// Mesh returns the entity's shared mesh reference, or nil for entities
	// without geometry. The handle is released when the entity is removed
	// from its Registry.
	//
	// Returns:
	//   - *mesh.Handle: the mesh handle or nil
	Mesh() *mesh.Handle

	// Light returns the entity's point light attribute, or nil for unlit
	// entities.
	//
	// Returns:
	//   - *PointLight: the light attribute or nil
	Light() *PointLight
}

var _ Entity = &entity{}

func (e *entity) ID() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.id
}

func (e *entity) SetID(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = id
}

func (e *entity) Translation() [3]float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.translation
}

func (e *entity) SetTranslation(t [3]float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.translation = t
}

func (e *entity) Rotation() [3]float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rotation
}

func (e *entity) SetRotation(r [3]float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotation = r
}

func (e *entity) Scale() [3]float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scale
}

func (e *entity) SetScale(s [3]float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scale = s
}

func (e *entity) Color() [3]float32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.color
}

func (e *entity) SetColor(c [3]float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.color = c
}

func (e *entity) Mesh() *mesh.Handle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.meshHandle
}

func (e *entity) Light() *PointLight {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.light
}
