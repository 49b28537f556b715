package scene

import (
	"github.com/Carmen-Shannon/prism-go/engine/mesh"
)

// EntityBuilderOption is a functional option used to configure an Entity during construction.
type EntityBuilderOption func(*entity)

// NewEntity creates a new Entity with the specified options applied. The
// entity starts with identity scale, white color, and no mesh or light; the
// Registry assigns its identifier on insertion.
//
// Parameters:
//   - options: a variadic list of EntityBuilderOption functions to configure the Entity
//
// Returns:
//   - Entity: a new instance of Entity configured with the provided options
func NewEntity(options ...EntityBuilderOption) Entity {
	e := &entity{
		scale: [3]float32{1, 1, 1},
		color: [3]float32{1, 1, 1},
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// WithTranslation is an option builder that sets the entity's world-space position.
//
// Parameters:
//   - t: the translation as (x, y, z)
//
// Returns:
//   - EntityBuilderOption: a function that sets the translation
func WithTranslation(t [3]float32) EntityBuilderOption {
	return func(e *entity) {
		e.translation = t
	}
}

// WithRotation is an option builder that sets the entity's orientation angles.
//
// Parameters:
//   - r: the rotation as (x, y, z) angles in radians, applied in Y, X, Z order
//
// Returns:
//   - EntityBuilderOption: a function that sets the rotation
func WithRotation(r [3]float32) EntityBuilderOption {
	return func(e *entity) {
		e.rotation = r
	}
}

// WithScale is an option builder that sets the entity's non-uniform scale.
//
// Parameters:
//   - s: the scale as (x, y, z)
//
// Returns:
//   - EntityBuilderOption: a function that sets the scale
func WithScale(s [3]float32) EntityBuilderOption {
	return func(e *entity) {
		e.scale = s
	}
}

// WithColor is an option builder that sets the entity color.
//
// Parameters:
//   - c: the color as (r, g, b)
//
// Returns:
//   - EntityBuilderOption: a function that sets the color
func WithColor(c [3]float32) EntityBuilderOption {
	return func(e *entity) {
		e.color = c
	}
}

// WithMesh is an option builder that attaches a shared mesh reference to the
// entity. The entity owns the handle from this point; the Registry releases
// it when the entity is removed.
//
// Parameters:
//   - h: the mesh handle to attach
//
// Returns:
//   - EntityBuilderOption: a function that attaches the mesh handle
func WithMesh(h *mesh.Handle) EntityBuilderOption {
	return func(e *entity) {
		e.meshHandle = h
	}
}

// WithPointLight is an option builder that attaches a point light attribute
// to the entity.
//
// Parameters:
//   - intensity: the light intensity
//   - radius: the world-space billboard radius
//
// Returns:
//   - EntityBuilderOption: a function that attaches the light attribute
func WithPointLight(intensity, radius float32) EntityBuilderOption {
	return func(e *entity) {
		e.light = &PointLight{Intensity: intensity, Radius: radius}
	}
}
