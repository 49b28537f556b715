package camera

// CameraBuilderOption is a functional option for configuring a Camera.
// Use the With* functions to create options.
type CameraBuilderOption func(c *cameraImpl)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio. The per-frame SetPerspective call
// overrides this once the surface size is known.
//
// Parameters:
//   - aspect: the aspect ratio (width / height)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithPose sets the initial viewer position and rotation.
//
// Parameters:
//   - position: the viewer's world-space position
//   - rotation: the viewer's orientation angles in radians, applied Y, X, Z
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithPose(position, rotation [3]float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
		c.rotation = rotation
	}
}
