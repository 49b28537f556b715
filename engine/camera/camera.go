package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/prism-go/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	position [3]float32
	rotation [3]float32

	projectionMatrix     [16]float32
	viewMatrix           [16]float32
	inverseViewMatrix    [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for the camera system. The camera holds
// perspective settings and a viewer pose, and derives the projection, view,
// and inverse-view matrices the frame's global state is populated from. The
// inverse view carries the camera's world position in its fourth column,
// which the lighting math reads back for specular highlights.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height) of the last
	// SetPerspective call.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the viewer's world-space position.
	//
	// Returns:
	//   - [3]float32: the position as (x, y, z)
	Position() [3]float32

	// Rotation returns the viewer's orientation as Tait-Bryan angles in
	// radians, applied in Y, X, Z order.
	//
	// Returns:
	//   - [3]float32: the rotation as (x, y, z) angles
	Rotation() [3]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// InverseViewMatrix returns the inverse of the current view matrix as 16
	// floats (column-major). Column 3 holds the camera's world position.
	//
	// Returns:
	//   - [16]float32: the inverse view matrix
	InverseViewMatrix() [16]float32

	// ViewProjectionMatrix returns the combined projection * view matrix as 16
	// floats (column-major). Frustum culling extracts its planes from this.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// SetPerspective recomputes the projection matrix for the given aspect
	// ratio using the stored field of view and clip planes. Called once per
	// frame so the projection tracks window resizes.
	//
	// Parameters:
	//   - aspect: the surface aspect ratio (width / height)
	SetPerspective(aspect float32)

	// SetViewYXZ recomputes the view and inverse-view matrices from a viewer
	// pose, rotating in Y, X, Z order.
	//
	// Parameters:
	//   - position: the viewer's world-space position
	//   - rotation: the viewer's orientation angles in radians
	SetViewYXZ(position, rotation [3]float32)

	// SetFov sets the vertical field of view in radians and recomputes the
	// projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetNear sets the near clipping plane distance and recomputes the
	// projection.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the
	// projection.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the specified options applied. Defaults
// to a 50 degree vertical field of view with clip planes at 0.1 and 100, the
// identity view, and a unit aspect until the first SetPerspective call.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    50.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.inverseViewMatrix[:])
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	c.updateView()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Rotation() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) InverseViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPerspective(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetViewYXZ(position, rotation [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.rotation = rotation
	c.updateView()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// updateProjection recomputes the projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// updateView recomputes the view, inverse-view, and view-projection matrices
// from the stored viewer pose. Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	common.ViewYXZ(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.rotation[0], c.rotation[1], c.rotation[2],
	)
	common.InverseViewYXZ(c.inverseViewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.rotation[0], c.rotation[1], c.rotation[2],
	)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
