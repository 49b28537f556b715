package camera

import "sync"

// KeyboardControllerOption is a functional option for configuring a KeyboardController.
// Use the With* functions to create options.
type KeyboardControllerOption func(k *keyboardController)

// NewKeyboardController creates a keyboard movement controller with the
// provided options applied. Defaults to 3 units per second of movement and
// 1.5 radians per second of look speed, starting at the origin facing +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - KeyboardController: the newly created controller
func NewKeyboardController(options ...KeyboardControllerOption) KeyboardController {
	k := &keyboardController{
		mu:        &sync.Mutex{},
		moveSpeed: 3.0,
		lookSpeed: 1.5,
	}
	for _, option := range options {
		option(k)
	}
	return k
}

// WithStartPosition sets the viewer's starting position.
//
// Parameters:
//   - p: the position as (x, y, z)
//
// Returns:
//   - KeyboardControllerOption: option function to apply
func WithStartPosition(p [3]float32) KeyboardControllerOption {
	return func(k *keyboardController) {
		k.position = p
	}
}

// WithStartRotation sets the viewer's starting orientation angles.
//
// Parameters:
//   - r: the rotation as (x, y, z) angles in radians
//
// Returns:
//   - KeyboardControllerOption: option function to apply
func WithStartRotation(r [3]float32) KeyboardControllerOption {
	return func(k *keyboardController) {
		k.rotation = r
	}
}

// WithMoveSpeed sets the translation speed in units per second.
//
// Parameters:
//   - speed: the move speed
//
// Returns:
//   - KeyboardControllerOption: option function to apply
func WithMoveSpeed(speed float32) KeyboardControllerOption {
	return func(k *keyboardController) {
		k.moveSpeed = speed
	}
}

// WithLookSpeed sets the rotation speed in radians per second.
//
// Parameters:
//   - speed: the look speed
//
// Returns:
//   - KeyboardControllerOption: option function to apply
func WithLookSpeed(speed float32) KeyboardControllerOption {
	return func(k *keyboardController) {
		k.lookSpeed = speed
	}
}
