package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/prism-go/common"
)

// KeyPoller reports live keyboard state. window.Window satisfies it; tests
// substitute a fake to drive the controller deterministically.
type KeyPoller interface {
	// KeyPressed reports whether the given key is currently held down.
	//
	// Parameters:
	//   - keyCode: the virtual key code to check
	//
	// Returns:
	//   - bool: true if the key is held down
	KeyPressed(keyCode uint32) bool
}

// maxPitch clamps looking up and down to just short of straight vertical,
// where the yaw-derived forward vector would collapse.
const maxPitch = 1.5

// keyboardController is the implementation of the KeyboardController interface.
type keyboardController struct {
	mu *sync.Mutex

	position [3]float32
	rotation [3]float32

	moveSpeed float32
	lookSpeed float32
}

// KeyboardController owns the viewer pose and steers it from keyboard input.
// WASD moves in the ground plane along the current yaw, E and Q move up and
// down the world axis, and the arrow keys look around. The engine feeds the
// resulting pose into Camera.SetViewYXZ each frame.
type KeyboardController interface {
	// Position returns the viewer's world-space position.
	//
	// Returns:
	//   - [3]float32: the position as (x, y, z)
	Position() [3]float32

	// SetPosition sets the viewer's world-space position.
	//
	// Parameters:
	//   - p: the position as (x, y, z)
	SetPosition(p [3]float32)

	// Rotation returns the viewer's orientation angles in radians.
	//
	// Returns:
	//   - [3]float32: the rotation as (x, y, z) angles
	Rotation() [3]float32

	// SetRotation sets the viewer's orientation angles.
	//
	// Parameters:
	//   - r: the rotation as (x, y, z) angles in radians
	SetRotation(r [3]float32)

	// MoveSpeed returns the translation speed in units per second.
	//
	// Returns:
	//   - float32: the move speed
	MoveSpeed() float32

	// LookSpeed returns the rotation speed in radians per second.
	//
	// Returns:
	//   - float32: the look speed
	LookSpeed() float32

	// MoveInPlaneXZ advances the viewer pose by one frame of input. Movement
	// stays in the horizontal plane regardless of pitch; diagonal input is
	// normalized so it is no faster than a single axis. Pitch is clamped and
	// yaw wraps, so the pose never gimbal-locks.
	//
	// Parameters:
	//   - keys: the live keyboard state to read
	//   - dt: the frame time in seconds
	MoveInPlaneXZ(keys KeyPoller, dt float32)
}

var _ KeyboardController = &keyboardController{}

func (k *keyboardController) Position() [3]float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.position
}

func (k *keyboardController) SetPosition(p [3]float32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.position = p
}

func (k *keyboardController) Rotation() [3]float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.rotation
}

func (k *keyboardController) SetRotation(r [3]float32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rotation = r
}

func (k *keyboardController) MoveSpeed() float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.moveSpeed
}

func (k *keyboardController) LookSpeed() float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lookSpeed
}

func (k *keyboardController) MoveInPlaneXZ(keys KeyPoller, dt float32) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var rotate [3]float32
	if keys.KeyPressed(common.KeyRight) {
		rotate[1] += 1
	}
	if keys.KeyPressed(common.KeyLeft) {
		rotate[1] -= 1
	}
	if keys.KeyPressed(common.KeyUp) {
		rotate[0] += 1
	}
	if keys.KeyPressed(common.KeyDown) {
		rotate[0] -= 1
	}
	if lenSq := rotate[0]*rotate[0] + rotate[1]*rotate[1]; lenSq > 1e-8 {
		invLen := k.lookSpeed * dt / float32(math.Sqrt(float64(lenSq)))
		k.rotation[0] += rotate[0] * invLen
		k.rotation[1] += rotate[1] * invLen
	}
	if k.rotation[0] > maxPitch {
		k.rotation[0] = maxPitch
	}
	if k.rotation[0] < -maxPitch {
		k.rotation[0] = -maxPitch
	}
	k.rotation[1] = float32(math.Mod(float64(k.rotation[1]), 2*math.Pi))

	yaw := float64(k.rotation[1])
	forward := [3]float32{float32(math.Sin(yaw)), 0, float32(math.Cos(yaw))}
	right := [3]float32{forward[2], 0, -forward[0]}
	up := [3]float32{0, -1, 0}

	var move [3]float32
	add := func(dir [3]float32, sign float32) {
		move[0] += dir[0] * sign
		move[1] += dir[1] * sign
		move[2] += dir[2] * sign
	}
	if keys.KeyPressed(common.KeyW) {
		add(forward, 1)
	}
	if keys.KeyPressed(common.KeyS) {
		add(forward, -1)
	}
	if keys.KeyPressed(common.KeyD) {
		add(right, 1)
	}
	if keys.KeyPressed(common.KeyA) {
		add(right, -1)
	}
	if keys.KeyPressed(common.KeyE) {
		add(up, 1)
	}
	if keys.KeyPressed(common.KeyQ) {
		add(up, -1)
	}
	if lenSq := move[0]*move[0] + move[1]*move[1] + move[2]*move[2]; lenSq > 1e-8 {
		invLen := k.moveSpeed * dt / float32(math.Sqrt(float64(lenSq)))
		k.position[0] += move[0] * invLen
		k.position[1] += move[1] * invLen
		k.position[2] += move[2] * invLen
	}
}
