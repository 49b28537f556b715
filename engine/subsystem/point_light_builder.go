package subsystem

import "sync"

// PointLightSubsystemBuilderOption is a functional option used to configure a
// PointLightSubsystem during construction.
type PointLightSubsystemBuilderOption func(*pointLightSubsystem)

// NewPointLightSubsystem creates the point light subsystem with the provided
// options applied. GPU resources are not created here; the engine calls Init
// before the first frame.
//
// Parameters:
//   - options: variadic list of PointLightSubsystemBuilderOption functions
//
// Returns:
//   - PointLightSubsystem: the newly created subsystem
func NewPointLightSubsystem(options ...PointLightSubsystemBuilderOption) PointLightSubsystem {
	p := &pointLightSubsystem{
		mu:         &sync.Mutex{},
		orbitSpeed: 1.0,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// WithOrbitSpeed sets the angular speed, in radians per second, at which light
// positions orbit the world Y axis. Pass 0 to disable the orbit. Defaults to 1.
//
// Parameters:
//   - speed: the orbit speed in radians per second
//
// Returns:
//   - PointLightSubsystemBuilderOption: option function to apply
func WithOrbitSpeed(speed float32) PointLightSubsystemBuilderOption {
	return func(p *pointLightSubsystem) {
		p.orbitSpeed = speed
	}
}
