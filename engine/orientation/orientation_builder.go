package orientation

import "github.com/go-gl/mathgl/mgl64"

// UpdaterBuilderOption is a functional option for configuring an Updater.
// Custom key bindings are collected separately so they override the arrow-key defaults.
type UpdaterBuilderOption func(u *updaterImpl, bindings map[uint32]mgl64.Vec3)

// WithAutoDelta sets the per-frame rotation delta in radians.
//
// Parameters:
//   - x, y, z: radians per frame about each axis
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithAutoDelta(x, y, z float64) UpdaterBuilderOption {
	return func(u *updaterImpl, _ map[uint32]mgl64.Vec3) {
		u.delta = mgl64.Vec3{x, y, z}
	}
}

// WithKeyStep sets the step, in radians, used by the default arrow-key bindings.
//
// Parameters:
//   - step: radians per key release
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithKeyStep(step float64) UpdaterBuilderOption {
	return func(u *updaterImpl, _ map[uint32]mgl64.Vec3) {
		u.step = step
	}
}

// WithKeyBinding binds a key to a rotation step, replacing any default binding for that key.
//
// Parameters:
//   - key: the key code
//   - dx, dy, dz: radians added about each axis on release
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithKeyBinding(key uint32, dx, dy, dz float64) UpdaterBuilderOption {
	return func(_ *updaterImpl, bindings map[uint32]mgl64.Vec3) {
		bindings[key] = mgl64.Vec3{dx, dy, dz}
	}
}
