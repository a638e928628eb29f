// Package orientation advances the lattice container rotation each frame according to one of three
// interaction modes chosen at startup.
package orientation

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Mode selects how the container rotation changes over time.
type Mode int

const (
	// ModeAuto adds a fixed rotation delta every frame.
	ModeAuto Mode = iota
	// ModeKeyStep rotates by a fixed step each time a bound key is released.
	ModeKeyStep
	// ModeDragDelegated auto-rotates while idle and stops while the orbit controller is dragging.
	ModeDragDelegated
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeKeyStep:
		return "keystep"
	case ModeDragDelegated:
		return "drag"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration name into a Mode.
//
// Parameters:
//   - s: one of "auto", "keystep" or "drag" (case-insensitive)
//
// Returns:
//   - Mode: the parsed mode
//   - error: error if the name is unknown
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ModeAuto, nil
	case "keystep":
		return ModeKeyStep, nil
	case "drag":
		return ModeDragDelegated, nil
	default:
		return ModeAuto, fmt.Errorf("unknown orientation mode %q", s)
	}
}

// State is the interaction state tracked in ModeDragDelegated.
type State int

const (
	StateIdle State = iota
	StateInteracting
)

// Rotatable is anything whose Euler rotation can be incremented.
type Rotatable interface {
	Rotate(dx, dy, dz float64)
}

// updaterImpl is the implementation of the Updater interface.
type updaterImpl struct {
	mode     Mode
	state    State
	delta    mgl64.Vec3
	step     float64
	bindings map[uint32]mgl64.Vec3
}

// Updater applies per-frame and per-event rotation changes to a Rotatable.
type Updater interface {
	// Mode returns the mode chosen at construction.
	//
	// Returns:
	//   - Mode: the update mode
	Mode() Mode

	// State returns the current interaction state. It only leaves StateIdle in ModeDragDelegated.
	//
	// Returns:
	//   - State: the interaction state
	State() State

	// AutoDelta returns the per-frame rotation delta used by ModeAuto and idle ModeDragDelegated.
	//
	// Returns:
	//   - mgl64.Vec3: radians per frame about X, Y and Z
	AutoDelta() mgl64.Vec3

	// Frame runs the per-frame update.
	//
	// Parameters:
	//   - target: the object to rotate
	Frame(target Rotatable)

	// KeyReleased handles a key release. Only ModeKeyStep reacts, and only to bound keys.
	//
	// Parameters:
	//   - key: the released key code
	//   - target: the object to rotate
	//
	// Returns:
	//   - bool: true if a rotation step was applied
	KeyReleased(key uint32, target Rotatable) bool

	// InteractionStarted marks the start of a pointer drag. Only ModeDragDelegated reacts.
	InteractionStarted()

	// InteractionEnded marks the end of a pointer drag. Only ModeDragDelegated reacts.
	InteractionEnded()
}

var _ Updater = &updaterImpl{}

// NewUpdater creates a new Updater for the given mode.
//
// The default auto delta is (0.005, 0.005, 0.01) radians per frame. The default key bindings map
// the arrow keys to pitch (up/down) and yaw (left/right) steps of 0.4 radians.
//
// Parameters:
//   - mode: the update mode
//   - options: a variadic list of UpdaterBuilderOption functions
//
// Returns:
//   - Updater: the new updater
func NewUpdater(mode Mode, options ...UpdaterBuilderOption) Updater {
	u := &updaterImpl{
		mode:     mode,
		state:    StateIdle,
		delta:    mgl64.Vec3{0.005, 0.005, 0.01},
		step:     0.4,
		bindings: make(map[uint32]mgl64.Vec3),
	}
	custom := make(map[uint32]mgl64.Vec3)
	for _, opt := range options {
		opt(u, custom)
	}

	u.bindings[common.KeyUp] = mgl64.Vec3{-u.step, 0, 0}
	u.bindings[common.KeyDown] = mgl64.Vec3{u.step, 0, 0}
	u.bindings[common.KeyLeft] = mgl64.Vec3{0, -u.step, 0}
	u.bindings[common.KeyRight] = mgl64.Vec3{0, u.step, 0}
	for k, v := range custom {
		u.bindings[k] = v
	}
	return u
}

func (u *updaterImpl) Mode() Mode {
	return u.mode
}

func (u *updaterImpl) State() State {
	return u.state
}

func (u *updaterImpl) AutoDelta() mgl64.Vec3 {
	return u.delta
}

func (u *updaterImpl) Frame(target Rotatable) {
	switch u.mode {
	case ModeAuto:
		target.Rotate(u.delta[0], u.delta[1], u.delta[2])
	case ModeDragDelegated:
		if u.state == StateIdle {
			target.Rotate(u.delta[0], u.delta[1], u.delta[2])
		}
	}
}

func (u *updaterImpl) KeyReleased(key uint32, target Rotatable) bool {
	if u.mode != ModeKeyStep {
		return false
	}
	d, ok := u.bindings[key]
	if !ok {
		return false
	}
	target.Rotate(d[0], d[1], d[2])
	return true
}

func (u *updaterImpl) InteractionStarted() {
	if u.mode == ModeDragDelegated {
		u.state = StateInteracting
	}
}

func (u *updaterImpl) InteractionEnded() {
	if u.mode == ModeDragDelegated {
		u.state = StateIdle
	}
}
