package orientation

import (
	"testing"

	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spinner struct {
	rot   mgl64.Vec3
	calls int
}

func (s *spinner) Rotate(dx, dy, dz float64) {
	s.rot = s.rot.Add(mgl64.Vec3{dx, dy, dz})
	s.calls++
}

func TestAutoAccumulatesPerFrame(t *testing.T) {
	u := NewUpdater(ModeAuto)
	s := &spinner{}
	const frames = 1000
	for range frames {
		u.Frame(s)
	}
	assert.InDelta(t, frames*0.005, s.rot.X(), 1e-9)
	assert.InDelta(t, frames*0.005, s.rot.Y(), 1e-9)
	assert.InDelta(t, frames*0.01, s.rot.Z(), 1e-9)
}

func TestAutoIgnoresKeysAndDrag(t *testing.T) {
	u := NewUpdater(ModeAuto)
	s := &spinner{}
	assert.False(t, u.KeyReleased(common.KeyUp, s))
	u.InteractionStarted()
	assert.Equal(t, StateIdle, u.State())
	u.Frame(s)
	assert.Equal(t, 1, s.calls)
}

func TestKeyStepReleaseAppliesOneStep(t *testing.T) {
	cases := []struct {
		name string
		key  uint32
		want mgl64.Vec3
	}{
		{"up", common.KeyUp, mgl64.Vec3{-0.4, 0, 0}},
		{"down", common.KeyDown, mgl64.Vec3{0.4, 0, 0}},
		{"left", common.KeyLeft, mgl64.Vec3{0, -0.4, 0}},
		{"right", common.KeyRight, mgl64.Vec3{0, 0.4, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewUpdater(ModeKeyStep)
			s := &spinner{}
			require.True(t, u.KeyReleased(tc.key, s))
			assert.Equal(t, 1, s.calls)
			assert.True(t, s.rot.ApproxEqual(tc.want))
		})
	}
}

func TestKeyStepFrameAndUnboundKeys(t *testing.T) {
	u := NewUpdater(ModeKeyStep)
	s := &spinner{}
	for range 10 {
		u.Frame(s)
	}
	assert.False(t, u.KeyReleased(common.KeyW, s))
	assert.Zero(t, s.calls)
}

func TestKeyStepOptions(t *testing.T) {
	u := NewUpdater(ModeKeyStep, WithKeyStep(0.1), WithKeyBinding(common.KeyUp, 0, 0, 1), WithKeyBinding(common.KeyW, 2, 0, 0))
	s := &spinner{}
	u.KeyReleased(common.KeyDown, s)
	u.KeyReleased(common.KeyUp, s)
	u.KeyReleased(common.KeyW, s)
	assert.True(t, s.rot.ApproxEqual(mgl64.Vec3{2.1, 0, 1}))
}

func TestDragDelegatedSuspendsWhileInteracting(t *testing.T) {
	u := NewUpdater(ModeDragDelegated, WithAutoDelta(0.1, 0, 0))
	s := &spinner{}

	u.Frame(s)
	assert.InDelta(t, 0.1, s.rot.X(), 1e-12)

	u.InteractionStarted()
	assert.Equal(t, StateInteracting, u.State())
	for range 500 {
		u.Frame(s)
	}
	assert.InDelta(t, 0.1, s.rot.X(), 1e-12)
	assert.False(t, u.KeyReleased(common.KeyUp, s))

	u.InteractionEnded()
	assert.Equal(t, StateIdle, u.State())
	u.Frame(s)
	assert.InDelta(t, 0.2, s.rot.X(), 1e-12)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeAuto, ModeKeyStep, ModeDragDelegated} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode(" Drag ")
	require.NoError(t, err)
	assert.Equal(t, ModeDragDelegated, got)

	_, err = ParseMode("spin")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
