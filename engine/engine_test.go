package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/pixelcube/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a bounded message loop and lets tests inject events before given iterations.
type fakeWindow struct {
	width, height int
	running       bool
	iterations    int
	maxIterations int
	before        map[int]func(w *fakeWindow)

	onUpdate func()
	onResize func(width, height int)
}

var _ window.Window = &fakeWindow{}

func newFakeWindow(maxIterations int) *fakeWindow {
	return &fakeWindow{width: 800, height: 600, running: true, maxIterations: maxIterations, before: map[int]func(*fakeWindow){}}
}

func (w *fakeWindow) SetUpdateCallback(cb func())                                      { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))                     { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(float32))                                  {}
func (w *fakeWindow) SetKeyDownCallback(func(uint32))                                  {}
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                                    {}
func (w *fakeWindow) SetMouseDownCallback(func(window.MouseButton, float32, float32)) {}
func (w *fakeWindow) SetMouseUpCallback(func(window.MouseButton, float32, float32))   {}
func (w *fakeWindow) SetMouseMoveCallback(func(float32, float32))                      {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor                       { return nil }
func (w *fakeWindow) IsRunning() bool                                                  { return w.running }
func (w *fakeWindow) RequestClose()                                                    { w.running = false }
func (w *fakeWindow) Close() error                                                     { w.running = false; return nil }
func (w *fakeWindow) Width() int                                                       { return w.width }
func (w *fakeWindow) Height() int                                                      { return w.height }

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *fakeWindow) ProcessMessages() {
	for w.running && w.iterations < w.maxIterations {
		if ev, ok := w.before[w.iterations]; ok {
			ev(w)
		}
		w.iterations++
		if !w.running {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

// fakeClock advances by step on every read.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
}

func TestRunCallsFramePerIteration(t *testing.T) {
	w := newFakeWindow(5)
	clock := &fakeClock{t: time.Unix(0, 0), step: 10 * time.Millisecond}
	var deltas []float32
	e := NewEngine(WithWindow(w), withClock(clock.now, clock.sleep), WithFrameCallback(func(dt float32) error {
		deltas = append(deltas, dt)
		return nil
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(5), e.Frames())
	require.Len(t, deltas, 5)
	for _, dt := range deltas {
		assert.Greater(t, dt, float32(0))
	}
}

func TestFrameErrorsDoNotStopTheLoop(t *testing.T) {
	w := newFakeWindow(4)
	calls := 0
	e := NewEngine(WithWindow(w), WithFrameCallback(func(float32) error {
		calls++
		return errors.New("surface lost")
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, 4, calls)
}

func TestPanicQuitsAndIsReturned(t *testing.T) {
	w := newFakeWindow(10)
	calls := 0
	e := NewEngine(WithWindow(w), WithFrameCallback(func(float32) error {
		calls++
		if calls == 3 {
			panic("boom")
		}
		return nil
	}))

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 3, calls)
	assert.False(t, w.IsRunning())
}

func TestQuitStopsAfterCurrentFrame(t *testing.T) {
	w := newFakeWindow(100)
	var e Engine
	e = NewEngine(WithWindow(w), WithFrameCallback(func(float32) error {
		if e.Frames() == 1 {
			e.Quit()
		}
		return nil
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, uint64(2), e.Frames())
	assert.Equal(t, 2, w.iterations)
}

func TestResizeIsForwarded(t *testing.T) {
	w := newFakeWindow(3)
	w.before[1] = func(w *fakeWindow) { w.resize(1024, 768) }
	w.before[2] = func(w *fakeWindow) { w.resize(0, 0) }
	var sizes [][2]int
	e := NewEngine(WithWindow(w), WithResizeCallback(func(width, height int) error {
		sizes = append(sizes, [2]int{width, height})
		if width == 0 {
			return errors.New("minimized")
		}
		return nil
	}))

	require.NoError(t, e.Run())
	assert.Equal(t, [][2]int{{1024, 768}, {0, 0}}, sizes)
}

func TestFrameLimitSleepsForRemainder(t *testing.T) {
	w := newFakeWindow(2)
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Millisecond}
	e := NewEngine(WithWindow(w), withClock(clock.now, clock.sleep), WithRenderFrameLimit(100))

	require.NoError(t, e.Run())
	require.Len(t, clock.slept, 2)
	// frame start and the limit check are one clock step apart
	assert.Equal(t, 9*time.Millisecond, clock.slept[0])
}

func TestRunWithoutWindow(t *testing.T) {
	assert.Error(t, NewEngine().Run())
}
