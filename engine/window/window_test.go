package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestMouseButtonMapping(t *testing.T) {
	tests := []struct {
		in   glfw.MouseButton
		want MouseButton
		ok   bool
	}{
		{glfw.MouseButtonLeft, MouseButtonLeft, true},
		{glfw.MouseButtonRight, MouseButtonRight, true},
		{glfw.MouseButtonMiddle, MouseButtonMiddle, true},
		{glfw.MouseButton4, 0, false},
	}
	for _, tt := range tests {
		got, ok := mouseButton(tt.in)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "left", MouseButtonLeft.String())
	assert.Equal(t, "unknown", MouseButton(9).String())
}

func TestSizeLimit(t *testing.T) {
	assert.Equal(t, glfw.DontCare, sizeLimit(0))
	assert.Equal(t, glfw.DontCare, sizeLimit(-5))
	assert.Equal(t, 640, sizeLimit(640))
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("cube"), WithWidth(800), WithHeight(600), WithMinSize(100, 50), WithMaxSize(1920, 0),
	} {
		opt(w)
	}
	assert.Equal(t, "cube", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, [4]int{100, 50, 1920, 0}, [4]int{w.minWidth, w.minHeight, w.maxWidth, w.maxHeight})
	assert.False(t, w.IsRunning())
	assert.Error(t, w.Close())
	assert.NotPanics(t, w.RequestClose)
}
