package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var out bytes.Buffer
	now := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(zerolog.New(&out)),
		WithInterval(time.Second),
		withClock(func() time.Time { return now }),
	)

	for range 19 {
		now = now.Add(50 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, out.Len())

	now = now.Add(50 * time.Millisecond)
	require.True(t, p.Tick())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "profiler", entry["message"])
	assert.InDelta(t, 20, entry["fps"], 0.01)
	assert.Contains(t, entry, "heap_mb")

	out.Reset()
	now = now.Add(50 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Zero(t, out.Len())
}
