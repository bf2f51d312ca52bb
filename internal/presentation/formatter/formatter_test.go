package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-session-window/internal/core/profile"
	"github.com/penwyp/go-session-window/internal/core/window"
)

func TestRenderWindows(t *testing.T) {
	w, err := window.OfInactivityGapMaxSpanAndGrace(5*time.Millisecond, 30*time.Second, time.Second)
	require.NoError(t, err)

	out := RenderWindows(w)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PARAMETER")
	assert.Contains(t, lines[1], "inactivity-gap")
	assert.Contains(t, lines[1], "5ms")
	assert.Contains(t, lines[2], "30000")
	assert.Contains(t, lines[3], "1s")

	// Deterministic
	assert.Equal(t, out, RenderWindows(w))
}

func TestRenderWindowsJSON(t *testing.T) {
	w, err := window.OfInactivityGapMaxSpanAndGrace(5*time.Millisecond, 30*time.Second, time.Second)
	require.NoError(t, err)

	out, err := RenderWindowsJSON(w)
	require.NoError(t, err)

	var decoded map[string]int64
	require.NoError(t, sonic.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, int64(5), decoded["inactivity_gap_ms"])
	assert.Equal(t, int64(30000), decoded["max_span_ms"])
	assert.Equal(t, int64(1000), decoded["grace_ms"])
}

func TestRenderProfiles(t *testing.T) {
	w, err := window.OfInactivityGapMaxSpanAndGrace(5*time.Millisecond, 30*time.Second, 0)
	require.NoError(t, err)

	out := RenderProfiles([]profile.Profile{
		profile.NewProfile("dev", w),
		profile.NewProfile("prod", w),
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "MAX SPAN")
	assert.Contains(t, lines[1], "dev")
	assert.Contains(t, lines[2], "prod")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, "abc", pad("abc", 3))
	assert.Equal(t, "abc", pad("abc", 2))
}
