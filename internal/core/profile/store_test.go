package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-session-window/internal/core/window"
)

func testWindows(t *testing.T, gap, maxSpan, grace time.Duration) window.SessionWindows {
	t.Helper()
	w, err := window.OfInactivityGapMaxSpanAndGrace(gap, maxSpan, grace)
	require.NoError(t, err)
	return w
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	store := NewStore(path)

	w := testWindows(t, 5*time.Millisecond, 30*time.Second, time.Second)
	require.NoError(t, store.Put(NewProfile("dev", w)))
	require.NoError(t, store.Save())

	// No temp file left behind after the atomic rename
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())

	p, ok := reloaded.Get("dev")
	require.True(t, ok)
	assert.Equal(t, int64(5), p.InactivityGapMs)
	assert.Equal(t, int64(30000), p.MaxSpanMs)
	assert.Equal(t, int64(1000), p.GraceMs)
	assert.NotZero(t, p.UpdatedAt)

	got, err := p.Windows()
	require.NoError(t, err)
	assert.True(t, w.Equal(got))
}

func TestStoreLoadMissingFileStartsFresh(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Load())
	assert.Empty(t, store.List())
}

func TestStoreLoadRejectsInvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	// Hand-edited file with a zero gap
	data := `{"profiles":[{"name":"broken","inactivity_gap_ms":0,"max_span_ms":600000,"grace_ms":0}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	store := NewStore(path)
	err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, window.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "broken")
}

func TestStoreLoadRejectsEmptyName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	data := `{"profiles":[{"name":"","inactivity_gap_ms":5,"max_span_ms":600000,"grace_ms":0}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	store := NewStore(path)
	assert.Error(t, store.Load())
}

func TestStorePutValidates(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))

	err := store.Put(Profile{Name: "", InactivityGapMs: 5})
	assert.Error(t, err)

	err = store.Put(Profile{Name: "bad", InactivityGapMs: 0, MaxSpanMs: 1000})
	require.Error(t, err)
	assert.ErrorIs(t, err, window.ErrInvalidArgument)
}

func TestStorePutReplacesExisting(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))

	require.NoError(t, store.Put(NewProfile("dev", testWindows(t, 5*time.Millisecond, 30*time.Second, 0))))
	require.NoError(t, store.Put(NewProfile("dev", testWindows(t, 10*time.Millisecond, time.Minute, 0))))

	p, ok := store.Get("dev")
	require.True(t, ok)
	assert.Equal(t, int64(10), p.InactivityGapMs)
	assert.Len(t, store.List(), 1)
}

func TestStoreRemove(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Put(NewProfile("dev", testWindows(t, 5*time.Millisecond, 30*time.Second, 0))))

	assert.True(t, store.Remove("dev"))
	assert.False(t, store.Remove("dev"))

	_, ok := store.Get("dev")
	assert.False(t, ok)
}

func TestStoreListSortedByName(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	w := testWindows(t, 5*time.Millisecond, 30*time.Second, 0)

	for _, name := range []string{"staging", "dev", "prod"} {
		require.NoError(t, store.Put(NewProfile(name, w)))
	}

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "dev", list[0].Name)
	assert.Equal(t, "prod", list[1].Name)
	assert.Equal(t, "staging", list[2].Name)
}
