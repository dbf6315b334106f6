package stdhost

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	h := New(&buf)
	h.Output("hello")
	h.Output("world")
	assert.Equal(t, "hello\nworld\n", buf.String())
}

func TestReadLineWithoutInputReturnsFalse(t *testing.T) {
	h := New(&bytes.Buffer{})
	_, ok := h.ReadLine()
	assert.False(t, ok)
}

func TestReadLineDrainsSuppliedReader(t *testing.T) {
	h := New(&bytes.Buffer{}, WithInput(strings.NewReader("a\nb\n")))
	line, ok := h.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "a", line)
	line, ok = h.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "b", line)
	_, ok = h.ReadLine()
	assert.False(t, ok)
}

func TestInscribeThenScryRoundTrips(t *testing.T) {
	h := New(&bytes.Buffer{})
	path := filepath.Join(t.TempDir(), "scroll.txt")

	require.NoError(t, h.Inscribe(path, "the rite is written"))
	got, err := h.Scry(path)
	require.NoError(t, err)
	assert.Equal(t, "the rite is written", got)
}

func TestScryMissingFileErrors(t *testing.T) {
	h := New(&bytes.Buffer{})
	_, err := h.Scry(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSpawnTimerResolvesAfterDuration(t *testing.T) {
	h := New(&bytes.Buffer{})
	f, err := h.SpawnTimer(5)
	require.NoError(t, err)
	select {
	case <-f.Done:
	case <-time.After(time.Second):
		t.Fatal("timer future never resolved")
	}
}

func TestWatchPathOnAlreadyMissingFileResolvesImmediately(t *testing.T) {
	h := New(&bytes.Buffer{})
	f, err := h.WatchPath(filepath.Join(t.TempDir(), "ghost.txt"))
	require.NoError(t, err)
	select {
	case <-f.Done:
	case <-time.After(time.Second):
		t.Fatal("watch on a missing path never resolved")
	}
}

func TestWatchPathResolvesOnDeletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	h := New(&bytes.Buffer{})
	f, err := h.WatchPath(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	select {
	case <-f.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch never observed the deletion")
	}
}

func TestRandomIsWithinUnitInterval(t *testing.T) {
	h := New(&bytes.Buffer{})
	for i := 0; i < 100; i++ {
		v := h.Random()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
