package staging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	f, err := store.Stage(strings.NewReader("hello world"), KindVideo)
	require.NoError(t, err)
	assert.Equal(t, int64(11), f.Size)
	assert.True(t, strings.HasPrefix(filepath.Base(f.Path), "in-video-"))
	assert.True(t, strings.HasSuffix(f.Path, ".mp4"))

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	store.Remove(f.Path)
	_, err = os.Stat(f.Path)
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op.
	store.Remove(f.Path, "")
}

func TestStageEmptyUpload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Stage(strings.NewReader(""), KindSubtitles)
	require.ErrorIs(t, err, ErrEmptyUpload)

	// Nothing may be left behind.
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConcurrentStagingPathsAreUnique(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	const n = 32
	paths := make(chan string, 3*n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.Stage(strings.NewReader("v"), KindVideo)
			if err != nil {
				t.Error(err)
				return
			}
			s, err := store.Stage(strings.NewReader("s"), KindSubtitles)
			if err != nil {
				t.Error(err)
				return
			}
			paths <- v.Path
			paths <- s.Path
			paths <- store.Allocate(KindOutput)
		}()
	}
	wg.Wait()
	close(paths)

	seen := make(map[string]bool)
	for p := range paths {
		if seen[p] {
			t.Fatalf("path collision: %s", p)
		}
		seen[p] = true
	}
	assert.Len(t, seen, 3*n)
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	stale, err := store.Stage(strings.NewReader("old"), KindVideo)
	require.NoError(t, err)
	fresh, err := store.Stage(strings.NewReader("new"), KindVideo)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale.Path, past, past))

	removed := store.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(stale.Path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh.Path)
	assert.NoError(t, err)
}

func TestNewStoreRejectsUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	_, err := NewStore(filepath.Join(dir, "scratch"))
	assert.Error(t, err)
}
