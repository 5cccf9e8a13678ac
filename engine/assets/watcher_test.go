package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSource struct {
	mu      sync.Mutex
	submits [][]byte
}

func (r *recordingSource) Submit(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submits = append(r.submits, data)
	return nil
}

func (r *recordingSource) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.submits)
}

func (r *recordingSource) last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.submits) == 0 {
		return nil
	}
	return r.submits[len(r.submits)-1]
}

func waitForSubmits(t *testing.T, source *recordingSource, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if source.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d submissions, got %d", want, source.count())
}

func TestWatcherSubmitsInitialBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	source := &recordingSource{}
	watcher, err := NewWatcher(path, source)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Start())

	require.Equal(t, 1, source.count())
	assert.Equal(t, []byte("v1"), source.last())
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	source := &recordingSource{}
	watcher, err := NewWatcher(path, source)
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Start())

	// Let the quiet window pass so the change is not coalesced away.
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	waitForSubmits(t, source, 2)
	assert.Equal(t, []byte("v2"), source.last())
}

func TestWatcherDefersTrailingBurstWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	source := &recordingSource{}
	watcher, err := NewWatcher(path, source)
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Start())

	// Written inside the quiet window of the initial load. The reload must
	// be deferred to the window's end, not swallowed.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	waitForSubmits(t, source, 2)
	assert.Equal(t, []byte("v2"), source.last())
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	source := &recordingSource{}
	watcher, err := NewWatcher(path, source)
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Start())

	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 1, source.count())
}

func TestWatcherMissingFileSubmitsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.toml")

	source := &recordingSource{}
	watcher, err := NewWatcher(path, source)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Start())

	require.Equal(t, 1, source.count())
	assert.Empty(t, source.last())
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	watcher, err := NewWatcher(path, &recordingSource{})
	require.NoError(t, err)
	require.NoError(t, watcher.Start())

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())
}
