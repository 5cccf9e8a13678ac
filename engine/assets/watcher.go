package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/vetrina/engine/core"
)

// Source is where watched asset bytes are delivered: in practice the load
// controller. Empty bytes mean "no asset".
type Source interface {
	Submit(data []byte) error
}

// Writes from editors and exporters arrive in bursts; events inside this
// window after a load are ignored.
const reloadQuietWindow = 100 * time.Millisecond

/**
 * @brief Watcher is the data-transport collaborator of the demo viewer: it
 * watches a single asset file on disk and submits its bytes to the source
 * on every change, which makes the viewer hot-reload the asset.
 */
type Watcher struct {
	path   string
	source Source

	mu            sync.Mutex
	lastLoaded    time.Time
	reloadPending bool
	isClosed      bool

	done     chan struct{}
	fsnotify *fsnotify.Watcher
}

func NewWatcher(path string, source Source) (*Watcher, error) {
	if source == nil {
		return nil, errors.New("asset watcher requires a source")
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		source:   source,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Start performs the initial load and begins watching for changes. The
// parent directory is watched rather than the file itself so saves that
// replace the file (rename-over) keep being observed.
func (w *Watcher) Start() error {
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.run()
	return w.load()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.load(); err != nil {
				core.LogError("asset watcher: reload of '%s' failed: %v", w.path, err)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %v", err)
		}
	}
}

// load reads the asset file and submits its bytes. A missing file submits
// empty bytes, which the controller publishes as the explicit empty result.
// A load arriving inside the quiet window is deferred, not dropped, so the
// trailing write of a save burst still lands.
func (w *Watcher) load() error {
	w.mu.Lock()
	if w.isClosed {
		w.mu.Unlock()
		return errors.New("asset watcher already closed")
	}
	if wait := reloadQuietWindow - time.Since(w.lastLoaded); wait > 0 {
		if !w.reloadPending {
			w.reloadPending = true
			time.AfterFunc(wait, w.deferredReload)
		}
		w.mu.Unlock()
		return nil
	}
	w.lastLoaded = time.Now()
	w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		core.LogWarn("asset '%s' not found, submitting empty input", w.path)
		data = nil
	}

	if err := w.source.Submit(data); err != nil {
		return err
	}

	eventContext := core.EventContext{}
	eventContext.Data.C[0] = w.path
	eventContext.Data.U64[0] = uint64(len(data))
	core.EventFire(core.EVENT_CODE_ASSET_CHANGED, w, eventContext)
	return nil
}

// deferredReload runs the load that was coalesced into the quiet window.
func (w *Watcher) deferredReload() {
	w.mu.Lock()
	w.reloadPending = false
	closed := w.isClosed
	w.mu.Unlock()
	if closed {
		return
	}
	if err := w.load(); err != nil {
		core.LogError("asset watcher: deferred reload of '%s' failed: %v", w.path, err)
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.isClosed {
		w.mu.Unlock()
		return nil
	}
	w.isClosed = true
	w.mu.Unlock()

	close(w.done)
	return w.fsnotify.Close()
}
