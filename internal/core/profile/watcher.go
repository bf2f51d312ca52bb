package profile

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-session-window/internal/util"
)

// Event reports a change to the watched profile file.
type Event struct {
	Path      string
	Operation string
}

// Watcher watches the profile file for edits. The parent directory is
// watched rather than the file itself so atomic replace-by-rename
// writes are still observed.
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan Event
}

// NewWatcher starts watching the directory containing path and filters
// events down to the profile file.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		target:  filepath.Base(path),
		events:  make(chan Event, 16),
	}
	go w.processEvents()

	return w, nil
}

// Events returns the channel of profile-file changes. It is closed when
// the watcher is closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

func (w *Watcher) processEvents() {
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.target {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				w.events <- Event{Path: event.Name, Operation: event.Op.String()}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log and keep watching
			util.LogError("Profile watch error: " + err.Error())
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
