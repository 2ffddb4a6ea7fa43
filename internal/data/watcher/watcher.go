// Package watcher reports changes to scenario files on disk.
package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

// FileEvent is a change to a watched file
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches individual files. The parent directories are watched
// so that editors replacing a file by rename are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	events  chan FileEvent
	done    chan struct{}
}

// NewFileWatcher starts watching paths
func NewFileWatcher(paths ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		events:  make(chan FileEvent, 100),
		done:    make(chan struct{}),
	}

	// Add monitoring paths
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		fw.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	// Start event processing
	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Only report content changes of watched files
			if !fw.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the change notifications. The channel is closed after Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
