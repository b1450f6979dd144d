// Package watcher surfaces filesystem events for the log files under the
// service root.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/NoreeIsmael/Next-Project/internal/engine"
)

// Event is a change to one log file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors the log root with OS-level notifications. The directory
// itself is watched, so log files created after startup are picked up too;
// events for anything that is not a *.log file are discarded.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan Event
	root   string
}

// New creates a Watcher over root.
func New(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	return &Watcher{
		fsw:    fsw,
		Events: make(chan Event, 256),
		root:   root,
	}, nil
}

// Start forwards relevant events. Blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isLogFile(ev.Name) {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				w.Events <- Event{Path: ev.Name, Op: ev.Op}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// Paths returns the *.log files present under the root right now.
func (w *Watcher) Paths() []string {
	matches, err := doublestar.FilepathGlob(
		filepath.Join(w.root, "*"+engine.LogExt),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		log.Printf("watcher: listing %s: %v", w.root, err)
		return nil
	}
	return matches
}

func isLogFile(path string) bool {
	ok, err := doublestar.Match("*"+engine.LogExt, filepath.Base(path))
	return err == nil && ok
}
