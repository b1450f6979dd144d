// Package tailer reads newly appended lines from the watched log files.
package tailer

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/NoreeIsmael/Next-Project/internal/engine"
	"github.com/NoreeIsmael/Next-Project/internal/model"
	"github.com/NoreeIsmael/Next-Project/internal/watcher"
)

const checkpointInterval = 5 * time.Second

// Tailer follows the files reported by a Watcher and emits each appended
// line as a RawLine. A file removed or renamed away is simply forgotten;
// reattaching to rotated files is deliberately out of scope.
type Tailer struct {
	mu    sync.Mutex
	files map[string]*trackedFile
	out   chan model.RawLine
	ckpt  *Checkpoint
	watch *watcher.Watcher
}

type trackedFile struct {
	path   string
	file   *os.File
	offset int64
}

// New creates a Tailer fed by the given Watcher.
func New(w *watcher.Watcher, ckpt *Checkpoint) *Tailer {
	return &Tailer{
		files: make(map[string]*trackedFile),
		out:   make(chan model.RawLine, 512),
		ckpt:  ckpt,
		watch: w,
	}
}

// Lines returns the channel where appended lines are sent.
func (t *Tailer) Lines() <-chan model.RawLine {
	return t.out
}

// Start processes watcher events. Blocks until the context is cancelled.
func (t *Tailer) Start(ctx context.Context) {
	defer close(t.out)

	for _, p := range t.watch.Paths() {
		t.openFile(p, true)
	}

	saveTicker := time.NewTicker(checkpointInterval)
	defer saveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.saveCheckpoint()
			t.closeAll()
			return

		case ev, ok := <-t.watch.Events:
			if !ok {
				return
			}
			t.handleEvent(ev)

		case <-saveTicker.C:
			t.saveCheckpoint()
		}
	}
}

func (t *Tailer) handleEvent(ev watcher.Event) {
	switch {
	case ev.Op&fsnotify.Write != 0:
		t.readNewLines(ev.Path)

	case ev.Op&fsnotify.Create != 0:
		// A file that appeared while we watch has no history to skip.
		t.openFile(ev.Path, false)
		t.readNewLines(ev.Path)

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		t.closeFile(ev.Path)
	}
}

// openFile starts tracking a log file, resuming from the checkpointed
// offset when one exists. Without a checkpoint, atEnd decides whether the
// existing content is skipped (startup) or replayed (fresh file).
func (t *Tailer) openFile(path string, atEnd bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.files[path]; exists {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("tailer: cannot open %s: %v", path, err)
		return
	}

	var offset int64
	if saved, ok := t.ckpt.Get(path); ok {
		offset = saved
	} else if atEnd {
		offset, _ = f.Seek(0, io.SeekEnd)
	}
	f.Seek(offset, io.SeekStart)

	t.files[path] = &trackedFile{
		path:   path,
		file:   f,
		offset: offset,
	}
}

// readNewLines drains from the last offset to EOF and emits whole lines.
func (t *Tailer) readNewLines(path string) {
	t.mu.Lock()
	tf, ok := t.files[path]
	t.mu.Unlock()
	if !ok {
		return
	}

	scanner := bufio.NewScanner(tf.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		t.out <- model.RawLine{
			Text:   scanner.Text(),
			Source: logName(path),
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("tailer: read error on %s: %v", path, err)
	}

	pos, _ := tf.file.Seek(0, io.SeekCurrent)
	tf.offset = pos
	t.ckpt.Set(path, pos)
}

func (t *Tailer) closeFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tf, ok := t.files[path]; ok {
		tf.file.Close()
		delete(t.files, path)
		t.ckpt.Forget(path)
	}
}

func (t *Tailer) saveCheckpoint() {
	if err := t.ckpt.Save(); err != nil {
		log.Printf("tailer: checkpoint save failed: %v", err)
	}
}

func (t *Tailer) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for path, tf := range t.files {
		tf.file.Close()
		delete(t.files, path)
	}
}

// logName strips the directory and extension, matching the identifiers the
// retrieval API uses.
func logName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), engine.LogExt)
}
