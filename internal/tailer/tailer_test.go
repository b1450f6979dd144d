package tailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NoreeIsmael/Next-Project/internal/watcher"
)

func TestTailAppendedLines(t *testing.T) {
	root := t.TempDir()
	logPath := filepath.Join(root, "backend.log")
	if err := os.WriteFile(logPath, []byte("existing line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := watcher.New(root)
	if err != nil {
		t.Fatal(err)
	}

	ckpt, err := NewCheckpoint(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}

	tail := New(w, ckpt)

	ctx, cancel := context.WithCancel(context.Background())

	go w.Start(ctx)
	go tail.Start(ctx)

	// Let the tailer seek to the end before appending.
	time.Sleep(300 * time.Millisecond)

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("[2024-01-01 00:00:00] [INFO ] mod: hello from test\n")
	f.Close()

	select {
	case raw := <-tail.Lines():
		if raw.Text != "[2024-01-01 00:00:00] [INFO ] mod: hello from test" {
			t.Errorf("unexpected line %q", raw.Text)
		}
		if raw.Source != "backend" {
			t.Errorf("source = %q, want %q", raw.Source, "backend")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the appended line")
	}

	// Stop goroutines before TempDir cleanup.
	cancel()
	time.Sleep(200 * time.Millisecond)
}

func TestTailPicksUpCreatedFile(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.New(root)
	if err != nil {
		t.Fatal(err)
	}
	ckpt, err := NewCheckpoint(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	tail := New(w, ckpt)

	ctx, cancel := context.WithCancel(context.Background())

	go w.Start(ctx)
	go tail.Start(ctx)

	time.Sleep(300 * time.Millisecond)

	// A log file that appears after startup must be tailed too.
	logPath := filepath.Join(root, "fresh.log")
	if err := os.WriteFile(logPath, []byte("first line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case raw := <-tail.Lines():
		if raw.Source != "fresh" {
			t.Errorf("source = %q, want %q", raw.Source, "fresh")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the new file's line")
	}

	cancel()
	time.Sleep(200 * time.Millisecond)
}

func TestCheckpointSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ckpt.json")

	c1, err := NewCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}
	c1.Set("/var/log/app.log", 42)
	c1.Set("/var/log/err.log", 1024)
	if err := c1.Save(); err != nil {
		t.Fatal(err)
	}

	c2, err := NewCheckpoint(path)
	if err != nil {
		t.Fatal(err)
	}

	v1, ok := c2.Get("/var/log/app.log")
	if !ok || v1 != 42 {
		t.Errorf("expected 42, got %d (found=%v)", v1, ok)
	}
	v2, ok := c2.Get("/var/log/err.log")
	if !ok || v2 != 1024 {
		t.Errorf("expected 1024, got %d (found=%v)", v2, ok)
	}
	if _, ok := c2.Get("/nonexistent"); ok {
		t.Error("expected missing key to return false")
	}
}

func TestCheckpointForget(t *testing.T) {
	c, err := NewCheckpoint(filepath.Join(t.TempDir(), "ckpt.json"))
	if err != nil {
		t.Fatal(err)
	}
	c.Set("/var/log/app.log", 7)
	c.Forget("/var/log/app.log")
	if _, ok := c.Get("/var/log/app.log"); ok {
		t.Error("offset should be gone after Forget")
	}
}
