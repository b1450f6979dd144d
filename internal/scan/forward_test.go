package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func drain(t *testing.T, s Scanner) []string {
	t.Helper()
	defer s.Close()

	var chunks []string
	for s.Scan() {
		chunks = append(chunks, s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	return chunks
}

func TestForwardLines(t *testing.T) {
	path := writeFixture(t, "first line\nsecond line\nthird line\n")

	s, err := OpenForward(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := drain(t, s)
	want := []string{"first line\n", "second line\n", "third line\n"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q (terminator must be kept)", i, lines[i], want[i])
		}
	}
}

func TestForwardUnterminatedLastLine(t *testing.T) {
	path := writeFixture(t, "complete\npartial")

	s, err := OpenForward(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := drain(t, s)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1] != "partial" {
		t.Errorf("last line = %q, want %q", lines[1], "partial")
	}
}

func TestForwardEmptyFile(t *testing.T) {
	path := writeFixture(t, "")

	s, err := OpenForward(path)
	if err != nil {
		t.Fatal(err)
	}

	if lines := drain(t, s); len(lines) != 0 {
		t.Errorf("empty file yielded %q", lines)
	}
}

func TestForwardMissingFile(t *testing.T) {
	_, err := OpenForward(filepath.Join(t.TempDir(), "absent.log"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestForwardFromReader(t *testing.T) {
	s := NewForward(strings.NewReader("a\nb\n"))
	lines := drain(t, s)
	if len(lines) != 2 || lines[0] != "a\n" || lines[1] != "b\n" {
		t.Errorf("got %q", lines)
	}
}

func TestForwardBadEncoding(t *testing.T) {
	s := NewForward(strings.NewReader("ok line\n\xff\xfe broken\n"))
	defer s.Close()

	if !s.Scan() {
		t.Fatal("first line should scan")
	}
	if s.Scan() {
		t.Fatal("invalid utf-8 line must not scan")
	}
	if err := s.Err(); err == nil {
		t.Fatal("expected an encoding error")
	}
}
