package scan

import (
	"path/filepath"
	"strings"
	"testing"
)

const (
	entryOne   = "[2024-01-01 00:00:00] [INFO    ] backend.app: service starting\n"
	entryTwo   = "[2024-01-01 00:00:01] [ERROR   ] backend.app: request failed\n"
	entryThree = "[2024-01-01 00:00:02] [DEBUG   ] backend.app: retrying\n"
)

func openReverse(t *testing.T, content string) *Reverse {
	t.Helper()
	s, err := OpenReverse(writeFixture(t, content))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestReverseNewestFirst(t *testing.T) {
	s := openReverse(t, entryOne+entryTwo+entryThree)

	chunks := drain(t, s)
	want := []string{entryThree, entryTwo, entryOne}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %q", len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestReverseKeepsMultiLineEntryTogether(t *testing.T) {
	// A traceback under entryTwo must come back as one chunk, not as
	// out-of-order fragments.
	body := entryTwo +
		"Traceback (most recent call last):\n" +
		"  ValueError: bad value\n"
	s := openReverse(t, entryOne+body+entryThree)

	chunks := drain(t, s)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3: %q", len(chunks), chunks)
	}
	if chunks[1] != body {
		t.Errorf("middle chunk = %q, want the whole multi-line body %q", chunks[1], body)
	}
}

func TestReverseFlushesOldestEntry(t *testing.T) {
	// The first entry in the file has no newline before it; it must still
	// be yielded, as the final chunk.
	s := openReverse(t, entryOne+entryTwo)

	chunks := drain(t, s)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if chunks[1] != entryOne {
		t.Errorf("final chunk = %q, want %q", chunks[1], entryOne)
	}
}

func TestReverseNormalizesCarriageReturns(t *testing.T) {
	line := "[2024-01-01 00:00:00] [INFO    ] backend.app: first\rsecond\n"
	s := openReverse(t, line)

	chunks := drain(t, s)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if strings.Contains(chunks[0], "\r") {
		t.Errorf("carriage return not normalized: %q", chunks[0])
	}
	if !strings.Contains(chunks[0], "first\nsecond") {
		t.Errorf("expected CR replaced by LF, got %q", chunks[0])
	}
}

func TestReverseEmptyFile(t *testing.T) {
	s := openReverse(t, "")
	if chunks := drain(t, s); len(chunks) != 0 {
		t.Errorf("empty file yielded %q", chunks)
	}
}

func TestReverseTrailingBlankLines(t *testing.T) {
	// Blank lines at the end of the file fold into the newest chunk as
	// continuation content; nothing is silently dropped here. Filtering
	// blanks is the accumulator's job.
	s := openReverse(t, entryOne+entryTwo+"\n\n")

	chunks := drain(t, s)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if chunks[0] != entryTwo+"\n\n" {
		t.Errorf("newest chunk = %q", chunks[0])
	}
}

func TestReverseUnterminatedLastLine(t *testing.T) {
	last := "[2024-01-01 00:00:01] [ERROR   ] backend.app: cut off"
	s := openReverse(t, entryOne+last)

	chunks := drain(t, s)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if chunks[0] != last {
		t.Errorf("newest chunk = %q, want %q", chunks[0], last)
	}
	if chunks[1] != entryOne {
		t.Errorf("oldest chunk = %q, want %q", chunks[1], entryOne)
	}
}

func TestReverseBadEncoding(t *testing.T) {
	s := openReverse(t, entryOne+"[2024-01-01 00:00:01] [INFO    ] backend.app: \xff\xfe\n")
	defer s.Close()

	for s.Scan() {
	}
	if s.Err() == nil {
		t.Fatal("expected an encoding error")
	}
}

func TestReverseMissingFile(t *testing.T) {
	if _, err := OpenReverse(filepath.Join(t.TempDir(), "absent.log")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReverseMatchesForwardReversed(t *testing.T) {
	content := entryOne + entryTwo +
		"continuation under two\n" +
		entryThree
	path := writeFixture(t, content)

	fw, err := OpenForward(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := drain(t, fw)

	rv, err := OpenReverse(path)
	if err != nil {
		t.Fatal(err)
	}
	chunks := drain(t, rv)

	if strings.Join(lines, "") != content {
		t.Fatalf("forward lines do not reconstruct the file")
	}
	// Reverse chunks, concatenated oldest-first, reconstruct the file too.
	var rebuilt strings.Builder
	for i := len(chunks) - 1; i >= 0; i-- {
		rebuilt.WriteString(chunks[i])
	}
	if rebuilt.String() != content {
		t.Errorf("reverse chunks rebuilt %q, want %q", rebuilt.String(), content)
	}
}
