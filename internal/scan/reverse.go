package scan

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/NoreeIsmael/Next-Project/internal/pattern"
)

// Reverse yields chunks of a file newest-first by walking its bytes
// backward from the end. There is no OS primitive for reading text lines
// in reverse, so the scanner keeps its own accumulator of bytes gathered
// since the last emission (stored in reverse order).
//
// A newline alone does not finish a chunk: when one is reached, the
// accumulator is reversed into a candidate line and emitted only if the
// entry grammar recognizes it as an entry start. Otherwise the newline is
// pushed into the accumulator like any other byte, which is what keeps a
// multi-line message body together as a single chunk instead of splitting
// it into out-of-order fragments. Whatever remains in the accumulator at
// the start of the file is flushed as a final chunk, covering the oldest
// entry, which has no newline before it.
//
// Carriage returns are normalized to newlines on emitted chunks, matching
// how the logger encodes embedded line breaks.
type Reverse struct {
	f       *os.File // nil when constructed from a ReaderAt
	r       io.ReaderAt
	cursor  int64
	buf     []byte // pending bytes, newest first
	text    string
	err     error
	flushed bool
}

// OpenReverse opens the file at path for newest-first iteration.
func OpenReverse(path string) (*Reverse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	rv := NewReverse(f, fi.Size())
	rv.f = f
	return rv, nil
}

// NewReverse scans the size bytes readable through r backward, starting at
// the last byte.
func NewReverse(r io.ReaderAt, size int64) *Reverse {
	return &Reverse{r: r, cursor: size - 1}
}

// Scan advances to the next chunk, reading backward one byte at a time.
func (s *Reverse) Scan() bool {
	if s.err != nil {
		return false
	}

	var one [1]byte
	for s.cursor >= 0 {
		if _, err := s.r.ReadAt(one[:], s.cursor); err != nil {
			s.err = fmt.Errorf("read byte at offset %d: %w", s.cursor, err)
			return false
		}
		b := one[0]
		s.cursor--

		if b == '\n' && len(s.buf) > 0 {
			line := s.candidate()
			if pattern.IsStart(line) {
				if !s.emit(line) {
					return false
				}
				// The triggering newline terminates the next-older line;
				// seed the fresh accumulator with it so every chunk keeps
				// its original terminator regardless of scan direction.
				s.buf = append(s.buf[:0], b)
				return true
			}
		}
		s.buf = append(s.buf, b)
	}

	// Start of file: flush whatever is left.
	if len(s.buf) > 0 && !s.flushed {
		s.flushed = true
		return s.emit(s.candidate())
	}
	return false
}

// Text returns the current chunk, terminators included.
func (s *Reverse) Text() string { return s.text }

// Err returns the first error encountered, nil after a clean scan.
func (s *Reverse) Err() error { return s.err }

// Close releases the file handle.
func (s *Reverse) Close() error {
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}

// candidate reverses the accumulator into file order.
func (s *Reverse) candidate() string {
	n := len(s.buf)
	out := make([]byte, n)
	for i, b := range s.buf {
		out[n-1-i] = b
	}
	return string(out)
}

// emit finalizes a chunk: validate the encoding, normalize CR to LF.
func (s *Reverse) emit(line string) bool {
	if !utf8.ValidString(line) {
		s.err = fmt.Errorf("%w at offset %d", ErrBadEncoding, s.cursor+1)
		return false
	}
	s.text = strings.ReplaceAll(line, "\r", "\n")
	return true
}
