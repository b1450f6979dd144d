package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Forward yields the physical lines of a file oldest-first. Each line keeps
// its trailing newline; the last line may lack one. Memory use is bounded
// by the longest line, not the file.
type Forward struct {
	f    *os.File // nil when constructed from a plain reader
	r    *bufio.Reader
	text string
	err  error
	done bool
}

// OpenForward opens the file at path for oldest-first iteration.
func OpenForward(path string) (*Forward, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fw := NewForward(f)
	fw.f = f
	return fw, nil
}

// NewForward iterates lines from r.
func NewForward(r io.Reader) *Forward {
	return &Forward{r: bufio.NewReader(r)}
}

// Scan advances to the next line.
func (s *Forward) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	line, err := s.r.ReadString('\n')
	switch {
	case err == io.EOF:
		s.done = true
		if line == "" {
			return false
		}
	case err != nil:
		s.err = fmt.Errorf("read line: %w", err)
		return false
	}
	if !utf8.ValidString(line) {
		s.err = fmt.Errorf("%w: %q", ErrBadEncoding, line)
		return false
	}
	s.text = line
	return true
}

// Text returns the current line, terminator included.
func (s *Forward) Text() string { return s.text }

// Err returns the first read error, nil after a clean end of file.
func (s *Forward) Err() error { return s.err }

// Close releases the file handle.
func (s *Forward) Close() error {
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}
