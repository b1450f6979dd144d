// Package scan provides lazy line iteration over log files, forward and
// backward. Both scanners follow the bufio.Scanner protocol: Scan advances
// to the next chunk, Text returns it, Err reports the first failure. A
// scanner owns its file handle; Close releases it on every exit path,
// including an early stop by the consumer.
package scan

import "errors"

// ErrBadEncoding is returned when a finalized chunk is not valid UTF-8.
// Validation happens only once a chunk is complete, never on the bytes
// still being gathered by the reverse scanner.
var ErrBadEncoding = errors.New("log chunk is not valid utf-8")

// Scanner is the pull interface both directions implement.
type Scanner interface {
	// Scan advances to the next chunk. It returns false at end of input
	// or on error; the two cases are distinguished by Err.
	Scan() bool
	// Text returns the current chunk, line terminators included.
	Text() string
	// Err returns the first error encountered, nil after a clean end.
	Err() error
	// Close releases the underlying file handle, if any.
	Close() error
}
