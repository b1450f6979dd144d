// Package engine turns a scanner's line sequence into a bounded, filtered
// slice of log entries.
package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/NoreeIsmael/Next-Project/internal/model"
	"github.com/NoreeIsmael/Next-Project/internal/pattern"
	"github.com/NoreeIsmael/Next-Project/internal/scan"
)

// ErrNotFound is returned when the requested log file does not exist.
var ErrNotFound = errors.New("log file not found")

// LogExt is the extension every served log file carries.
const LogExt = ".log"

// Read retrieves at most q.Amount entries from <root>/<q.LogName>.log,
// ordered per q.Order. The file handle is opened here and released on
// every path out, including an early stop at the cap.
func Read(root string, q model.LogQuery) ([]model.LogEntry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	path := filepath.Join(root, q.LogName+LogExt)
	var (
		sc  scan.Scanner
		err error
	)
	if q.Order == model.OrderDesc {
		sc, err = scan.OpenReverse(path)
	} else {
		sc, err = scan.OpenForward(path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("log %q: %w", q.LogName, ErrNotFound)
		}
		return nil, fmt.Errorf("open log %q: %w", q.LogName, err)
	}
	defer sc.Close()

	entries, err := Accumulate(sc, q)
	if err != nil {
		return nil, fmt.Errorf("read log %q: %w", q.LogName, err)
	}
	return entries, nil
}

// Accumulate drains sc according to the query: blank chunks are skipped,
// continuation lines are appended to the entry still open, each entry-start
// line is gated on severity, and scanning stops once q.Amount entries have
// been accepted.
//
// The entry most recently accepted stays in an open slot until the next
// entry-start line seals it into the result. A start line that fails the
// severity gate clears the slot, so its continuation lines are dropped
// rather than leaking into an earlier entry.
func Accumulate(sc scan.Scanner, q model.LogQuery) ([]model.LogEntry, error) {
	entries := []model.LogEntry{}
	var open *model.LogEntry

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		f, ok := pattern.Parse(line)
		if !ok {
			// Continuation: belongs to the open entry. With no open entry
			// it is either an orphan at the edge of the scan window or the
			// tail of a rejected entry; both are dropped.
			if open != nil {
				open.Message += line
			}
			continue
		}

		// A new entry starts: the open one is complete.
		if open != nil {
			entries = append(entries, *open)
			open = nil
		}
		if len(entries) >= q.Amount {
			break
		}

		sev, err := model.ParseSeverity(f.Severity)
		if err != nil {
			return nil, fmt.Errorf("entry at %s: %w", f.Timestamp, err)
		}
		if !sev.Passes(q.Severity) {
			continue
		}

		e := model.LogEntry{
			Timestamp: f.Timestamp,
			Severity:  sev,
			Source:    f.Source,
			Message:   f.Message,
		}
		if q.Order == model.OrderDesc && len(entries)+1 >= q.Amount {
			// A reverse chunk already carries its continuation lines, so
			// the entry that fills the cap can be sealed on the spot.
			// Stopping here bounds the backward scan to the bytes of the
			// entries actually returned.
			entries = append(entries, e)
			return entries, nil
		}
		open = &e
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if open != nil {
		entries = append(entries, *open)
	}
	return entries, nil
}
