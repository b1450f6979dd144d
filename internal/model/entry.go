// Package model defines the shared types of the log retrieval service.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the level of a log entry. The numeric values mirror the
// levels used by the backend logger that writes the files we read.
type Severity int

const (
	SeverityDebug    Severity = 10
	SeverityInfo     Severity = 20
	SeverityWarning  Severity = 30
	SeverityError    Severity = 40
	SeverityCritical Severity = 50
)

// String returns the token the backend logger writes between brackets.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity token to a Severity. Case-insensitive.
func ParseSeverity(token string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "WARNING":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", token)
	}
}

// Passes reports whether an entry of this severity is admitted by a query
// for max. Entries at or below the queried level pass, so a CRITICAL query
// returns everything and a DEBUG query returns only DEBUG records. The
// direction is kept as-is for compatibility with the existing frontend;
// see DESIGN.md before changing it.
func (s Severity) Passes(max Severity) bool {
	return s <= max
}

// Valid reports whether s is one of the five known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityDebug, SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// MarshalJSON encodes the severity as its token, e.g. "ERROR".
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity token.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, err := ParseSeverity(token)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// LogEntry is one reassembled record from a log file. The timestamp is kept
// exactly as written; the service never reinterprets it. Message holds the
// text after "source: " on the entry-start line plus any continuation
// lines, line terminators included.
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Severity  Severity `json:"severity"`
	Source    string   `json:"source"`
	Message   string   `json:"message"`
}

// RawLine is a single physical line picked up by the live tailer, before
// entry assembly.
type RawLine struct {
	Text   string
	Source string
}
