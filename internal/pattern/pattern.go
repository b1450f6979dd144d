// Package pattern recognizes the lines that start a new log entry.
//
// The backend logger writes entries in a fixed shape:
//
//	[2024-09-17 10:44:45] [DEBUG   ] backend.lib.settings: autosave_on_exit is enabled; registering save method.
//
// Any line that does not match this shape from its first byte is a
// continuation of the previous entry's message (tracebacks, wrapped text,
// blank padding).
package pattern

import "regexp"

// capture holds four groups: timestamp, severity token (padding after the
// token stays inside the brackets), source with an optional parenthesized
// qualifier, and the message remainder.
const capture = `\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] \[(\w+)\s*\] ([\w\s.]+(?: \([\w\s]+\))?): (.+)`

var (
	startRe = regexp.MustCompile(`^` + capture)
	chunkRe = regexp.MustCompile(`(?s)^` + capture)
)

// Fields are the four components captured from an entry-start line.
type Fields struct {
	Timestamp string
	Severity  string
	Source    string
	Message   string
}

// IsStart reports whether line begins a new log entry.
func IsStart(line string) bool {
	return startRe.MatchString(line)
}

// Parse extracts the entry fields from chunk. The match runs with `.`
// spanning newlines, so a reassembled chunk that carries continuation
// lines parses as one entry whose message keeps the embedded newlines.
// ok is false when chunk does not start an entry.
func Parse(chunk string) (f Fields, ok bool) {
	m := chunkRe.FindStringSubmatch(chunk)
	if m == nil {
		return Fields{}, false
	}
	return Fields{
		Timestamp: m[1],
		Severity:  m[2],
		Source:    m[3],
		Message:   m[4],
	}, true
}
