// Package output renders retrieved log entries for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NoreeIsmael/Next-Project/internal/model"
)

// Renderer writes LogEntry values to an output stream.
type Renderer interface {
	Render(entry model.LogEntry) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleCrit  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true) // white on red
	styleSource = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true) // cyan
)

// TextRenderer prints entries to the terminal with severity-based colors.
// Continuation lines of a multi-line message are indented under the header.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(entry model.LogEntry) error {
	tag := styleSeverityTag(entry.Severity)
	src := styleSource.Render(entry.Source)

	lines := strings.Split(strings.TrimRight(entry.Message, "\n"), "\n")
	header := fmt.Sprintf("%s %s %s %s", entry.Timestamp, tag, src, lines[0])
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}
	for _, line := range lines[1:] {
		if _, err := fmt.Fprintf(r.w, "    %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func styleSeverityTag(sev model.Severity) string {
	padded := fmt.Sprintf("%-8s", sev.String())
	switch sev {
	case model.SeverityDebug:
		return styleDebug.Render(padded)
	case model.SeverityWarning:
		return styleWarn.Render(padded)
	case model.SeverityError:
		return styleError.Render(padded)
	case model.SeverityCritical:
		return styleCrit.Render(padded)
	default:
		return styleInfo.Render(padded)
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each log entry as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(entry model.LogEntry) error {
	return r.enc.Encode(entry)
}
