// Package event defines the error event value type produced by analysis.
package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Well-known event kinds.
const (
	KindSyntax   = "SyntaxError"
	KindFileRead = "FileReadError"
	KindAnalysis = "AnalysisError"
)

// Event represents a single detected defect in a source file, plus the
// surrounding code context when it is available.
type Event struct {
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Kind       string `json:"error_type"`
	Message    string `json:"message"`

	// Context holds raw source lines around the defect. ContextStart is
	// the 1-based file line number of Context[0]; zero means no context.
	Context      []string `json:"code_context,omitempty"`
	ContextStart int      `json:"context_start_line,omitempty"`

	// StackTrace is set only for runtime-observed errors; statically
	// detected events leave it empty.
	StackTrace string            `json:"stack_trace,omitempty"`
	Locals     map[string]string `json:"local_variables,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// New creates an Event stamped with the current time.
func New(filePath string, lineNumber int, kind, message string) *Event {
	return &Event{
		FilePath:   filePath,
		LineNumber: lineNumber,
		Kind:       kind,
		Message:    message,
		Timestamp:  time.Now(),
	}
}

// Decode reconstructs an Event from its JSON representation. Optional
// keys may be absent; a missing timestamp defaults to the current time.
func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("event.Decode: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	return &ev, nil
}

// Encode serializes the Event to JSON.
func (e *Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("event.Encode: %w", err)
	}
	return data, nil
}

// IsRuntime reports whether the event was observed at runtime (it
// carries a stack trace) rather than found by static analysis.
func (e *Event) IsRuntime() bool {
	return e.StackTrace != ""
}

// Snippet renders the code context around the defect line as a
// line-numbered block. The defect line is prefixed with ">>>", context
// lines with four spaces. Returns a sentinel string when no context is
// stored or the defect line falls outside the stored window.
func (e *Event) Snippet(linesBefore, linesAfter int) string {
	if len(e.Context) == 0 || e.ContextStart == 0 {
		return "No code context available"
	}

	errorIndex := e.LineNumber - e.ContextStart
	if errorIndex < 0 || errorIndex >= len(e.Context) {
		return "Error line not found in context"
	}

	start := max(0, errorIndex-linesBefore)
	end := min(len(e.Context), errorIndex+linesAfter+1)

	var b strings.Builder
	for i := start; i < end; i++ {
		lineNumber := e.ContextStart + i
		if i == errorIndex {
			fmt.Fprintf(&b, ">>> %3d: %s", lineNumber, e.Context[i])
		} else {
			fmt.Fprintf(&b, "    %3d: %s", lineNumber, e.Context[i])
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (e *Event) String() string {
	return fmt.Sprintf("%s:%d: %s - %s", e.FilePath, e.LineNumber, e.Kind, e.Message)
}
