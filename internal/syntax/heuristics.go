package syntax

import (
	"strings"

	"codeadvisor/internal/event"
)

// contextLines is the window of lines kept on each side of a flagged line.
const contextLines = 3

// blockKeywords open a suite and must end with a colon. Entries without
// a trailing space (else, try, except, finally) also match the bare
// keyword form.
var blockKeywords = []string{
	"def ", "class ", "if ", "elif ", "else", "for ", "while ",
	"try", "except", "finally",
}

// scanLines applies line-pattern heuristics to every non-blank,
// non-comment line. The rules are deliberately coarse: they have no
// awareness of multi-line strings, nested quoting, or brackets spanning
// lines, and the quote check counts literal two-character escape
// sequences rather than tracking escape state. They run only after a
// strict parse has already failed, so false positives on valid code are
// not a concern.
func scanLines(path string, lines []string) []*event.Event {
	var events []*event.Event

	for i, raw := range lines {
		lineNumber := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if missingColon(line) {
			events = append(events, patternEvent(path, lineNumber, "expected ':'", lines))
		}

		if strings.Contains(line, "(") && strings.Count(line, "(") > strings.Count(line, ")") {
			events = append(events, patternEvent(path, lineNumber, "'(' was never closed", lines))
		}

		if strings.Contains(line, "[") && strings.Count(line, "[") > strings.Count(line, "]") {
			events = append(events, patternEvent(path, lineNumber, "'[' was never closed", lines))
		}

		if oddQuoteParity(line, `'`, `\'`) || oddQuoteParity(line, `"`, `\"`) {
			events = append(events, patternEvent(path, lineNumber, "unterminated string literal", lines))
		}
	}

	return events
}

// missingColon reports whether the line opens a block but lacks the
// trailing colon.
func missingColon(line string) bool {
	for _, kw := range blockKeywords {
		if strings.HasPrefix(line, kw) {
			return !strings.HasSuffix(line, ":")
		}
	}
	return false
}

// oddQuoteParity reports whether the count of quote characters, minus
// occurrences of the literal escaped form, is odd. Approximate: lines
// with adjacent backslashes or triple quoting can be misjudged.
func oddQuoteParity(line, quote, escaped string) bool {
	n := strings.Count(line, quote) - strings.Count(line, escaped)
	return n%2 != 0
}

// patternEvent builds a SyntaxError event with a context window clamped
// to the file bounds.
func patternEvent(path string, lineNumber int, message string, lines []string) *event.Event {
	errorIndex := lineNumber - 1
	start := max(0, errorIndex-contextLines)
	end := min(len(lines), errorIndex+contextLines+1)

	ev := event.New(path, lineNumber, event.KindSyntax, message)
	ev.Context = lines[start:end]
	ev.ContextStart = start + 1
	return ev
}
