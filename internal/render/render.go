// Package render produces terminal and Markdown output for scan results.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"codeadvisor/internal/event"
	"codeadvisor/internal/recommend"
)

var (
	headerColor  = color.New(color.FgRed, color.Bold)
	kindColor    = color.New(color.FgYellow)
	sectionColor = color.New(color.FgCyan, color.Bold)
	fixColor     = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
	goodColor    = color.New(color.FgGreen, color.Bold)
	soSoColor    = color.New(color.FgYellow, color.Bold)
)

// Event renders a single error event for the terminal.
func Event(ev *event.Event) string {
	var b strings.Builder

	headerColor.Fprintf(&b, "ERROR: %s:%d\n", ev.FilePath, ev.LineNumber)
	kindColor.Fprintf(&b, "  %s", ev.Kind)
	fmt.Fprintf(&b, ": %s\n", ev.Message)

	snippet := ev.Snippet(3, 3)
	for _, line := range strings.Split(snippet, "\n") {
		dimColor.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

// Recommendation renders AI advice beneath its event for the terminal.
func Recommendation(rec *recommend.Recommendation) string {
	var b strings.Builder

	sectionColor.Fprint(&b, "  EXPLANATION: ")
	fmt.Fprintf(&b, "%s\n", rec.Explanation)
	sectionColor.Fprint(&b, "  SUGGESTED FIX: ")
	fixColor.Fprintf(&b, "%s\n", rec.SuggestedFix)

	confColor := soSoColor
	if rec.HighConfidence() {
		confColor = goodColor
	}
	b.WriteString("  Confidence: ")
	confColor.Fprintf(&b, "%.0f%%\n", rec.Confidence*100)

	if len(rec.References) > 0 {
		dimColor.Fprintf(&b, "  References: %s\n", strings.Join(rec.References, ", "))
	}
	return b.String()
}

// Summary renders the closing scan line.
func Summary(fileCount, errorCount int) string {
	if errorCount == 0 {
		return goodColor.Sprintf("Scanned %d files. No syntax errors found.", fileCount)
	}
	return headerColor.Sprintf("Scanned %d files. Found %d errors.", fileCount, errorCount)
}

// Markdown renders a full scan report as Markdown. Recommendations are
// matched to events by index; a shorter recommendation list leaves the
// trailing events without advice sections.
func Markdown(events []*event.Event, recs []*recommend.Recommendation) string {
	var b strings.Builder

	b.WriteString("# CodeAdvisor Report\n\n")
	fmt.Fprintf(&b, "**Errors found:** %d\n\n", len(events))

	if len(events) == 0 {
		b.WriteString("No syntax errors found.\n")
		return b.String()
	}

	for i, ev := range events {
		fmt.Fprintf(&b, "## %s:%d\n\n", ev.FilePath, ev.LineNumber)
		fmt.Fprintf(&b, "**%s:** %s\n\n", ev.Kind, ev.Message)
		b.WriteString("```\n")
		b.WriteString(ev.Snippet(3, 3))
		b.WriteString("\n```\n\n")

		if i < len(recs) && recs[i] != nil {
			rec := recs[i]
			fmt.Fprintf(&b, "**Explanation:** %s\n\n", rec.Explanation)
			fmt.Fprintf(&b, "**Suggested fix:** %s\n\n", rec.SuggestedFix)
			fmt.Fprintf(&b, "**Confidence:** %.0f%%\n\n", rec.Confidence*100)
		}
	}
	return b.String()
}
