package recommend

import (
	"strconv"
	"strings"
)

// Fallbacks substituted when the model reply yields nothing usable.
const (
	fallbackExplanation = "Unable to analyze this error"
	fallbackFix         = "No specific fix suggested"
	defaultConfidence   = 0.5
)

// Section labels expected in the model reply.
const (
	labelExplanation = "EXPLANATION:"
	labelFix         = "SUGGESTED FIX:"
	labelConfidence  = "CONFIDENCE:"
)

// ParseResponse extracts the explanation, suggested fix, and confidence
// from a semi-structured model reply. The three labeled sections may
// appear in any order; content after a label on the same line is
// captured, and following non-empty lines are space-joined into the
// active section until another label appears. Unlabeled leading content
// is discarded. A missing or unparsable confidence defaults to 0.5 and
// the result is clamped to [0, 1]. Empty sections are replaced with
// fixed fallback text so a Recommendation is always constructible.
func ParseResponse(raw string) (explanation, suggestedFix string, confidence float64) {
	confidence = defaultConfidence

	var expl, fix strings.Builder
	section := ""

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, labelExplanation):
			section = "explanation"
			appendSection(&expl, strings.TrimPrefix(line, labelExplanation))
			continue
		case strings.HasPrefix(line, labelFix):
			section = "fix"
			appendSection(&fix, strings.TrimPrefix(line, labelFix))
			continue
		case strings.HasPrefix(line, labelConfidence):
			section = "confidence"
			rest := strings.TrimSpace(strings.TrimPrefix(line, labelConfidence))
			if v, err := strconv.ParseFloat(rest, 64); err == nil {
				confidence = max(0.0, min(1.0, v))
			} else {
				confidence = defaultConfidence
			}
			continue
		}

		if line == "" {
			continue
		}
		switch section {
		case "explanation":
			appendSection(&expl, line)
		case "fix":
			appendSection(&fix, line)
		}
	}

	explanation = expl.String()
	if explanation == "" {
		explanation = fallbackExplanation
	}
	suggestedFix = fix.String()
	if suggestedFix == "" {
		suggestedFix = fallbackFix
	}
	return explanation, suggestedFix, confidence
}

func appendSection(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(text)
}
