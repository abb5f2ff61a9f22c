// Package redact strips likely secrets from code context before it is
// embedded in a provider prompt.
package redact

import "regexp"

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// Private key blocks
		`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`,
		// Bearer tokens
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		// Assignments of keys/secrets/tokens/passwords, including the
		// quoted values common in Python source
		`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`,
		// os.environ assignments carrying literal values
		`(?i)os\.environ\[[^\]]+\]\s*=\s*\S+`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Redact replaces secret patterns in text with [REDACTED].
func Redact(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}

// Lines redacts each line in place and returns the slice.
func Lines(lines []string) []string {
	for i, line := range lines {
		lines[i] = Redact(line)
	}
	return lines
}
