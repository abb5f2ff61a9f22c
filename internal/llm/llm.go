// Package llm defines the provider interface and implementations for
// text-generation backends.
package llm

import "context"

// Provider generates text from a prompt using a remote model. Token
// limits are static per variant and are used for informational display
// only; the core never truncates prompts.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	MaxContextTokens() int
	ModelName() string
	Name() string
}

// systemInstruction frames every provider call as a code-analysis task.
const systemInstruction = "You are a Python code analysis expert. Provide clear, actionable advice for fixing code errors."

// maxResponseTokens bounds the generated reply across all providers.
const maxResponseTokens = 500

// responseTemperature keeps replies deterministic-ish across providers.
const responseTemperature = 0.1
