package recommend

import (
	"context"
	"fmt"
	"strings"

	"codeadvisor/internal/event"
	"codeadvisor/internal/llm"
)

// Worker orchestrates prompt construction, provider calls, and response
// parsing for one error event at a time. It performs no retries and
// does not catch provider failures; callers decide per-item policy.
type Worker struct {
	provider llm.Provider
}

// NewWorker creates a Worker bound to the given provider.
func NewWorker(provider llm.Provider) *Worker {
	return &Worker{provider: provider}
}

// AnalyzeError generates a Recommendation for one event. Provider
// failures propagate to the caller.
func (w *Worker) AnalyzeError(ctx context.Context, ev *event.Event) (*Recommendation, error) {
	prompt := buildPrompt(ev)

	reply, err := w.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	explanation, fix, confidence := ParseResponse(reply)

	return NewBuilder().
		Event(ev).
		Explanation(explanation).
		SuggestedFix(fix).
		Confidence(confidence).
		Build()
}

// ProviderInfo describes the active provider for display purposes.
type ProviderInfo struct {
	Name      string
	Model     string
	MaxTokens int
}

// Info returns display metadata about the configured provider.
func (w *Worker) Info() ProviderInfo {
	return ProviderInfo{
		Name:      w.provider.Name(),
		Model:     w.provider.ModelName(),
		MaxTokens: w.provider.MaxContextTokens(),
	}
}

// buildPrompt embeds the event details and context snippet along with
// the response format the parser expects.
func buildPrompt(ev *event.Event) string {
	var b strings.Builder

	b.WriteString("Analyze this Python error and provide a helpful recommendation:\n\n")
	fmt.Fprintf(&b, "FILE: %s\n", ev.FilePath)
	fmt.Fprintf(&b, "ERROR TYPE: %s\n", ev.Kind)
	fmt.Fprintf(&b, "ERROR MESSAGE: %s\n", ev.Message)
	fmt.Fprintf(&b, "LINE: %d\n\n", ev.LineNumber)
	b.WriteString("CODE CONTEXT:\n")
	b.WriteString(ev.Snippet(3, 3))
	b.WriteString("\n\nPlease provide your response in this exact format:\n\n")
	b.WriteString("EXPLANATION:\n[Explain what caused this error in simple terms]\n\n")
	b.WriteString("SUGGESTED FIX:\n[Provide specific steps to fix the error]\n\n")
	b.WriteString("CONFIDENCE:\n[Rate your confidence from 0.0 to 1.0]")

	return b.String()
}
