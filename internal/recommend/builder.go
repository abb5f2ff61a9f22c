package recommend

import (
	"fmt"
	"time"

	"codeadvisor/internal/event"
)

// Builder constructs a Recommendation incrementally. Build fails unless
// the event, explanation, suggested fix, and confidence have all been
// set, so a Recommendation is never observed partially initialized.
// References are optional and default to empty.
type Builder struct {
	event        *event.Event
	explanation  *string
	suggestedFix *string
	confidence   *float64
	references   []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Event sets the error event the recommendation addresses.
func (b *Builder) Event(ev *event.Event) *Builder {
	b.event = ev
	return b
}

// Explanation sets the explanation of why the error occurred.
func (b *Builder) Explanation(text string) *Builder {
	b.explanation = &text
	return b
}

// SuggestedFix sets the suggested fix for the error.
func (b *Builder) SuggestedFix(text string) *Builder {
	b.suggestedFix = &text
	return b
}

// Confidence sets the confidence score, clamped to [0, 1].
func (b *Builder) Confidence(score float64) *Builder {
	clamped := max(0.0, min(1.0, score))
	b.confidence = &clamped
	return b
}

// AddReference appends a documentation reference or helpful link.
func (b *Builder) AddReference(ref string) *Builder {
	b.references = append(b.references, ref)
	return b
}

// Build validates that all required fields were set and materializes
// the Recommendation.
func (b *Builder) Build() (*Recommendation, error) {
	switch {
	case b.event == nil:
		return nil, fmt.Errorf("recommend.Build: event is required")
	case b.explanation == nil:
		return nil, fmt.Errorf("recommend.Build: explanation is required")
	case b.suggestedFix == nil:
		return nil, fmt.Errorf("recommend.Build: suggested fix is required")
	case b.confidence == nil:
		return nil, fmt.Errorf("recommend.Build: confidence is required")
	}

	refs := b.references
	if refs == nil {
		refs = []string{}
	}
	return &Recommendation{
		Event:        b.event,
		Explanation:  *b.explanation,
		SuggestedFix: *b.suggestedFix,
		Confidence:   *b.confidence,
		References:   refs,
		CreatedAt:    time.Now(),
	}, nil
}

// Reset clears all fields so the Builder can be reused.
func (b *Builder) Reset() *Builder {
	*b = Builder{}
	return b
}
