// Package recommend turns detected error events into AI-generated
// recommendations by driving a text-generation provider.
package recommend

import (
	"encoding/json"
	"fmt"
	"time"

	"codeadvisor/internal/event"
)

// highConfidenceThreshold separates recommendations worth highlighting.
const highConfidenceThreshold = 0.7

// Recommendation binds AI-generated advice to exactly one error event.
type Recommendation struct {
	Event        *event.Event `json:"error_event"`
	Explanation  string       `json:"explanation"`
	SuggestedFix string       `json:"suggested_fix"`
	Confidence   float64      `json:"confidence_score"`
	References   []string     `json:"references"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Decode reconstructs a Recommendation from its JSON representation.
// A missing created_at defaults to the current time.
func Decode(data []byte) (*Recommendation, error) {
	var r Recommendation
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("recommend.Decode: %w", err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return &r, nil
}

// Encode serializes the Recommendation to JSON.
func (r *Recommendation) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("recommend.Encode: %w", err)
	}
	return data, nil
}

// HighConfidence reports whether the confidence score exceeds 0.7.
func (r *Recommendation) HighConfidence() bool {
	return r.Confidence > highConfidenceThreshold
}

func (r *Recommendation) String() string {
	return fmt.Sprintf("Recommendation for %s:%d", r.Event.FilePath, r.Event.LineNumber)
}
