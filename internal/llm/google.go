package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	googleAPIURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	googleDefaultModel = "gemini-1.5-flash"
	googleMaxContext   = 1000000
)

// GoogleProvider implements Provider using the Gemini generateContent API.
type GoogleProvider struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewGoogle creates a Gemini provider. An empty model selects the
// default.
func NewGoogle(apiKey, model string) *GoogleProvider {
	if model == "" {
		model = googleDefaultModel
	}
	return &GoogleProvider{
		apiKey: apiKey,
		apiURL: fmt.Sprintf(googleAPIURLFormat, model),
		model:  model,
		client: newHTTPClient(),
	}
}

func (g *GoogleProvider) Name() string { return "google" }

func (g *GoogleProvider) ModelName() string { return g.model }

func (g *GoogleProvider) MaxContextTokens() int { return googleMaxContext }

func (g *GoogleProvider) Generate(ctx context.Context, prompt string) (string, error) {
	// Gemini has no separate system role in this envelope, so the
	// instruction is prepended to the prompt text.
	enhanced := systemInstruction + "\n\n" + prompt

	reqBody := googleRequest{
		Contents: []googleContent{
			{Parts: []googlePart{{Text: enhanced}}},
		},
		GenerationConfig: googleGenerationConfig{
			Temperature:     responseTemperature,
			MaxOutputTokens: maxResponseTokens,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("google: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("google: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google: API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result googleResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("google: parse response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("google: no candidate text in response")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type googleResponse struct {
	Candidates []googleCandidate `json:"candidates"`
}

type googleCandidate struct {
	Content googleContent `json:"content"`
}
