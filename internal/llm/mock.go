package llm

import "context"

// MockProvider is a test double that returns canned responses and
// records the prompts it receives.
type MockProvider struct {
	Response string
	Err      error
	Model    string
	Tokens   int
	Prompts  []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) ModelName() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

func (m *MockProvider) MaxContextTokens() int {
	if m.Tokens == 0 {
		return 1000
	}
	return m.Tokens
}

func (m *MockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}
