package planner

import "context"

// MockPlanGenerator returns a canned response (or error) and records the
// prompts it saw.
type MockPlanGenerator struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockPlanGenerator) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
