package llm

import (
	"cmp"
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err wins over everything else.
// StopReason defaults to StopEnd and Model to "mock".
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string
	Model      string
	Err        error
}

// MockProvider replays scripted responses in order and records every
// request. Once the script runs out it asks Respond, when set, and
// otherwise reports the provider as unavailable. Replies go through the
// same truncation and schema checks as the real backends.
type MockProvider struct {
	// Respond builds a reply from the request after the script is used up.
	Respond func(Request) MockResponse

	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given script.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	next, ok := m.next(req)
	m.mu.Unlock()

	if !ok {
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      cmp.Or(next.Model, "mock"),
		StopReason: cmp.Or(next.StopReason, StopEnd),
	})
}

// next pops the script or falls back to Respond. Callers hold mu.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	if len(m.responses) > 0 {
		r := m.responses[0]
		m.responses = m.responses[1:]
		return r, true
	}
	if m.Respond != nil {
		return m.Respond(req), true
	}
	return MockResponse{}, false
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
