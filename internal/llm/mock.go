package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted reply. Err takes precedence over Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCall is a request seen by MockProvider.
type MockCall struct {
	Request
	Purpose   string
	RequestID string
}

// MockProvider replays scripted replies in order. Once the script runs
// out every call fails as KindUnavailable, so tests notice unexpected
// extra calls.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	calls  []MockCall
}

// NewMockProvider returns a MockProvider that will reply with script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{
		Request:   req,
		Purpose:   PurposeFrom(ctx),
		RequestID: RequestIDFrom(ctx),
	})
	if len(m.script) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: NameMock, Err: errors.New("no scripted response")}
	}

	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: NameMock, StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return NameMock }

// Calls returns a copy of the requests seen so far.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
