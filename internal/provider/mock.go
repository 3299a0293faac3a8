package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockTransport is a deterministic Transport for tests and offline runs.
type MockTransport struct {
	// Response is the fixed text returned by Generate.
	// If empty, a reply is derived from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	mu              sync.Mutex
	calls           int
	lastPrompt      Prompt
	lastCredentials Credentials
}

// NewMockTransport creates a mock returning the given fixed response.
func NewMockTransport(response string) *MockTransport {
	return &MockTransport{Response: response}
}

// NewMockTransportWithError creates a mock that always fails with err.
func NewMockTransportWithError(err error) *MockTransport {
	return &MockTransport{Error: err}
}

// Generate records the call and returns the configured outcome.
func (m *MockTransport) Generate(ctx context.Context, prompt Prompt, creds Credentials) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastPrompt = prompt
	m.lastCredentials = creds
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(prompt), nil
}

// Calls returns how many times Generate ran.
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt passed to Generate.
func (m *MockTransport) LastPrompt() Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastCredentials returns the credentials of the most recent call.
func (m *MockTransport) LastCredentials() Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCredentials
}

// generateMockResponse creates a predictable reply from the prompt.
func generateMockResponse(prompt Prompt) string {
	subject := strings.TrimSpace(prompt.User)
	if idx := strings.IndexByte(subject, '\n'); idx >= 0 {
		subject = subject[:idx]
	}
	if len(subject) > 80 {
		subject = subject[:80] + "..."
	}
	if subject == "" {
		subject = "(empty prompt)"
	}
	return fmt.Sprintf("Mock reply to: %s", subject)
}
