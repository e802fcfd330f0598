package llm

import (
	"context"
	"sync"
	"time"
)

var _ Generator = (*Mock)(nil)

// Mock is a scriptable Generator for tests.
type Mock struct {
	// Response is returned verbatim on success.
	Response string
	// Err, when set, is returned instead of Response.
	Err error
	// Delay blocks each call, racing against context cancellation, to
	// exercise timeout paths.
	Delay time.Duration

	mu      sync.Mutex
	prompts []string
}

func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", classifyTransportError(ctx.Err())
		case <-time.After(m.Delay):
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *Mock) Model() string {
	return "mock"
}

// Prompts returns a copy of every prompt seen so far.
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// CallCount reports how many times Generate was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
