package llm

import (
	"context"
	"sync"

	"chat-relay/internal/domain"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Completion Completion
	Err        error

	mu           sync.Mutex
	calls        int
	lastMessages []domain.ChatMessage
}

func (m *MockClient) Complete(_ context.Context, messages []domain.ChatMessage) (Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastMessages = append([]domain.ChatMessage(nil), messages...)
	return m.Completion, m.Err
}

func (m *MockClient) Close() error { return nil }

// Calls devuelve cuántas veces se invocó Complete.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastMessages devuelve los mensajes de la última llamada.
func (m *MockClient) LastMessages() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessages
}
