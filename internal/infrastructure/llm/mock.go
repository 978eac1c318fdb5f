package llm

import (
	"context"
	"fmt"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// MockGateway returns canned replies, for local development without an API
// key and for tests.
type MockGateway struct {
	Prefix string
}

func NewMockGateway(prefix string) *MockGateway {
	return &MockGateway{Prefix: prefix}
}

func (m *MockGateway) SendTurn(ctx context.Context, history []domain.Message, userMessage string) (string, error) {
	return fmt.Sprintf("[%s] I hear you mention: %q. This is a mock reply; no model was consulted.", m.Prefix, userMessage), nil
}

func (m *MockGateway) Summarize(ctx context.Context, userMessage, reply string) (string, error) {
	return "**Symptoms Mentioned**\n- (mock)\n\n**Possible Conditions or Risks**\n- (mock)\n\n**Recommended Actions**\n- (mock)", nil
}
