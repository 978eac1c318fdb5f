package llm

import (
	"fmt"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// NewGateway builds the configured model gateway.
func NewGateway(cfg domain.LLMConfig) (domain.Gateway, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiAdapter(cfg), nil
	case "mock":
		return NewMockGateway("MediMate"), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
