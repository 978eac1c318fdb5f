package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsridhar11/mbot123/internal/domain"
)

func TestTokenizer_CountMessages(t *testing.T) {
	tok, err := NewTokenizer()
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	msgs := []domain.Message{
		domain.NewUserMessage("I have a persistent cough"),
		domain.NewModelMessage("How long has it lasted?"),
	}

	// The count is the plain sum over roles and parts, nothing added per
	// message.
	want := tok.CountText(domain.RoleUser) +
		tok.CountText("I have a persistent cough") +
		tok.CountText(domain.RoleModel) +
		tok.CountText("How long has it lasted?")
	assert.Equal(t, want, tok.CountMessages(msgs))

	assert.Zero(t, tok.CountMessages(nil))
	assert.Positive(t, tok.CountText("headache"))
}
