package chat

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/dsridhar11/mbot123/internal/domain"
)

// Tokenizer estimates token usage for logging. cl100k_base is not Gemini's
// exact tokenizer but is close enough for accounting purposes.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

func NewTokenizer() (*Tokenizer, error) {
	tkm, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &Tokenizer{encoding: tkm}, nil
}

// CountText returns the token count of a single text.
func (t *Tokenizer) CountText(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}

// CountMessages returns the summed token count of every role and part in
// the message list.
func (t *Tokenizer) CountMessages(messages []domain.Message) int {
	tokens := 0
	for _, m := range messages {
		tokens += t.CountText(m.Role)
		for _, p := range m.Parts {
			tokens += t.CountText(p.Text)
		}
	}
	return tokens
}
