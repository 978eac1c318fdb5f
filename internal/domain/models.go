package domain

import (
	"strings"
	"time"
)

// Message roles as the model API expects them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is one fragment of a message body.
type Part struct {
	Text string `json:"text"`
}

// Message is the canonical history shape sent to the model API.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// RawEntry is a stored history entry before normalization. Current
// deployments write {role, parts}; older ones wrote {role, text}. Pointer
// presence records which fields the stored JSON actually carried, so the
// normalizer can tell the two shapes apart from a malformed entry.
type RawEntry struct {
	Role  string  `json:"role"`
	Parts *[]Part `json:"parts,omitempty"`
	Text  *string `json:"text,omitempty"`
}

// SessionData is all per-session state persisted in the session store.
// Version increases monotonically and backs optimistic locking in the
// store drivers.
type SessionData struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int64      `json:"version"`
	History   []RawEntry `json:"history"`
}

// LLMConfig holds the parameters needed to reach a model provider.
type LLMConfig struct {
	Provider string        `json:"provider"` // "gemini", "mock"
	BaseURL  string        `json:"base_url"`
	APIKey   string        `json:"api_key"`
	Model    string        `json:"model"`
	Timeout  time.Duration `json:"timeout"`
}

// NewUserMessage builds a canonical single-part user message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{{Text: text}}}
}

// NewModelMessage builds a canonical single-part model message.
func NewModelMessage(text string) Message {
	return Message{Role: RoleModel, Parts: []Part{{Text: text}}}
}

// Text joins all parts of the message into one string.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var b strings.Builder
	for _, p := range m.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
