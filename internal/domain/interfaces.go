package domain

import "context"

// Gateway is the boundary to the external generative-model service.
type Gateway interface {
	// SendTurn opens a chat seeded with the given canonical history, submits
	// userMessage as the next user turn and returns the completion text.
	SendTurn(ctx context.Context, history []Message, userMessage string) (string, error)
	// Summarize issues an independent, historyless call that condenses one
	// exchange into a clinical-note-style summary.
	Summarize(ctx context.Context, userMessage, reply string) (string, error)
}

// SessionStore persists conversation state keyed by session token.
type SessionStore interface {
	// Create stores a new session with Version set to 1.
	Create(ctx context.Context, data *SessionData) error
	// Get returns nil (not an error) when the session does not exist.
	Get(ctx context.Context, id string) (*SessionData, error)
	// Update persists an existing session with optimistic locking and
	// returns ErrVersionConflict when the stored version moved on.
	Update(ctx context.Context, data *SessionData) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// ReportStore persists generated summary reports as flat files.
type ReportStore interface {
	// Save writes body under a timestamp-derived filename and returns it.
	Save(body string) (string, error)
	// List returns all report filenames, newest first.
	List() ([]string, error)
	// Read returns the full report content, or ErrNotFound.
	Read(filename string) (string, error)
	// Path validates filename and resolves it to an on-disk path.
	Path(filename string) (string, error)
}
