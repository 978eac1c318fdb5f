// Package chat drives one conversation turn end to end: load the session,
// normalize its history, consult the model, persist the grown history and
// file a summary report.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dsridhar11/mbot123/internal/domain"
	"github.com/dsridhar11/mbot123/internal/service/history"
)

// conflictRetries bounds how often a turn re-attempts its session write
// after losing an optimistic-lock race to a concurrent request.
const conflictRetries = 3

type Orchestrator struct {
	gateway  domain.Gateway
	sessions domain.SessionStore
	reports  domain.ReportStore
	tok      *Tokenizer
	log      zerolog.Logger
}

func NewOrchestrator(gw domain.Gateway, sessions domain.SessionStore, reports domain.ReportStore, log zerolog.Logger) *Orchestrator {
	tok, err := NewTokenizer()
	if err != nil {
		// Token accounting is log-only; run without it rather than fail.
		log.Warn().Err(err).Msg("tokenizer unavailable, token accounting disabled")
		tok = nil
	}
	return &Orchestrator{
		gateway:  gw,
		sessions: sessions,
		reports:  reports,
		tok:      tok,
		log:      log,
	}
}

// EnsureSession lazily creates an empty session on first access.
func (o *Orchestrator) EnsureSession(ctx context.Context, sessionID string) error {
	data, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return &domain.PersistenceError{Op: "load session", Err: err}
	}
	if data != nil {
		return nil
	}
	err = o.sessions.Create(ctx, &domain.SessionData{
		ID:      sessionID,
		History: []domain.RawEntry{},
	})
	if err != nil {
		return &domain.PersistenceError{Op: "create session", Err: err}
	}
	return nil
}

// Chat runs one turn. A successful turn appends exactly one user and one
// model message to the session and files exactly one summary report; a
// failed summary or report write is logged and swallowed so the reply still
// reaches the user.
func (o *Orchestrator) Chat(ctx context.Context, sessionID, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", domain.ErrNoInput
	}

	data, err := o.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", &domain.PersistenceError{Op: "load session", Err: err}
	}

	var hist []domain.Message
	if data != nil {
		hist = history.Normalize(data.History)
	}

	reply, err := o.gateway.SendTurn(ctx, hist, userInput)
	if err != nil {
		return "", err
	}

	hist = append(hist, domain.NewUserMessage(userInput), domain.NewModelMessage(reply))
	if err := o.persistHistory(ctx, sessionID, hist); err != nil {
		return "", err
	}

	if o.tok != nil {
		o.log.Debug().
			Str("session", sessionID).
			Int("history_tokens", o.tok.CountMessages(hist)).
			Int("reply_tokens", o.tok.CountText(reply)).
			Msg("turn complete")
	}

	o.fileReport(ctx, userInput, reply)

	return reply, nil
}

// persistHistory writes the fully normalized history back to the session,
// creating it when missing. On a version conflict it retries with a fresh
// version a bounded number of times; the latest writer's view of the
// history wins, matching the store's read-then-write semantics.
func (o *Orchestrator) persistHistory(ctx context.Context, sessionID string, hist []domain.Message) error {
	raw := history.ToRaw(hist)

	for attempt := 0; ; attempt++ {
		data, err := o.sessions.Get(ctx, sessionID)
		if err != nil {
			return &domain.PersistenceError{Op: "load session", Err: err}
		}

		if data == nil {
			err = o.sessions.Create(ctx, &domain.SessionData{ID: sessionID, History: raw})
		} else {
			data.History = raw
			err = o.sessions.Update(ctx, data)
		}

		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrVersionConflict) && attempt < conflictRetries {
			o.log.Warn().Str("session", sessionID).Int("attempt", attempt+1).
				Msg("session version conflict, retrying write")
			continue
		}
		return &domain.PersistenceError{Op: "save session", Err: err}
	}
}

// fileReport generates and stores the clinical-note summary for one
// exchange. Best-effort: the chat reply has already been secured, so every
// failure here is logged and dropped.
func (o *Orchestrator) fileReport(ctx context.Context, userInput, reply string) {
	note, err := o.gateway.Summarize(ctx, userInput, reply)
	if err != nil {
		o.log.Error().Err(err).Msg("summary generation failed")
		return
	}

	name, err := o.reports.Save(note)
	if err != nil {
		o.log.Error().Err(err).Msg("summary report save failed")
		return
	}
	o.log.Info().Str("report", name).Msg("summary report saved")
}
