// Package history converts stored conversation entries into the canonical
// shape the model API expects.
package history

import "github.com/dsridhar11/mbot123/internal/domain"

// Normalize converts raw stored entries into canonical messages, preserving
// order. Canonical {role, parts} entries pass through unchanged, legacy
// {role, text} entries become a single-part message, and entries carrying
// neither field are silently dropped. Pure function, no I/O.
func Normalize(raw []domain.RawEntry) []domain.Message {
	out := make([]domain.Message, 0, len(raw))
	for _, e := range raw {
		switch {
		case e.Parts != nil:
			out = append(out, domain.Message{Role: e.Role, Parts: *e.Parts})
		case e.Text != nil:
			out = append(out, domain.Message{Role: e.Role, Parts: []domain.Part{{Text: *e.Text}}})
		}
	}
	return out
}

// ToRaw converts canonical messages back into storage entries. Everything
// written through here carries the parts field, so legacy entries only ever
// survive one round trip.
func ToRaw(msgs []domain.Message) []domain.RawEntry {
	out := make([]domain.RawEntry, len(msgs))
	for i, m := range msgs {
		parts := m.Parts
		out[i] = domain.RawEntry{Role: m.Role, Parts: &parts}
	}
	return out
}
