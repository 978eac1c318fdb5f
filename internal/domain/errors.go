package domain

import "errors"

// Common errors for store and request handling.
var (
	ErrNoInput          = errors.New("no input provided")
	ErrInvalidName      = errors.New("invalid report filename")
	ErrNotFound         = errors.New("not found")
	ErrVersionConflict  = errors.New("session version conflict")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid session store type")
)

// GatewayError wraps any failure returned by the external model service:
// transport, auth, quota or a malformed response. It is never retried here.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return "gateway " + e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed write to session or report storage.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
