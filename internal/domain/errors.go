package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the remote store has no record with the
// requested id, or explicitly reports the lookup as failed.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the acting user is not the creator of the
// record being mutated. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrCreateFailed, ErrUpdateFailed, and ErrDeleteFailed are returned when
// the remote store accepted the request but reported the individual record
// as unsuccessful. They are usually wrapped in a WriteError carrying the
// remote message and any field-level validation detail.
var (
	ErrCreateFailed = errors.New("create failed")
	ErrUpdateFailed = errors.New("update failed")
	ErrDeleteFailed = errors.New("delete failed")
)

// ErrTransport is returned when the remote call itself could not complete:
// network failure, non-2xx status, or a response body that did not decode.
var ErrTransport = errors.New("transport failure")

// FieldError is one field-level validation message attached by the remote
// store to a rejected write.
type FieldError struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// WriteError wraps one of the write sentinels with the per-record detail
// the remote store attached. It unwraps to its sentinel so callers can
// match with errors.Is(err, domain.ErrCreateFailed) etc.
type WriteError struct {
	Err     error        // ErrCreateFailed, ErrUpdateFailed, or ErrDeleteFailed
	Message string       // record-level message from the remote store, if any
	Fields  []FieldError // field-level validation detail, if any
}

func (e *WriteError) Error() string {
	parts := []string{e.Err.Error()}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Label, f.Message))
	}
	return strings.Join(parts, ": ")
}

func (e *WriteError) Unwrap() error { return e.Err }
