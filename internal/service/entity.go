// Package service contains the business logic for the contact manager.
// Services orchestrate remote table calls, apply the ownership guard, and
// report every failure through the notification side-channel exactly once
// before returning it. No transport code lives here — services depend on
// the apper interfaces, not the HTTP client.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/notify"
)

// fetchLimit is the fixed window requested by List. There is no paging
// beyond it: the remote table is asked for at most this many records at
// offset 0, matching the table service's single-page ceiling.
const fetchLimit = 1000

// Mapping binds one entity kind to its remote table. The two kinds
// (contact, lead) are not schema-compatible — each supplies its own table
// name, field allow-list, and wire projections, and nothing is shared
// between them but the engine.
type Mapping[T any] struct {
	// Table is the remote table name, e.g. "contact_c".
	Table string

	// Fields is the explicit projection allow-list sent on every read.
	Fields []string

	// Singular and Plural name the entity kind in user-facing messages.
	Singular string
	Plural   string

	// FromWire projects a raw remote record into the public shape.
	FromWire func(rec apper.Record) T

	// ToWire projects input into the remote schema. Absent optional
	// fields become empty strings. create selects create-only stamping
	// (contacts write created_at_c only on create).
	ToWire func(input T, now time.Time, create bool) apper.Record

	// CreatedBy extracts the creator id the ownership guard compares
	// against the acting user.
	CreatedBy func(T) string
}

// EntityService implements the five record operations for one entity kind.
// It holds no record state — every operation round-trips to the remote
// store, which is the sole authority on record contents.
type EntityService[T any] struct {
	api     apper.TableAPI
	notify  notify.Notifier
	mapping Mapping[T]
	now     func() time.Time
}

// NewEntityService constructs an EntityService backed by the provided
// remote table API and notification channel.
func NewEntityService[T any](api apper.TableAPI, n notify.Notifier, m Mapping[T]) *EntityService[T] {
	return &EntityService[T]{api: api, notify: n, mapping: m, now: time.Now}
}

// List returns one window of up to 1000 records.
// Remote failures degrade to an empty slice after a notification — never
// an error. Callers of list views have no failure path to handle; a broken
// backend renders as an empty list.
func (s *EntityService[T]) List(ctx context.Context) []T {
	resp, err := s.api.FetchRecords(ctx, s.mapping.Table, apper.FetchParams{
		Fields:     s.mapping.Fields,
		PagingInfo: &apper.PagingInfo{Limit: fetchLimit, Offset: 0},
	})
	if err != nil {
		s.notify.Error(ctx, "Failed to load "+s.mapping.Plural)
		return []T{}
	}
	if !resp.Success {
		s.notify.Error(ctx, resp.Message)
		return []T{}
	}

	out := make([]T, 0, len(resp.Data))
	for _, rec := range resp.Data {
		out = append(out, s.mapping.FromWire(rec))
	}
	return out
}

// GetByID returns a single record by id.
// Returns domain.ErrNotFound when the remote store has no such record or
// reports the lookup as failed; transport problems surface as
// domain.ErrTransport.
func (s *EntityService[T]) GetByID(ctx context.Context, id int) (T, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		var zero T
		return zero, s.wrap("GetByID", err)
	}
	return rec, nil
}

// get is the unwrapped lookup shared by GetByID and the update/delete
// pre-checks, so each public operation wraps the error exactly once.
func (s *EntityService[T]) get(ctx context.Context, id int) (T, error) {
	var zero T

	resp, err := s.api.GetRecordByID(ctx, s.mapping.Table, id, apper.GetParams{Fields: s.mapping.Fields})
	if err != nil {
		s.notify.Error(ctx, "Failed to load "+s.mapping.Singular)
		return zero, err
	}
	if !resp.Success {
		s.notify.Error(ctx, resp.Message)
		return zero, domain.ErrNotFound
	}
	if resp.Data == nil {
		s.notify.Error(ctx, "Failed to load "+s.mapping.Singular)
		return zero, domain.ErrNotFound
	}

	return s.mapping.FromWire(resp.Data), nil
}

// Create maps input to the wire shape and issues a single-record create.
// No validation happens locally — the remote store is the authority, and
// its field-level rejections come back wrapped in domain.ErrCreateFailed.
// Creation is never owner-gated; only mutation of existing records is.
func (s *EntityService[T]) Create(ctx context.Context, input T) (T, error) {
	var zero T

	rec := s.mapping.ToWire(input, s.now().UTC(), true)
	resp, err := s.api.CreateRecord(ctx, s.mapping.Table, []apper.Record{rec})
	if err != nil {
		s.notify.Error(ctx, "Failed to create "+s.mapping.Singular)
		return zero, s.wrap("Create", err)
	}

	created, werr := s.writeOutcome(ctx, resp, domain.ErrCreateFailed)
	if werr != nil {
		return zero, s.wrap("Create", werr)
	}
	return s.mapping.FromWire(created), nil
}

// Update fetches the current record, checks ownership, then issues a
// single-record update. The pre-check strictly precedes the mutating call;
// on domain.ErrNotFound or domain.ErrForbidden the remote update is never
// issued.
func (s *EntityService[T]) Update(ctx context.Context, actorID string, id int, input T) (T, error) {
	var zero T

	existing, err := s.get(ctx, id)
	if err != nil {
		return zero, s.wrap("Update", err)
	}
	if err := s.authorize(ctx, actorID, existing, "update"); err != nil {
		return zero, s.wrap("Update", err)
	}

	rec := s.mapping.ToWire(input, s.now().UTC(), false)
	rec["Id"] = id
	resp, err := s.api.UpdateRecord(ctx, s.mapping.Table, []apper.Record{rec})
	if err != nil {
		s.notify.Error(ctx, "Failed to update "+s.mapping.Singular)
		return zero, s.wrap("Update", err)
	}

	updated, werr := s.writeOutcome(ctx, resp, domain.ErrUpdateFailed)
	if werr != nil {
		return zero, s.wrap("Update", werr)
	}
	return s.mapping.FromWire(updated), nil
}

// Delete fetches the current record, checks ownership, then issues a
// single-id delete. Returns true only when the remote store reports that
// id as successfully deleted.
func (s *EntityService[T]) Delete(ctx context.Context, actorID string, id int) (bool, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return false, s.wrap("Delete", err)
	}
	if err := s.authorize(ctx, actorID, existing, "delete"); err != nil {
		return false, s.wrap("Delete", err)
	}

	resp, err := s.api.DeleteRecord(ctx, s.mapping.Table, []int{id})
	if err != nil {
		s.notify.Error(ctx, "Failed to delete "+s.mapping.Singular)
		return false, s.wrap("Delete", err)
	}

	_, werr := s.writeOutcome(ctx, resp, domain.ErrDeleteFailed)
	if werr != nil {
		return false, s.wrap("Delete", werr)
	}
	return true, nil
}

// authorize permits mutation only by the record's creator.
// verb is "update" or "delete" and only shapes the user-facing message.
func (s *EntityService[T]) authorize(ctx context.Context, actorID string, existing T, verb string) error {
	if actorID != "" && actorID == s.mapping.CreatedBy(existing) {
		return nil
	}
	s.notify.Error(ctx, fmt.Sprintf("You can only %s %s you created", verb, s.mapping.Plural))
	return domain.ErrForbidden
}

// writeOutcome inspects a write response entry by entry. The batch
// contract allows partial success, so failures are collected across all
// entries even though this layer only ever sends one record. On failure it
// notifies once with the aggregated detail and returns a WriteError
// wrapping sentinel; on success it returns the first successful record.
func (s *EntityService[T]) writeOutcome(ctx context.Context, resp *apper.WriteResponse, sentinel error) (apper.Record, *domain.WriteError) {
	if !resp.Success {
		werr := &domain.WriteError{Err: sentinel, Message: resp.Message}
		s.notify.Error(ctx, werr.Error())
		return nil, werr
	}

	var succeeded apper.Record
	sawSuccess := false
	var werr *domain.WriteError
	for _, r := range resp.Results {
		if r.Success {
			// Deletes report success with no record attached, so success
			// is tracked separately from the returned data.
			sawSuccess = true
			if succeeded == nil {
				succeeded = r.Data
			}
			continue
		}
		if werr == nil {
			werr = &domain.WriteError{Err: sentinel}
		}
		if werr.Message == "" {
			werr.Message = r.Message
		}
		for _, fe := range r.Errors {
			werr.Fields = append(werr.Fields, domain.FieldError{Label: fe.FieldLabel, Message: fe.Message})
		}
	}

	if werr != nil {
		s.notify.Error(ctx, werr.Error())
		return nil, werr
	}
	if !sawSuccess {
		// Empty results slice: the store acknowledged nothing.
		werr = &domain.WriteError{Err: sentinel}
		s.notify.Error(ctx, werr.Error())
		return nil, werr
	}
	return succeeded, nil
}

func (s *EntityService[T]) wrap(op string, err error) error {
	return fmt.Errorf("service.%s.%s: %w", s.mapping.Singular, op, err)
}
