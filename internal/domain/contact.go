// Package domain contains the core data types for the contact manager.
// This package has zero external dependencies and is imported by every other
// internal package (apper, service, handler).
package domain

import "time"

// Contact represents a single person in the contact table.
// All state lives in the remote table store; this struct is the local
// projection of one record. Tags is the decoded form of the remote
// comma-separated tag string.
type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name,omitempty"` // remote display name, read-only
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Position  string    `json:"position,omitempty"`
	Photo     string    `json:"photo,omitempty"` // photo URL, unwatermarked
	Tags      []string  `json:"tags"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"` // stamped client-side on create
	UpdatedAt time.Time `json:"updated_at"` // stamped client-side on every write

	Audit Audit `json:"audit"`
}

// Audit holds the system fields the remote store maintains on every record.
// They are never written by this service layer; CreatedBy feeds the
// ownership check before update and delete.
type Audit struct {
	Owner      string `json:"owner,omitempty"`
	CreatedOn  string `json:"created_on,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedOn string `json:"modified_on,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}
