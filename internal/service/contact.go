package service

import (
	"time"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/notify"
)

// contactTable is the remote table backing contacts. The _c suffix marks
// custom tables and fields in the Apper schema; unsuffixed names (Id,
// Name, Owner, CreatedOn, ...) are system fields the store maintains.
const contactTable = "contact_c"

var contactFields = []string{
	"Id",
	"Name",
	"first_name_c",
	"last_name_c",
	"email_c",
	"phone_c",
	"company_c",
	"position_c",
	"photo_c",
	"tags_c",
	"notes_c",
	"created_at_c",
	"updated_at_c",
	"Owner",
	"CreatedOn",
	"CreatedBy",
	"ModifiedOn",
	"ModifiedBy",
}

// NewContactService constructs the entity service for the contact table.
func NewContactService(api apper.TableAPI, n notify.Notifier) *EntityService[domain.Contact] {
	return NewEntityService(api, n, Mapping[domain.Contact]{
		Table:     contactTable,
		Fields:    contactFields,
		Singular:  "contact",
		Plural:    "contacts",
		FromWire:  contactFromWire,
		ToWire:    contactToWire,
		CreatedBy: func(c domain.Contact) string { return c.Audit.CreatedBy },
	})
}

func contactFromWire(rec apper.Record) domain.Contact {
	return domain.Contact{
		ID:        rec.Int("Id"),
		Name:      rec.String("Name"),
		FirstName: rec.String("first_name_c"),
		LastName:  rec.String("last_name_c"),
		Email:     rec.String("email_c"),
		Phone:     rec.String("phone_c"),
		Company:   rec.String("company_c"),
		Position:  rec.String("position_c"),
		Photo:     rec.String("photo_c"),
		Tags:      domain.DecodeTags(rec.String("tags_c")),
		Notes:     rec.String("notes_c"),
		CreatedAt: rec.Time("created_at_c"),
		UpdatedAt: rec.Time("updated_at_c"),
		Audit:     auditFromWire(rec),
	}
}

// contactToWire projects a contact into the remote schema. Contacts stamp
// updated_at_c on every write and created_at_c only on create; both are
// client-side timestamps, unlike the store-maintained CreatedOn/ModifiedOn.
func contactToWire(c domain.Contact, now time.Time, create bool) apper.Record {
	rec := apper.Record{
		"first_name_c": c.FirstName,
		"last_name_c":  c.LastName,
		"email_c":      c.Email,
		"phone_c":      c.Phone,
		"company_c":    c.Company,
		"position_c":   c.Position,
		"photo_c":      c.Photo,
		"tags_c":       domain.EncodeTags(c.Tags),
		"notes_c":      c.Notes,
		"updated_at_c": now.Format(time.RFC3339),
	}
	if create {
		rec["created_at_c"] = now.Format(time.RFC3339)
	}
	return rec
}

// auditFromWire maps the system fields shared by every table.
// CreatedOn/ModifiedOn stay raw strings: they are display-only
// pass-throughs whose exact remote format is not ours to interpret.
func auditFromWire(rec apper.Record) domain.Audit {
	return domain.Audit{
		Owner:      rec.String("Owner"),
		CreatedOn:  rec.String("CreatedOn"),
		CreatedBy:  rec.String("CreatedBy"),
		ModifiedOn: rec.String("ModifiedOn"),
		ModifiedBy: rec.String("ModifiedBy"),
	}
}
