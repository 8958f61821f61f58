package service

import (
	"time"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/notify"
)

// leadTable is the remote table backing leads. Leads are not
// schema-compatible with contacts: the tag string lives in the system
// field "Tags" (never written from here), there is a status_c enum, and no
// client-side timestamps exist.
const leadTable = "leads_c"

var leadFields = []string{
	"Id",
	"Name",
	"first_name_c",
	"last_name_c",
	"email_c",
	"phone_c",
	"company_c",
	"status_c",
	"Tags",
	"Owner",
	"CreatedOn",
	"CreatedBy",
	"ModifiedOn",
	"ModifiedBy",
}

// NewLeadService constructs the entity service for the leads table.
func NewLeadService(api apper.TableAPI, n notify.Notifier) *EntityService[domain.Lead] {
	return NewEntityService(api, n, Mapping[domain.Lead]{
		Table:     leadTable,
		Fields:    leadFields,
		Singular:  "lead",
		Plural:    "leads",
		FromWire:  leadFromWire,
		ToWire:    leadToWire,
		CreatedBy: func(l domain.Lead) string { return l.Audit.CreatedBy },
	})
}

func leadFromWire(rec apper.Record) domain.Lead {
	return domain.Lead{
		ID:        rec.Int("Id"),
		Name:      rec.String("Name"),
		FirstName: rec.String("first_name_c"),
		LastName:  rec.String("last_name_c"),
		Email:     rec.String("email_c"),
		Phone:     rec.String("phone_c"),
		Company:   rec.String("company_c"),
		Status:    domain.LeadStatus(rec.String("status_c")),
		Tags:      domain.DecodeTags(rec.String("Tags")),
		Audit:     auditFromWire(rec),
	}
}

// leadToWire projects a lead into the remote schema. An empty status
// defaults to "New" on create and update alike. The Tags system field is
// read-only and never sent.
func leadToWire(l domain.Lead, _ time.Time, _ bool) apper.Record {
	status := l.Status
	if status == "" {
		status = domain.StatusNew
	}
	return apper.Record{
		"first_name_c": l.FirstName,
		"last_name_c":  l.LastName,
		"email_c":      l.Email,
		"phone_c":      l.Phone,
		"company_c":    l.Company,
		"status_c":     string(status),
	}
}
