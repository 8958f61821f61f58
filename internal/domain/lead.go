package domain

// LeadStatus is the pipeline stage of a lead.
// The remote store treats it as a free-form string; these constants cover
// the values the UI offers. A lead created or updated without a status
// defaults to StatusNew.
type LeadStatus string

const (
	StatusNew         LeadStatus = "New"
	StatusContacted   LeadStatus = "Contacted"
	StatusQualified   LeadStatus = "Qualified"
	StatusUnqualified LeadStatus = "Unqualified"
)

// Lead represents a single sales lead.
// Leads and contacts live in differently-shaped remote tables: a lead has a
// status instead of position/photo/notes, its tag string lives in the
// remote system field "Tags" (read-only), and no timestamps are stamped
// client-side.
type Lead struct {
	ID        int        `json:"id"`
	Name      string     `json:"name,omitempty"` // remote display name, read-only
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	Status    LeadStatus `json:"status"`
	Tags      []string   `json:"tags"` // decoded from the system Tags field, never written back

	Audit Audit `json:"audit"`
}
