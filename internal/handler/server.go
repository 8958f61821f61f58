// Package handler implements the HTTP handlers for the contact manager API.
// All handlers are methods on Server. Methods are split into entity-specific
// files (contact.go, lead.go, health.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/spec"
)

// ContactServicer defines the business operations the contact handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the remote table service.
//
// List deliberately returns no error: list reads degrade to an empty slice
// on remote failure.
type ContactServicer interface {
	List(ctx context.Context) []domain.Contact
	GetByID(ctx context.Context, id int) (domain.Contact, error)
	Create(ctx context.Context, input domain.Contact) (domain.Contact, error)
	Update(ctx context.Context, actorID string, id int, input domain.Contact) (domain.Contact, error)
	Delete(ctx context.Context, actorID string, id int) (bool, error)
}

// LeadServicer defines the business operations the lead handlers depend on.
type LeadServicer interface {
	List(ctx context.Context) []domain.Lead
	GetByID(ctx context.Context, id int) (domain.Lead, error)
	Create(ctx context.Context, input domain.Lead) (domain.Lead, error)
	Update(ctx context.Context, actorID string, id int, input domain.Lead) (domain.Lead, error)
	Delete(ctx context.Context, actorID string, id int) (bool, error)
}

// PhotoWatermarker stamps a contact photo, falling back to the original
// URL on any failure.
type PhotoWatermarker interface {
	Apply(ctx context.Context, photoURL, contactName string) string
}

// Server holds the handlers for all API endpoints.
type Server struct {
	contacts ContactServicer
	leads    LeadServicer
	photos   PhotoWatermarker
}

// NewServer constructs the Server with all its dependencies.
func NewServer(contacts ContactServicer, leads LeadServicer, photos PhotoWatermarker) *Server {
	return &Server{contacts: contacts, leads: leads, photos: photos}
}

// Routes returns the chi router for the full API surface.
// Middleware (request id, logging, auth, CORS) is applied by main, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", s.ListContacts)
		r.Post("/", s.CreateContact)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetContact)
			r.Put("/", s.UpdateContact)
			r.Delete("/", s.DeleteContact)
			r.Get("/photo", s.GetContactPhoto)
		})
	})

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", s.ListLeads)
		r.Post("/", s.CreateLead)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetLead)
			r.Put("/", s.UpdateLead)
			r.Delete("/", s.DeleteLead)
		})
	})

	return r
}

// GetOpenAPI serves the embedded OpenAPI document, so the spec and the
// running code are always in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(spec.OpenAPI) //nolint:errcheck
}

// respondJSON writes v as a JSON response with the given status.
// Encoding failures at this point can only mean a broken response type, so
// they are logged rather than surfaced — the status line is already gone.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
