package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/middleware"
)

// contactRequest is the JSON body accepted by POST /contacts and
// PUT /contacts/{id}. Email uses the oapi runtime type so a syntactically
// invalid address is rejected at decode time, before the remote round trip.
type contactRequest struct {
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     openapi_types.Email `json:"email"`
	Phone     string              `json:"phone"`
	Company   string              `json:"company"`
	Position  string              `json:"position,omitempty"`
	Photo     string              `json:"photo,omitempty"`
	Tags      []string            `json:"tags,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

func (req contactRequest) toDomain() domain.Contact {
	return domain.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     string(req.Email),
		Phone:     req.Phone,
		Company:   req.Company,
		Position:  req.Position,
		Photo:     req.Photo,
		Tags:      req.Tags,
		Notes:     req.Notes,
	}
}

// ListContacts handles GET /contacts.
// A degraded backend yields 200 with an empty array, never an error.
func (s *Server) ListContacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.contacts.List(r.Context()))
}

// GetContact handles GET /contacts/{id}.
func (s *Server) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	contact, err := s.contacts.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "contact", err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

// CreateContact handles POST /contacts.
// Creation is never owner-gated; the remote store records the creator.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	created, err := s.contacts.Create(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, "contact", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateContact handles PUT /contacts/{id}.
// Requires an authenticated actor; only the record's creator may update.
func (s *Server) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor := middleware.UserID(r.Context())
	if actor == "" {
		respondJSON(w, http.StatusUnauthorized, unauthorizedBody())
		return
	}
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	updated, err := s.contacts.Update(r.Context(), actor, id, req.toDomain())
	if err != nil {
		writeDomainError(w, "contact", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteContact handles DELETE /contacts/{id}.
func (s *Server) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor := middleware.UserID(r.Context())
	if actor == "" {
		respondJSON(w, http.StatusUnauthorized, unauthorizedBody())
		return
	}
	deleted, err := s.contacts.Delete(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "contact", err)
		return
	}
	if !deleted {
		writeDomainError(w, "contact", domain.ErrDeleteFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetContactPhoto handles GET /contacts/{id}/photo.
// It returns the watermarked photo URL when the watermark function
// succeeds, and the stored URL otherwise — the fallback is silent.
func (s *Server) GetContactPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	contact, err := s.contacts.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "contact", err)
		return
	}
	name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	url := s.photos.Apply(r.Context(), contact.Photo, name)
	respondJSON(w, http.StatusOK, map[string]string{"photo_url": url})
}

// parseID extracts the integer record id from the URL. On a malformed id
// it writes 400 and reports false — record ids are remote-assigned
// positive integers, so anything else cannot exist.
func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, requestBody("id must be a positive integer"))
		return 0, false
	}
	return id, true
}
