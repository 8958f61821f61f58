package handler

import (
	"encoding/json"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/middleware"
)

// leadRequest is the JSON body accepted by POST /leads and PUT /leads/{id}.
// Status is optional; the service defaults it to "New". Tags are absent on
// purpose — a lead's tag string lives in a read-only remote system field.
type leadRequest struct {
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     openapi_types.Email `json:"email"`
	Phone     string              `json:"phone"`
	Company   string              `json:"company"`
	Status    string              `json:"status,omitempty"`
}

func (req leadRequest) toDomain() domain.Lead {
	return domain.Lead{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     string(req.Email),
		Phone:     req.Phone,
		Company:   req.Company,
		Status:    domain.LeadStatus(req.Status),
	}
}

// ListLeads handles GET /leads.
// A degraded backend yields 200 with an empty array, never an error.
func (s *Server) ListLeads(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.leads.List(r.Context()))
}

// GetLead handles GET /leads/{id}.
func (s *Server) GetLead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	lead, err := s.leads.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "lead", err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

// CreateLead handles POST /leads.
func (s *Server) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	created, err := s.leads.Create(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, "lead", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateLead handles PUT /leads/{id}.
func (s *Server) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor := middleware.UserID(r.Context())
	if actor == "" {
		respondJSON(w, http.StatusUnauthorized, unauthorizedBody())
		return
	}
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	updated, err := s.leads.Update(r.Context(), actor, id, req.toDomain())
	if err != nil {
		writeDomainError(w, "lead", err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteLead handles DELETE /leads/{id}.
func (s *Server) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	actor := middleware.UserID(r.Context())
	if actor == "" {
		respondJSON(w, http.StatusUnauthorized, unauthorizedBody())
		return
	}
	deleted, err := s.leads.Delete(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, "lead", err)
		return
	}
	if !deleted {
		writeDomainError(w, "lead", domain.ErrDeleteFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
