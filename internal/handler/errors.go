package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code, a human-readable
// message, and field-level validation detail when the remote store
// attached any.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// writeDomainError maps a service-layer error onto the HTTP surface.
// kind names the entity ("contact", "lead") for not-found messages —
// the handler is the layer that knows what was being looked up.
//
// The notification side-channel has already fired by the time an error
// reaches here, so this mapping only shapes the response body.
func writeDomainError(w http.ResponseWriter, kind string, err error) {
	var werr *domain.WriteError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code: "not_found", Message: kind + " not found",
		}})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, ErrorResponse{Error: ErrorDetail{
			Code: "forbidden", Message: "you can only modify " + kind + "s you created",
		}})
	case errors.As(err, &werr) && (errors.Is(err, domain.ErrCreateFailed) || errors.Is(err, domain.ErrUpdateFailed)):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code: "validation_error", Message: unwrapMessage(err), Fields: werr.Fields,
		}})
	case errors.Is(err, domain.ErrDeleteFailed), errors.Is(err, domain.ErrTransport):
		respondJSON(w, http.StatusBadGateway, ErrorResponse{Error: ErrorDetail{
			Code: "remote_error", Message: unwrapMessage(err),
		}})
	default:
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code: "internal", Message: "internal server error",
		}})
	}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}}
}

// unauthorizedBody returns an ErrorResponse for a mutation attempted
// without an authenticated actor.
func unauthorizedBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "unauthorized", Message: "authentication required"}}
}

// unwrapMessage strips the "service.<kind>.<Op>: " wrapping prefixes from
// a service error, leaving the human-readable tail.
// e.g. "service.contact.Create: create failed: Email: invalid" →
// "create failed: Email: invalid".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for strings.HasPrefix(msg, "service.") {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		msg = msg[i+2:]
	}
	return msg
}
