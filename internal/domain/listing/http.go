package listing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

// VerificationRequest is the admin review body.
type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// ParseID reads the {id} URL parameter, answering 400 when it is malformed.
func ParseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return uuid.Nil, false
	}
	return id, true
}

// WriteError maps listing errors onto the response envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Listing not found")
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "Invalid status")
	case errors.Is(err, ErrInvalidLatitude), errors.Is(err, ErrInvalidLongitude), errors.Is(err, ErrInvalidRadius):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrAlreadyPublished):
		response.Conflict(w, "Draft already has a published listing")
	default:
		errorhandler.Internal(r.Context(), w, err, op+" failed")
	}
}
