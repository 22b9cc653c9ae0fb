package draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

// DraftService is what the handler needs from the draft service.
type DraftService interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateDraftRequest) (*Draft, error)
	Get(ctx context.Context, userID, draftID uuid.UUID) (*Draft, error)
	List(ctx context.Context, userID uuid.UUID, t Type, status Status) ([]Draft, error)
	UpdateStep(ctx context.Context, userID, draftID uuid.UUID, stepID string, data json.RawMessage) (*StepUpdate, error)
	Delete(ctx context.Context, userID, draftID uuid.UUID) error
	Validation(ctx context.Context, userID, draftID uuid.UUID) (*schema.ValidationSummary, error)
}

type Handler struct {
	service DraftService
}

func NewHandler(service DraftService) *Handler {
	return &Handler{service: service}
}

// Create handles POST /drafts
// @Summary Create a listing draft
// @Tags Drafts
// @Security BearerAuth
// @Param request body CreateDraftRequest true "Draft type and optional initial data"
// @Router /drafts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateDraftRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	d, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.fail(w, r, err, "create draft")
		return
	}
	response.Created(w, d)
}

// List handles GET /drafts?draftType=&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	q := r.URL.Query()

	status := Status(strings.ToUpper(q.Get("status")))
	if status != "" && status != StatusDraft && status != StatusPublished {
		response.BadRequest(w, "status must be DRAFT or PUBLISHED")
		return
	}

	drafts, err := h.service.List(r.Context(), userID, Type(strings.ToUpper(q.Get("draftType"))), status)
	if err != nil {
		h.fail(w, r, err, "list drafts")
		return
	}
	response.OK(w, drafts)
}

// Get handles GET /drafts/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	draftID, ok := parseDraftID(w, r)
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()), draftID)
	if err != nil {
		h.fail(w, r, err, "get draft")
		return
	}
	response.OK(w, d)
}

// UpdateStep handles PATCH /drafts/{id}/steps/{stepId}
// @Summary Save one step of a draft
// @Description Replaces the step's payload. Other steps are untouched. The
// @Description response carries the step's validation result.
// @Tags Drafts
// @Security BearerAuth
// @Router /drafts/{id}/steps/{stepId} [patch]
func (h *Handler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	draftID, ok := parseDraftID(w, r)
	if !ok {
		return
	}

	var req UpdateStepRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	res, err := h.service.UpdateStep(r.Context(), middleware.GetUserID(r.Context()), draftID, chi.URLParam(r, "stepId"), req.StepData)
	if err != nil {
		h.fail(w, r, err, "update draft step")
		return
	}
	response.OK(w, res)
}

// Delete handles DELETE /drafts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	draftID, ok := parseDraftID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), draftID); err != nil {
		h.fail(w, r, err, "delete draft")
		return
	}
	response.NoContent(w)
}

// Validation handles GET /drafts/{id}/validation
func (h *Handler) Validation(w http.ResponseWriter, r *http.Request) {
	draftID, ok := parseDraftID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Validation(r.Context(), middleware.GetUserID(r.Context()), draftID)
	if err != nil {
		h.fail(w, r, err, "validate draft")
		return
	}
	response.OK(w, summary)
}

func parseDraftID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid draft ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Draft not found")
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(w, "draftType must be one of PROPERTY, PROJECT, DEVELOPER, PG_HOSTEL")
	case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrInvalidStepData):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrDraftPublished):
		response.Conflict(w, "Published drafts cannot be deleted")
	default:
		errorhandler.Internal(r.Context(), w, err, op+" failed", "user_id", middleware.GetUserID(r.Context()).String())
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/steps/{stepId}", h.UpdateStep)
	r.Get("/{id}/validation", h.Validation)
	return r
}
