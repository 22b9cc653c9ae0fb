package developer

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

// DeveloperService is what the handler needs from Service.
type DeveloperService interface {
	List(ctx context.Context, filter Filter, page, limit int) ([]Developer, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Developer, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Developer, error)
	UpdatePublishStatus(ctx context.Context, id uuid.UUID, status, notes string) (*Developer, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	service DeveloperService
}

func NewHandler(service DeveloperService) *Handler {
	return &Handler{service: service}
}

type PublishStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PUBLISHED UNPUBLISHED ARCHIVED"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// List handles GET /developers
// @Summary List published developers
// @Tags Developers
// @Produce json
// @Param developerType query string false "Developer type"
// @Param publishStatus query string false "Publish status, default PUBLISHED"
// @Param verificationStatus query string false "Verification status"
// @Param search query string false "Name or description"
// @Success 200 {object} response.Response
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := response.ParsePagination(q)
	filter := Filter{
		DeveloperType:      q.Get("developerType"),
		PublishStatus:      q.Get("publishStatus"),
		VerificationStatus: q.Get("verificationStatus"),
		Search:             q.Get("search"),
	}

	items, total, err := h.service.List(r.Context(), filter, page, limit)
	if err != nil {
		listing.WriteError(w, r, err, "List developers")
		return
	}
	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Get handles GET /developers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	dev, err := h.service.Get(r.Context(), id)
	if err != nil {
		listing.WriteError(w, r, err, "Get developer")
		return
	}
	response.OK(w, dev)
}

// ListMy handles GET /developers/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		listing.WriteError(w, r, err, "List own developers")
		return
	}
	response.OK(w, items)
}

// UpdatePublishStatus handles PATCH /developers/{id}/publish-status
// @Summary Change developer publish status
// @Tags Admin
// @Security BearerAuth
func (h *Handler) UpdatePublishStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	var req PublishStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	dev, err := h.service.UpdatePublishStatus(r.Context(), id, req.Status, req.Notes)
	if err != nil {
		listing.WriteError(w, r, err, "Update developer publish status")
		return
	}
	response.OK(w, dev)
}

// UpdateVerification handles PATCH /developers/{id}/verification
// @Summary Review a developer profile
// @Tags Admin
// @Security BearerAuth
func (h *Handler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	var req listing.VerificationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	adminID := middleware.GetUserID(r.Context())
	if err := h.service.UpdateVerificationStatus(r.Context(), id, req.Status, adminID, req.Notes); err != nil {
		listing.WriteError(w, r, err, "Update developer verification")
		return
	}
	response.OK(w, map[string]string{"developerId": id.String(), "verificationStatus": req.Status})
}

// Delete handles DELETE /developers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		listing.WriteError(w, r, err, "Delete developer")
		return
	}
	response.NoContent(w)
}

// Routes mounts under /developers. publish is the shared publish handler
// bound to developer drafts.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, publish http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/publish", publish)
		r.Get("/my", h.ListMy)
		r.Delete("/{id}", h.Delete)

		r.With(middleware.RequireAdmin()).Patch("/{id}/publish-status", h.UpdatePublishStatus)
		r.With(middleware.RequireAdmin()).Patch("/{id}/verification", h.UpdateVerification)
	})

	r.Get("/{id}", h.Get)

	return r
}
