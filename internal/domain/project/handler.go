package project

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

type ProjectService interface {
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error)
	List(ctx context.Context, filter Filter, page, limit int) ([]Project, int, error)
	SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProject, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	service ProjectService
}

func NewHandler(service ProjectService) *Handler {
	return &Handler{service: service}
}

// List handles GET /projects
// @Summary List published projects
// @Tags Projects
// @Param city query string false "City"
// @Param projectType query string false "residential, commercial or mixed"
// @Param status query string false "Project status"
// @Param search query string false "Name or description"
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := response.ParsePagination(q)
	filter := Filter{
		City:        q.Get("city"),
		ProjectType: q.Get("projectType"),
		Status:      q.Get("status"),
		Search:      q.Get("search"),
	}

	items, total, err := h.service.List(r.Context(), filter, page, limit)
	if err != nil {
		listing.WriteError(w, r, err, "List projects")
		return
	}
	response.WithMeta(w, items, response.NewMeta(total, page, limit))
}

// Nearby handles GET /projects/nearby?lat=&lng=&radius=
// @Summary Projects within a radius in km
// @Tags Projects
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	q, err := listing.ParseNearby(r.URL.Query())
	if err != nil {
		listing.WriteError(w, r, err, "Search projects")
		return
	}
	items, err := h.service.SearchNearby(r.Context(), q)
	if err != nil {
		listing.WriteError(w, r, err, "Search projects")
		return
	}
	response.OK(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		listing.WriteError(w, r, err, "Get project")
		return
	}
	response.OK(w, p)
}

func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		listing.WriteError(w, r, err, "List own projects")
		return
	}
	response.OK(w, items)
}

// UpdateVerification handles PATCH /projects/{id}/verification
// @Summary Review a project
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
		listing.WriteError(w, r, err, "Update project verification")
		return
	}
	response.OK(w, map[string]string{"projectId": id.String(), "verificationStatus": req.Status})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		listing.WriteError(w, r, err, "Delete project")
		return
	}
	response.NoContent(w)
}

// Routes mounts under /projects.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, publish http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/nearby", h.Nearby)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/publish", publish)
		r.Get("/my", h.ListMy)
		r.Delete("/{id}", h.Delete)
		r.With(middleware.RequireAdmin()).Patch("/{id}/verification", h.UpdateVerification)
	})

	r.Get("/{id}", h.Get)

	return r
}
