package property

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

type PropertyService interface {
	Get(ctx context.Context, id uuid.UUID) (*Property, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Property, error)
	SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProperty, error)
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	service PropertyService
}

func NewHandler(service PropertyService) *Handler {
	return &Handler{service: service}
}

// Nearby handles GET /properties/nearby?lat=&lng=&radius=
// @Summary Published properties within a radius
// @Tags Properties
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Radius in km, default 10, max 100"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	q, err := listing.ParseNearby(r.URL.Query())
	if err != nil {
		listing.WriteError(w, r, err, "Search properties")
		return
	}
	items, err := h.service.SearchNearby(r.Context(), q)
	if err != nil {
		listing.WriteError(w, r, err, "Search properties")
		return
	}
	response.OK(w, items)
}

// Get handles GET /properties/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		listing.WriteError(w, r, err, "Get property")
		return
	}
	response.OK(w, p)
}

// ListMy handles GET /properties/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		listing.WriteError(w, r, err, "List own properties")
		return
	}
	response.OK(w, items)
}

// UpdateVerification handles PATCH /properties/{id}/verification
// @Summary Review a property
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
		listing.WriteError(w, r, err, "Update property verification")
		return
	}
	response.OK(w, map[string]string{"propertyId": id.String(), "verificationStatus": req.Status})
}

// Delete handles DELETE /properties/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := listing.ParseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		listing.WriteError(w, r, err, "Delete property")
		return
	}
	response.NoContent(w)
}

// Routes mounts under /properties.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, publish http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

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
