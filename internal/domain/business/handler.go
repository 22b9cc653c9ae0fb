package business

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

type BusinessService interface {
	Save(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error)
	Mine(ctx context.Context, userID uuid.UUID) (*Business, error)
	Get(ctx context.Context, id uuid.UUID) (*Business, error)
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error)
	List(ctx context.Context, f Filter, page, limit int) ([]Business, int, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler handles business HTTP requests
type Handler struct {
	service BusinessService
}

func NewHandler(service BusinessService) *Handler {
	return &Handler{service: service}
}

// Mine handles GET /businesses/me
// @Summary Business of the current user
// @Tags Businesses
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Business}
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Mine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.fail(w, r, err, "Get business")
		return
	}
	response.OK(w, b)
}

// Save handles PUT /businesses/me
// @Summary Create or update the business profile
// @Description Any change sends the business back to verification.
// @Tags Businesses
// @Security BearerAuth
// @Param request body BusinessRequest true "Business"
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBusiness(w, r)
	if !ok {
		return
	}
	b, err := h.service.Save(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		h.fail(w, r, err, "Save business")
		return
	}
	response.OK(w, b)
}

// Onboarding handles POST /businesses/me/onboarding
// @Summary Complete business partner onboarding
// @Description Saves the business for verification and credits the onboarding bonus.
// @Tags Businesses
// @Security BearerAuth
// @Param request body BusinessRequest true "Business"
// @Failure 409 {object} response.Response
func (h *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBusiness(w, r)
	if !ok {
		return
	}
	b, err := h.service.CompleteOnboarding(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		h.fail(w, r, err, "Complete business onboarding")
		return
	}
	response.Created(w, b)
}

func decodeBusiness(w http.ResponseWriter, r *http.Request) (*BusinessRequest, bool) {
	var req BusinessRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return nil, false
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return nil, false
	}
	if errs := req.details().Blank(); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return nil, false
	}
	return &req, true
}

// List handles GET /admin/businesses
// @Summary List businesses
// @Tags Admin
// @Param businessStatus query string false "PENDING_VERIFICATION or ACTIVE"
// @Param verificationStatus query string false "PENDING, APPROVED or REJECTED"
// @Param businessType query string false "BUSINESS"
// @Param search query string false "Name, email or registration number"
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := response.ParsePagination(q)
	f := Filter{
		Status:             q.Get("businessStatus"),
		VerificationStatus: q.Get("verificationStatus"),
		Type:               q.Get("businessType"),
		Search:             q.Get("search"),
	}

	businesses, total, err := h.service.List(r.Context(), f, page, limit)
	if err != nil {
		h.fail(w, r, err, "List businesses")
		return
	}
	response.WithMeta(w, businesses, response.NewMeta(total, page, limit))
}

// Get handles GET /admin/businesses/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Get business")
		return
	}
	response.OK(w, b)
}

// UpdateVerification handles PATCH /admin/businesses/{id}/verification
func (h *Handler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req VerificationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.service.UpdateVerification(r.Context(), id, req.Status, middleware.GetUserID(r.Context()), req.Notes)
	if err != nil {
		h.fail(w, r, err, "Update business verification")
		return
	}
	response.OK(w, b)
}

// Delete handles DELETE /admin/businesses/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Delete business")
		return
	}
	response.NoContent(w)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid business ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrBusinessNotFound), errors.Is(err, ErrUserNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyOnboarded):
		response.Conflict(w, "Business onboarding already completed")
	case errors.Is(err, ErrInvalidVerification):
		response.BadRequest(w, err.Error())
	default:
		errorhandler.Internal(r.Context(), w, err, op+" failed")
	}
}

// Routes mounts under /businesses.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/me", h.Mine)
	r.Put("/me", h.Save)
	r.Post("/me/onboarding", h.Onboarding)

	return r
}

// AdminRoutes mounts under /admin/businesses.
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/verification", h.UpdateVerification)
	r.Delete("/{id}", h.Delete)

	return r
}
