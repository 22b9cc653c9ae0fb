package user

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

type UserService interface {
	Me(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error)
	CompleteOnboarding(ctx context.Context, id uuid.UUID, req *OnboardingRequest) (*User, error)
	List(ctx context.Context, f Filter, page, limit int) ([]User, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*User, error)
}

// Handler handles user HTTP requests
type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

// Me handles GET /users/me
// @Summary Current user
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} response.Response{data=User}
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Me(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.fail(w, r, err, "Get current user")
		return
	}
	response.OK(w, u)
}

// UpdateMe handles PATCH /users/me
// @Summary Update name and email
// @Tags Users
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.fail(w, r, err, "Update profile")
		return
	}
	response.OK(w, u)
}

// Onboarding handles POST /users/me/onboarding
// @Summary Complete partner onboarding
// @Description Activates the account and credits the welcome bonus.
// @Tags Users
// @Security BearerAuth
// @Param request body OnboardingRequest true "Profile"
// @Failure 409 {object} response.Response
func (h *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.CompleteOnboarding(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.fail(w, r, err, "Complete onboarding")
		return
	}
	response.OK(w, u)
}

// List handles GET /admin/users
// @Summary List users
// @Tags Admin
// @Param userStatus query string false "PENDING, ACTIVE or SUSPENDED"
// @Param search query string false "Name, phone or email"
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := response.ParsePagination(q)

	users, total, err := h.service.List(r.Context(), Filter{Status: q.Get("userStatus"), Search: q.Get("search")}, page, limit)
	if err != nil {
		h.fail(w, r, err, "List users")
		return
	}
	response.WithMeta(w, users, response.NewMeta(total, page, limit))
}

// UpdateStatus handles PATCH /admin/users/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.fail(w, r, err, "Update user status")
		return
	}
	response.OK(w, u)
}

// UpdateVerification handles PATCH /admin/users/{id}/verification
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

	u, err := h.service.UpdateVerification(r.Context(), id, req.Status, middleware.GetUserID(r.Context()), req.Notes)
	if err != nil {
		h.fail(w, r, err, "Update user verification")
		return
	}
	response.OK(w, u)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(w, "Email already in use")
	case errors.Is(err, ErrAlreadyOnboarded):
		response.Conflict(w, "Onboarding already completed")
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidVerification):
		response.BadRequest(w, err.Error())
	default:
		errorhandler.Internal(r.Context(), w, err, op+" failed")
	}
}

// Routes mounts under /users.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/me", h.Me)
	r.Patch("/me", h.UpdateMe)
	r.Post("/me/onboarding", h.Onboarding)

	return r
}

// AdminRoutes mounts under /admin/users.
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/", h.List)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/verification", h.UpdateVerification)

	return r
}
