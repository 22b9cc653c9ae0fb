package auth

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

type AuthService interface {
	SendOTP(ctx context.Context, phone string) (*OTPSent, error)
	ResendOTP(ctx context.Context, phone string) (*OTPSent, error)
	VerifyOTP(ctx context.Context, phone, code string) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Handler handles auth HTTP requests
type Handler struct {
	service AuthService
}

func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// SendOTP handles POST /auth/otp/send
// @Summary Send a login code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Phone"
// @Success 200 {object} response.Response{data=OTPSent}
// @Failure 429 {object} response.Response
// @Router /auth/otp/send [post]
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.service.SendOTP)
}

// ResendOTP handles POST /auth/otp/resend
// @Summary Resend a login code
// @Tags Auth
// @Router /auth/otp/resend [post]
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, h.service.ResendOTP)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*OTPSent, error)) {
	var req SendOTPRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	req.Phone = normalizePhone(req.Phone)
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sent, err := fn(r.Context(), req.Phone)
	if err != nil {
		h.fail(w, r, err, "Send OTP")
		return
	}
	response.OK(w, sent)
}

// VerifyOTP handles POST /auth/otp/verify
// @Summary Verify a login code
// @Description Creates the partner account on first login.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Phone and code"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /auth/otp/verify [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	req.Phone = normalizePhone(req.Phone)
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), req.Phone, req.Code)
	if err != nil {
		h.fail(w, r, err, "Verify OTP")
		return
	}
	response.OK(w, resp)
}

// Refresh handles POST /auth/refresh
// @Summary Rotate tokens
// @Tags Auth
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response{data=TokenPair}
// @Router /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err, "Refresh token")
		return
	}
	response.OK(w, pair)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		h.fail(w, r, err, "Logout")
		return
	}
	response.NoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	var cooldown *CooldownError
	switch {
	case errors.As(err, &cooldown):
		secs := int(math.Ceil(cooldown.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		errorhandler.HandleErrorWithDetails(r.Context(), w, http.StatusTooManyRequests, "OTP_COOLDOWN",
			"Please wait before requesting another code", map[string]int{"retryAfter": secs}, err)
	case errors.Is(err, ErrTooManyAttempts):
		response.TooManyRequests(w)
	case errors.Is(err, ErrInvalidCode):
		response.Error(w, http.StatusBadRequest, "INVALID_OTP", "Invalid code")
	case errors.Is(err, ErrCodeExpired):
		response.Error(w, http.StatusBadRequest, "OTP_EXPIRED", "Code expired or not requested")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Unauthorized(w, "Invalid refresh token")
	case errors.Is(err, ErrUserSuspended):
		response.Forbidden(w, "Account suspended")
	default:
		errorhandler.Internal(r.Context(), w, err, op+" failed")
	}
}

// Routes mounts under /auth.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/otp/send", h.SendOTP)
	r.Post("/otp/resend", h.ResendOTP)
	r.Post("/otp/verify", h.VerifyOTP)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)

	return r
}
