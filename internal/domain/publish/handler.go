package publish

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

// IdempotencyHeader carries the optional client key.
const IdempotencyHeader = "Idempotency-Key"

// Publisher is implemented by Workflow.
type Publisher interface {
	Publish(ctx context.Context, req Request) (*Result, error)
}

// Handler serves the per-type publish endpoints.
type Handler struct {
	publisher Publisher
}

func NewHandler(publisher Publisher) *Handler {
	return &Handler{publisher: publisher}
}

type PublishRequest struct {
	DraftID string `json:"draftId" validate:"required,uuid"`
}

// For returns the POST /<listings>/publish handler of one draft type.
// @Summary Publish a draft
// @Tags Publish
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client idempotency key"
// @Success 200 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
func (h *Handler) For(t draft.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PublishRequest
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
		if errs := validator.Validate(&req); errs != nil {
			response.ValidationError(w, errs)
			return
		}

		key := r.Header.Get(IdempotencyHeader)
		if len(key) > MaxKeyLength {
			response.BadRequest(w, "Idempotency-Key is too long")
			return
		}

		draftID := uuid.MustParse(req.DraftID)
		middleware.Tag(r.Context(), "draft_id", req.DraftID)
		userID := middleware.GetUserID(r.Context())

		res, err := h.publisher.Publish(r.Context(), Request{
			UserID:         userID,
			DraftID:        draftID,
			DraftType:      t,
			IdempotencyKey: key,
		})
		if err != nil {
			h.fail(w, r, err, userID, draftID)
			return
		}

		body := map[string]interface{}{
			res.EntityKey + "Id": res.EntityID,
			"isUpdate":           res.IsUpdate,
			"replayed":           res.Replayed,
			res.EntityKey:        res.Preview,
		}
		if res.NewBalance != nil {
			body["newBalance"] = res.NewBalance
		}
		w.Header().Set(IdempotencyHeader, res.IdempotencyKey)
		if res.IsUpdate || res.Replayed {
			response.OK(w, body)
			return
		}
		response.Created(w, body)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, userID, draftID uuid.UUID) {
	ctx := r.Context()

	var verr *schema.DraftValidationError
	var funds *wallet.InsufficientFundsError
	switch {
	case errors.As(err, &verr):
		errorhandler.LogValidationError(ctx, verr.Errors)
		response.ValidationErrorDetails(w, "Draft validation failed", verr.Errors)
	case errors.As(err, &funds):
		response.PaymentRequired(w, "Insufficient wallet balance", map[string]string{
			"balance":  funds.Balance.StringFixed(2),
			"required": funds.Required.StringFixed(2),
		})
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.PaymentRequired(w, "Insufficient wallet balance", nil)
	case errors.Is(err, draft.ErrNotFound):
		response.NotFound(w, "Draft not found")
	case errors.Is(err, wallet.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, draft.ErrEmptyDraft):
		response.BadRequest(w, "Draft has no data")
	case errors.Is(err, ErrPublishInProgress):
		response.Conflict(w, "Draft is already being published")
	case errors.Is(err, ErrKeyConflict):
		response.Conflict(w, "Idempotency-Key was already used for another draft")
	default:
		errorhandler.Internal(ctx, w, err, "Publish failed",
			"userId", userID.String(), "draftId", draftID.String())
	}
}
