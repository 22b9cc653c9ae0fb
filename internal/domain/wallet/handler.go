package wallet

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/errorhandler"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

// Reader is the read side of the wallet used by the HTTP handler.
type Reader interface {
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Transactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]Transaction, int, error)
}

type Handler struct {
	svc Reader
}

func NewHandler(svc Reader) *Handler {
	return &Handler{svc: svc}
}

// Balance handles GET /wallet/balance
// @Summary Current wallet balance
// @Tags Wallet
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /wallet/balance [get]
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to load wallet balance", "user_id", userID.String())
		return
	}

	response.OK(w, map[string]interface{}{"balance": balance})
}

// Transactions handles GET /wallet/transactions
// @Summary Wallet transaction history
// @Tags Wallet
// @Security BearerAuth
// @Param direction query string false "CREDIT or DEBIT"
// @Param type query string false "metadata type, e.g. PROPERTY_PUBLISH"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Router /wallet/transactions [get]
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	page, limit := response.ParsePagination(q)
	filter := TransactionFilter{Type: q.Get("type"), Page: page, Limit: limit}
	switch d := Direction(strings.ToUpper(q.Get("direction"))); d {
	case "":
	case DirectionCredit, DirectionDebit:
		filter.Direction = d
	default:
		response.BadRequest(w, "direction must be CREDIT or DEBIT")
		return
	}

	txs, total, err := h.svc.Transactions(r.Context(), userID, filter)
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to list wallet transactions", "user_id", userID.String())
		return
	}

	response.WithMeta(w, txs, response.NewMeta(total, page, limit))
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/balance", h.Balance)
	r.Get("/transactions", h.Transactions)
	return r
}
