package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

// Notifier is told about committed balance changes.
type Notifier interface {
	BalanceChanged(ctx context.Context, userID uuid.UUID, balance decimal.Decimal)
}

type Service struct {
	ledger   *Ledger
	notifier Notifier
}

// NewService creates the wallet service. notifier may be nil.
func NewService(ledger *Ledger, notifier Notifier) *Service {
	return &Service{ledger: ledger, notifier: notifier}
}

func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.ledger.Balance(ctx, userID)
}

func (s *Service) Transactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]Transaction, int, error) {
	return s.ledger.ListTransactions(ctx, userID, f)
}

func (s *Service) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata) (*Result, error) {
	res, err := s.ledger.Credit(ctx, userID, amount, reason, meta)
	if err != nil {
		logger.LogWarn(ctx, "wallet credit failed", "user_id", userID.String(), "amount", amount.String(), "error", err.Error())
		return nil, err
	}
	logger.LogInfo(ctx, "wallet credited", "user_id", userID.String(), "amount", amount.String(), "balance", res.NewBalance.String())
	s.NotifyBalance(ctx, userID, res.NewBalance)
	return res, nil
}

func (s *Service) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata) (*Result, error) {
	res, err := s.ledger.Debit(ctx, userID, amount, reason, meta)
	if err != nil {
		var insufficient *InsufficientFundsError
		if errors.As(err, &insufficient) {
			logger.LogWarn(ctx, "wallet debit rejected", "user_id", userID.String(),
				"balance", insufficient.Balance.String(), "required", insufficient.Required.String())
		}
		return nil, err
	}
	logger.LogInfo(ctx, "wallet debited", "user_id", userID.String(), "amount", amount.String(), "balance", res.NewBalance.String())
	s.NotifyBalance(ctx, userID, res.NewBalance)
	return res, nil
}

// NotifyBalance forwards a committed balance to the notifier, if any.
func (s *Service) NotifyBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) {
	if s.notifier == nil {
		return
	}
	s.notifier.BalanceChanged(ctx, userID, balance)
}
