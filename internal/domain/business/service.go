package business

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

// Crediter credits a wallet inside an open transaction.
type Crediter interface {
	CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal, reason string, meta wallet.Metadata, referenceID string) (*wallet.Result, error)
}

const bonusSavepoint = "business_bonus"

// Service handles partner business profiles
type Service struct {
	db       *sqlx.DB
	repo     Repository
	credits  Crediter
	notifier wallet.Notifier
	bonus    decimal.Decimal
}

// NewService creates the business service. A zero bonus disables the
// onboarding credit; notifier may be nil.
func NewService(db *sqlx.DB, repo Repository, credits Crediter, notifier wallet.Notifier, bonus decimal.Decimal) *Service {
	return &Service{db: db, repo: repo, credits: credits, notifier: notifier, bonus: bonus}
}

// Save creates or replaces the caller's business and sends it back for
// verification.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error) {
	b, err := s.repo.Upsert(ctx, userID, req.details())
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "Business profile saved", "user_id", userID.String(), "business_id", b.ID.String())
	return b, nil
}

func (s *Service) Mine(ctx context.Context, userID uuid.UUID) (*Business, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Business, error) {
	return s.repo.GetByID(ctx, id)
}

// CompleteOnboarding saves the business and credits the onboarding bonus in
// the same transaction. A failed credit is rolled back to a savepoint and
// logged; onboarding still succeeds.
func (s *Service) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error) {
	d := req.details()

	var (
		b      *Business
		credit *wallet.Result
	)
	err := database.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		b, err = s.repo.CompleteOnboardingTx(ctx, tx, userID, d)
		if err != nil {
			return err
		}
		credit, err = s.creditBonus(ctx, tx, userID, d.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Business onboarding completed",
		"user_id", userID.String(), "business_id", b.ID.String(), "bonus_credited", credit != nil)
	if credit != nil && s.notifier != nil {
		s.notifier.BalanceChanged(ctx, userID, credit.NewBalance)
	}
	return b, nil
}

func (s *Service) creditBonus(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, name string) (*wallet.Result, error) {
	if s.credits == nil || !s.bonus.IsPositive() {
		return nil, nil
	}
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+bonusSavepoint); err != nil {
		return nil, err
	}

	res, err := s.credits.CreditTx(ctx, tx, userID, s.bonus, "Welcome bonus for completing business onboarding", wallet.Metadata{
		"type":         "ONBOARDING_BONUS",
		"workflowType": "partnerBusinessOnboarding",
		"businessName": name,
	}, "business-welcome:"+userID.String())
	if err != nil {
		logger.LogError(ctx, err, "Business onboarding bonus failed", "user_id", userID.String())
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+bonusSavepoint); rbErr != nil {
			return nil, rbErr
		}
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+bonusSavepoint); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, f Filter, page, limit int) ([]Business, int, error) {
	return s.repo.List(ctx, f, page, limit)
}

func (s *Service) UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*Business, error) {
	switch status {
	case VerificationPending, VerificationApproved, VerificationRejected:
	default:
		return nil, ErrInvalidVerification
	}
	b, err := s.repo.UpdateVerification(ctx, id, status, adminID, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "Business verification updated", "business_id", id.String(), "status", status, "verified_by", adminID.String())
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.LogInfo(ctx, "Business deleted", "business_id", id.String())
	return nil
}
