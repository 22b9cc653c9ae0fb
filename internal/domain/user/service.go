package user

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

const welcomeSavepoint = "welcome_bonus"

type Service struct {
	db           *sqlx.DB
	repo         Repository
	credits      Crediter
	notifier     wallet.Notifier
	welcomeBonus decimal.Decimal
}

// NewService creates the user service. A zero welcomeBonus disables the
// onboarding credit; notifier may be nil.
func NewService(db *sqlx.DB, repo Repository, credits Crediter, notifier wallet.Notifier, welcomeBonus decimal.Decimal) *Service {
	return &Service{db: db, repo: repo, credits: credits, notifier: notifier, welcomeBonus: welcomeBonus}
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	p := req.profile()
	return s.repo.UpdateProfile(ctx, id, p, Initials(p.FirstName, p.LastName))
}

// CompleteOnboarding activates the account and credits the welcome bonus in
// the same transaction. A failed credit is rolled back to a savepoint and
// logged; onboarding still succeeds.
func (s *Service) CompleteOnboarding(ctx context.Context, id uuid.UUID, req *OnboardingRequest) (*User, error) {
	p := req.profile()

	var (
		u      *User
		credit *wallet.Result
	)
	err := database.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		u, err = s.repo.CompleteOnboardingTx(ctx, tx, id, p, Initials(p.FirstName, p.LastName))
		if err != nil {
			return err
		}
		credit, err = s.creditWelcomeBonus(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.LogInfo(ctx, "Partner onboarding completed", "user_id", id.String(), "bonus_credited", credit != nil)
	if credit != nil && s.notifier != nil {
		s.notifier.BalanceChanged(ctx, id, credit.NewBalance)
	}
	return u, nil
}

// creditWelcomeBonus returns a nil result when the credit was skipped or
// rolled back. The error is only set when the savepoint itself fails.
func (s *Service) creditWelcomeBonus(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*wallet.Result, error) {
	if s.credits == nil || !s.welcomeBonus.IsPositive() {
		return nil, nil
	}
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+welcomeSavepoint); err != nil {
		return nil, err
	}

	res, err := s.credits.CreditTx(ctx, tx, id, s.welcomeBonus, "Welcome bonus", wallet.Metadata{
		"type":         "ONBOARDING_BONUS",
		"workflowType": "partnerUserOnboarding",
	}, "welcome:"+id.String())
	if err != nil {
		logger.LogError(ctx, err, "Welcome bonus credit failed", "user_id", id.String())
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+welcomeSavepoint); rbErr != nil {
			return nil, rbErr
		}
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+welcomeSavepoint); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, f Filter, page, limit int) ([]User, int, error) {
	return s.repo.List(ctx, f, page, limit)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error) {
	switch status {
	case StatusPending, StatusActive, StatusSuspended:
	default:
		return nil, ErrInvalidStatus
	}
	u, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "User status updated", "user_id", id.String(), "status", string(status))
	return u, nil
}

func (s *Service) UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*User, error) {
	switch status {
	case VerificationApproved, VerificationRejected, VerificationPending:
	default:
		return nil, ErrInvalidVerification
	}
	u, err := s.repo.UpdateVerification(ctx, id, status, adminID, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "User verification updated", "user_id", id.String(), "status", status, "verified_by", adminID.String())
	return u, nil
}
