package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/pkg/database/dbtest"
)

type balanceRecorder struct {
	balances []decimal.Decimal
}

func (b *balanceRecorder) BalanceChanged(_ context.Context, _ uuid.UUID, balance decimal.Decimal) {
	b.balances = append(b.balances, balance)
}

// brokenCrediter aborts the surrounding transaction before failing.
type brokenCrediter struct{}

func (brokenCrediter) CreditTx(ctx context.Context, tx *sqlx.Tx, _ uuid.UUID, _ decimal.Decimal, _ string, _ wallet.Metadata, _ string) (*wallet.Result, error) {
	_, err := tx.ExecContext(ctx, `SELECT 1 FROM table_that_does_not_exist`)
	if err == nil {
		err = errors.New("credit failed")
	}
	return nil, err
}

func TestFindOrCreateByPhone(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	phone := "+91" + uuid.NewString()[:10]

	u, created, err := repo.FindOrCreateByPhone(ctx, phone)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, StatusPending, u.Status)
	assert.Equal(t, "partner", u.Role)

	again, created, err := repo.FindOrCreateByPhone(ctx, phone)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
}

func TestCompleteOnboardingCreditsWelcomeBonus(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	id := dbtest.CreateUser(t, db)

	ledger := wallet.NewLedger(db)
	notifier := &balanceRecorder{}
	svc := NewService(db, NewRepository(db), ledger, notifier, decimal.NewFromInt(200))

	u, err := svc.CompleteOnboarding(ctx, id, &OnboardingRequest{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)
	assert.True(t, u.ProfileCompleted)
	assert.Equal(t, StatusActive, u.Status)
	assert.Equal(t, VerificationPending, u.VerificationStatus)
	assert.Equal(t, "AR", u.NameInitial)

	balance, err := ledger.Balance(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(balance), balance.String())
	require.Len(t, notifier.balances, 1)

	txs, total, err := ledger.ListTransactions(ctx, id, wallet.TransactionFilter{Type: "ONBOARDING_BONUS"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "partnerUserOnboarding", txs[0].Metadata["workflowType"])

	_, err = svc.CompleteOnboarding(ctx, id, &OnboardingRequest{FirstName: "Asha", LastName: "Rao"})
	assert.ErrorIs(t, err, ErrAlreadyOnboarded)
}

func TestCompleteOnboardingSurvivesCreditFailure(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	id := dbtest.CreateUser(t, db)

	notifier := &balanceRecorder{}
	svc := NewService(db, NewRepository(db), brokenCrediter{}, notifier, decimal.NewFromInt(200))

	u, err := svc.CompleteOnboarding(ctx, id, &OnboardingRequest{FirstName: "Vikram", LastName: "Singh"})
	require.NoError(t, err)
	assert.True(t, u.ProfileCompleted)
	assert.Empty(t, notifier.balances)

	stored, err := svc.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, stored.Status)
	assert.Equal(t, "VS", stored.NameInitial)
}

func TestAdminStatusAndVerification(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	id := dbtest.CreateUser(t, db)
	adminID := dbtest.CreateUser(t, db)
	svc := NewService(db, NewRepository(db), nil, nil, decimal.Zero)

	u, err := svc.UpdateStatus(ctx, id, StatusSuspended)
	require.NoError(t, err)
	assert.True(t, u.IsSuspended())

	_, err = svc.UpdateStatus(ctx, id, "DELETED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	u, err = svc.UpdateVerification(ctx, id, VerificationRejected, adminID, " Blurry ID ")
	require.NoError(t, err)
	assert.Equal(t, VerificationRejected, u.VerificationStatus)
	require.NotNil(t, u.VerificationNotes)
	assert.Equal(t, "Blurry ID", *u.VerificationNotes)

	_, err = svc.UpdateVerification(ctx, uuid.New(), VerificationApproved, adminID, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
