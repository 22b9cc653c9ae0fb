package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

// Ledger owns the wallets and wallet_transactions tables. Every balance
// change goes through apply, which locks the wallet row and appends exactly
// one transaction row in the same database transaction.
type Ledger struct {
	db *sqlx.DB
}

func NewLedger(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// Debit removes amount from the user's wallet in its own transaction.
func (l *Ledger) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata) (*Result, error) {
	var res *Result
	err := database.InTx(ctx, l.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = l.DebitTx(ctx, tx, userID, amount, reason, meta, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DebitTx removes amount inside the caller's transaction. On insufficient
// funds nothing is written and an *InsufficientFundsError is returned.
func (l *Ledger) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata, referenceID string) (*Result, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, tx, userID, amount.Neg(), DirectionDebit, reason, meta, referenceID)
}

// Credit adds amount to the user's wallet in its own transaction.
func (l *Ledger) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata) (*Result, error) {
	var res *Result
	err := database.InTx(ctx, l.db, func(tx *sqlx.Tx) error {
		var err error
		res, err = l.CreditTx(ctx, tx, userID, amount, reason, meta, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CreditTx adds amount inside the caller's transaction. The wallet row is
// created on first credit.
func (l *Ledger) CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal, reason string, meta Metadata, referenceID string) (*Result, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return l.apply(ctx, tx, userID, amount, DirectionCredit, reason, meta, referenceID)
}

func (l *Ledger) apply(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, delta decimal.Decimal, dir Direction, reason string, meta Metadata, referenceID string) (*Result, error) {
	if err := ensureUser(ctx, tx, userID); err != nil {
		return nil, err
	}

	balance, err := lockWallet(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	next := balance.Add(delta)
	if next.IsNegative() {
		return nil, &InsufficientFundsError{Balance: balance, Required: delta.Abs()}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = $1, updated_at = now() WHERE user_id = $2`,
		next, userID); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	var ref interface{}
	if referenceID != "" {
		ref = referenceID
	}
	if meta == nil {
		meta = Metadata{}
	}

	var txID uuid.UUID
	err = tx.GetContext(ctx, &txID, `
		INSERT INTO wallet_transactions (user_id, amount, direction, balance_after, reason, metadata, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, userID, delta, string(dir), next, reason, meta, ref)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	msg := "Wallet credited successfully"
	if dir == DirectionDebit {
		msg = "Wallet debited successfully"
	}
	return &Result{Success: true, NewBalance: next, TransactionID: txID, Message: msg}, nil
}

func ensureUser(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	var exists bool
	err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM platform_users WHERE id = $1 AND deleted_at IS NULL)`, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func lockWallet(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (decimal.Decimal, error) {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE`, userID)
	return balance, err
}

// Balance returns the current balance. A user without a wallet row has zero.
func (l *Ledger) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.db.GetContext(ctx, &balance, `SELECT balance FROM wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ListTransactions returns the newest transactions first with the total
// count for pagination.
func (l *Ledger) ListTransactions(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]Transaction, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if f.Direction != "" {
		args = append(args, string(f.Direction))
		where += fmt.Sprintf(" AND direction = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		where += fmt.Sprintf(" AND metadata->>'type' = $%d", len(args))
	}

	var total int
	if err := l.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM wallet_transactions `+where, args...); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = response.DefaultLimit
	}
	args = append(args, limit, response.Offset(f.Page, limit))
	query := fmt.Sprintf(`
		SELECT id, user_id, amount, direction, balance_after, reason, metadata, reference_id, created_at
		FROM wallet_transactions %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	txs := []Transaction{}
	if err := l.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
