package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

const businessColumns = `
	id, user_id, business_name, registration_number, business_address,
	business_email, business_phone, business_type, business_status,
	verification_status, verification_notes, verified_by, verified_at,
	onboarded_at, created_at, updated_at`

// Repository defines business data access
type Repository interface {
	Upsert(ctx context.Context, userID uuid.UUID, d Details) (*Business, error)
	CompleteOnboardingTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d Details) (*Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Business, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Business, error)
	List(ctx context.Context, f Filter, page, limit int) ([]Business, int, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) (*Business, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates business repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, userID uuid.UUID, d Details) (*Business, error) {
	return upsert(ctx, r.db, userID, d, false)
}

// CompleteOnboardingTx saves the business and stamps onboarded_at. The
// owner row is locked first so concurrent calls serialize; a second call
// fails with ErrAlreadyOnboarded.
func (r *repository) CompleteOnboardingTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d Details) (*Business, error) {
	var locked uuid.UUID
	err := tx.GetContext(ctx, &locked, `SELECT id FROM platform_users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var onboarded bool
	err = tx.GetContext(ctx, &onboarded, `SELECT onboarded_at IS NOT NULL FROM partner_businesses WHERE user_id = $1`, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if onboarded {
		return nil, ErrAlreadyOnboarded
	}
	return upsert(ctx, tx, userID, d, true)
}

// upsert resets verification: edited details go back into review.
func upsert(ctx context.Context, q sqlx.QueryerContext, userID uuid.UUID, d Details, onboard bool) (*Business, error) {
	var b Business
	err := sqlx.GetContext(ctx, q, &b, `
		INSERT INTO partner_businesses (
			user_id, business_name, registration_number, business_address,
			business_email, business_phone, onboarded_at
		) VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $7::boolean THEN now() END)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			registration_number = EXCLUDED.registration_number,
			business_address = EXCLUDED.business_address,
			business_email = EXCLUDED.business_email,
			business_phone = EXCLUDED.business_phone,
			business_status = 'PENDING_VERIFICATION',
			verification_status = 'PENDING',
			verification_notes = NULL, verified_by = NULL, verified_at = NULL,
			onboarded_at = COALESCE(partner_businesses.onboarded_at, EXCLUDED.onboarded_at),
			updated_at = now()
		RETURNING `+businessColumns,
		userID, d.Name, d.RegistrationNumber, d.Address, d.Email, d.Phone, onboard)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("upsert business: %w", err)
	}
	return &b, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Business, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Business, error) {
	return r.get(ctx, `user_id = $1`, userID)
}

func (r *repository) get(ctx context.Context, where string, arg interface{}) (*Business, error) {
	var b Business
	err := r.db.GetContext(ctx, &b, `SELECT `+businessColumns+` FROM partner_businesses WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, f Filter, page, limit int) ([]Business, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIndex := 1

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("business_status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}
	if f.VerificationStatus != "" {
		conditions = append(conditions, fmt.Sprintf("verification_status = $%d", argIndex))
		args = append(args, f.VerificationStatus)
		argIndex++
	}
	if f.Type != "" {
		conditions = append(conditions, fmt.Sprintf("business_type = $%d", argIndex))
		args = append(args, f.Type)
		argIndex++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(business_name ILIKE $%d OR business_email ILIKE $%d OR registration_number ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM partner_businesses "+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM partner_businesses %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		businessColumns, where, argIndex, argIndex+1)
	args = append(args, limit, response.Offset(page, limit))

	businesses := []Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, 0, err
	}
	return businesses, total, nil
}

// UpdateVerification records an admin decision. Approval activates the
// business.
func (r *repository) UpdateVerification(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) (*Business, error) {
	var b Business
	err := r.db.GetContext(ctx, &b, `
		UPDATE partner_businesses SET
			verification_status = $2,
			verification_notes = NULLIF($3::text, ''),
			verified_by = CASE WHEN $2::text = 'APPROVED' THEN $4::uuid ELSE verified_by END,
			verified_at = CASE WHEN $2::text = 'APPROVED' THEN now() ELSE verified_at END,
			business_status = CASE WHEN $2::text = 'APPROVED' THEN 'ACTIVE' ELSE business_status END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+businessColumns, id, status, notes, verifiedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM partner_businesses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBusinessNotFound
	}
	return nil
}
