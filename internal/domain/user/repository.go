package user

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

const userColumns = `
	id, phone, email, first_name, last_name, name_initial, role, user_status,
	profile_completed, verification_status, verification_notes, verified_by,
	verified_at, last_login_at, created_at, updated_at`

// Repository defines user data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindOrCreateByPhone(ctx context.Context, phone string) (*User, bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdateProfile(ctx context.Context, id uuid.UUID, p Profile, initials string) (*User, error)
	CompleteOnboardingTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, p Profile, initials string) (*User, error)
	List(ctx context.Context, f Filter, page, limit int) ([]User, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) (*User, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM platform_users WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreateByPhone returns the user owning phone, creating a PENDING
// partner when none exists. The flag reports whether a row was created.
func (r *repository) FindOrCreateByPhone(ctx context.Context, phone string) (*User, bool, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		INSERT INTO platform_users (phone, user_status)
		VALUES ($1, 'PENDING')
		ON CONFLICT (phone) DO NOTHING
		RETURNING `+userColumns, phone)
	if err == nil {
		return &u, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}

	err = r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM platform_users WHERE phone = $1 AND deleted_at IS NULL`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrUserNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return &u, false, nil
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE platform_users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, p Profile, initials string) (*User, error) {
	return updateProfile(ctx, r.db, id, p, initials, "")
}

// CompleteOnboardingTx saves the profile and activates the account. It
// fails with ErrAlreadyOnboarded on a second call.
func (r *repository) CompleteOnboardingTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, p Profile, initials string) (*User, error) {
	var completed bool
	err := tx.GetContext(ctx, &completed, `SELECT profile_completed FROM platform_users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrAlreadyOnboarded
	}
	return updateProfile(ctx, tx, id, p, initials,
		`, profile_completed = TRUE, user_status = 'ACTIVE', verification_status = 'PENDING'`)
}

func updateProfile(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID, p Profile, initials, extra string) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, q, &u, `
		UPDATE platform_users SET
			first_name = $2, last_name = $3, email = COALESCE($4::text, email), name_initial = $5,
			updated_at = now()`+extra+`
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns, id, p.FirstName, p.LastName, p.Email, initials)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, f Filter, page, limit int) ([]User, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIndex := 1

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("user_status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM platform_users "+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM platform_users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, argIndex, argIndex+1)
	args = append(args, limit, response.Offset(page, limit))

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		UPDATE platform_users SET user_status = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateVerification(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		UPDATE platform_users SET
			verification_status = $2, verification_notes = NULLIF($3::text, ''),
			verified_by = $4, verified_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+userColumns, id, status, notes, verifiedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
