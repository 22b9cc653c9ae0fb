package developer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

const table = "developers"

const selectColumns = `
	id, draft_id, user_id, developer_name, developer_type, description,
	established_year, website, subscribe_for_developer_page, details,
	publish_status, verification_status, verification_notes, verified_by,
	verified_at, published_at, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// upsertTx updates the developer published from draftID or creates it.
func (r *Repository) upsertTx(ctx context.Context, tx *sqlx.Tx, userID, draftID uuid.UUID, f fields) (*Developer, bool, error) {
	var existing uuid.UUID
	err := tx.GetContext(ctx, &existing, `SELECT id FROM developers WHERE draft_id = $1 FOR UPDATE`, draftID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var d Developer
		err = tx.GetContext(ctx, &d, `
			INSERT INTO developers (
				draft_id, user_id, developer_name, developer_type, description,
				established_year, website, subscribe_for_developer_page, details,
				publish_status, verification_status, published_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'PUBLISHED', 'PENDING', now())
			RETURNING `+selectColumns,
			draftID, userID, f.DeveloperName, f.DeveloperType, f.Description,
			f.EstablishedYear, f.Website, f.SubscribeForDeveloperPage, f.Details)
		if err != nil {
			return nil, false, listing.MapPQError(err)
		}
		return &d, false, nil
	case err != nil:
		return nil, false, err
	}

	var d Developer
	err = tx.GetContext(ctx, &d, `
		UPDATE developers SET
			developer_name = $2, developer_type = $3, description = $4,
			established_year = $5, website = $6, subscribe_for_developer_page = $7,
			details = $8,
			verification_status = `+listing.ReviewOnUpdateSQL+`,
			deleted_at = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+selectColumns,
		existing, f.DeveloperName, f.DeveloperType, f.Description,
		f.EstablishedYear, f.Website, f.SubscribeForDeveloperPage, f.Details)
	if err != nil {
		return nil, false, err
	}
	return &d, true, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Developer, error) {
	var d Developer
	err := r.db.GetContext(ctx, &d, `SELECT `+selectColumns+` FROM developers WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Developer, error) {
	items := []Developer{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+selectColumns+` FROM developers
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, userID)
	return items, err
}

func (r *Repository) List(ctx context.Context, filter Filter, page, limit int) ([]Developer, int, error) {
	status := filter.PublishStatus
	if status == "" {
		status = listing.PublishPublished
	}

	conditions := []string{"deleted_at IS NULL", "publish_status = $1"}
	args := []interface{}{status}
	argIndex := 2

	if filter.DeveloperType != "" {
		conditions = append(conditions, fmt.Sprintf("developer_type = $%d", argIndex))
		args = append(args, filter.DeveloperType)
		argIndex++
	}
	if filter.VerificationStatus != "" {
		conditions = append(conditions, fmt.Sprintf("verification_status = $%d", argIndex))
		args = append(args, filter.VerificationStatus)
		argIndex++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(developer_name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM developers "+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM developers %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		selectColumns, where, argIndex, argIndex+1)
	args = append(args, limit, response.Offset(page, limit))

	items := []Developer{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdatePublishStatus sets the publish status; PUBLISHED also stamps
// published_at. Non-empty notes replace the verification notes.
func (r *Repository) UpdatePublishStatus(ctx context.Context, id uuid.UUID, status, notes string) (*Developer, error) {
	var d Developer
	err := r.db.GetContext(ctx, &d, `
		UPDATE developers SET
			publish_status = $2,
			published_at = CASE WHEN $2 = 'PUBLISHED' THEN now() ELSE published_at END,
			verification_notes = COALESCE(NULLIF($3::text, ''), verification_notes),
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+selectColumns, id, status, notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return listing.SoftDelete(ctx, r.db, table, id, userID)
}
