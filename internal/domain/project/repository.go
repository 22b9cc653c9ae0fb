package project

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

const table = "projects"

const selectColumns = `
	id, draft_id, user_id, project_name, status, lat, lng, project_details,
	publish_status, verification_status, verification_notes, verified_by,
	verified_at, published_at, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// upsertTx updates the project published from draftID or creates it.
// Updated details are merged into the stored document.
func (r *Repository) upsertTx(ctx context.Context, tx *sqlx.Tx, userID, draftID uuid.UUID, f fields) (*Project, bool, error) {
	var existing uuid.UUID
	err := tx.GetContext(ctx, &existing, `SELECT id FROM projects WHERE draft_id = $1 FOR UPDATE`, draftID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var p Project
		err = tx.GetContext(ctx, &p, `
			INSERT INTO projects (
				draft_id, user_id, project_name, status, lat, lng, location, project_details,
				publish_status, verification_status, published_at
			) VALUES ($1, $2, $3, $4, $5::float8, $6::float8, `+listing.PointSQL(5, 6)+`, $7, 'PUBLISHED', 'PENDING', now())
			RETURNING `+selectColumns,
			draftID, userID, f.ProjectName, defaultStatus, f.Lat, f.Lng, f.Details)
		if err != nil {
			return nil, false, listing.MapPQError(err)
		}
		return &p, false, nil
	case err != nil:
		return nil, false, err
	}

	var p Project
	err = tx.GetContext(ctx, &p, `
		UPDATE projects SET
			project_name = $2,
			lat = $3::float8, lng = $4::float8, location = `+listing.PointSQL(3, 4)+`,
			project_details = project_details || $5::jsonb,
			verification_status = `+listing.ReviewOnUpdateSQL+`,
			deleted_at = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+selectColumns,
		existing, f.ProjectName, f.Lat, f.Lng, f.Details)
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, `SELECT `+selectColumns+` FROM projects WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	items := []Project{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+selectColumns+` FROM projects
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, userID)
	return items, err
}

// List returns published projects. City matches case-insensitively.
func (r *Repository) List(ctx context.Context, filter Filter, page, limit int) ([]Project, int, error) {
	conditions := []string{"deleted_at IS NULL", "publish_status = 'PUBLISHED'"}
	args := []interface{}{}
	argIndex := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(project_details->>'city') = LOWER($%d)", argIndex))
		args = append(args, filter.City)
		argIndex++
	}
	if filter.ProjectType != "" {
		conditions = append(conditions, fmt.Sprintf("project_details->>'projectType' = $%d", argIndex))
		args = append(args, filter.ProjectType)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(project_name ILIKE $%d OR project_details->>'description' ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM projects "+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM projects %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		selectColumns, where, argIndex, argIndex+1)
	args = append(args, limit, response.Offset(page, limit))

	items := []Project{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProject, error) {
	items := []NearbyProject{}
	err := r.db.SelectContext(ctx, &items, listing.NearbySQL(table, selectColumns), q.Lat, q.Lng, q.RadiusKm, q.Limit)
	return items, err
}

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return listing.SoftDelete(ctx, r.db, table, id, userID)
}
