package pghostel

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

const table = "pg_colive_hostels"

const selectColumns = `
	id, draft_id, user_id, property_name, gender_allowed, city, locality,
	lat, lng, details, publish_status, verification_status, verification_notes,
	verified_by, verified_at, published_at, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) upsertTx(ctx context.Context, tx *sqlx.Tx, userID, draftID uuid.UUID, f fields) (*Hostel, bool, error) {
	var existing uuid.UUID
	err := tx.GetContext(ctx, &existing, `SELECT id FROM pg_colive_hostels WHERE draft_id = $1 FOR UPDATE`, draftID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var h Hostel
		err = tx.GetContext(ctx, &h, `
			INSERT INTO pg_colive_hostels (
				draft_id, user_id, property_name, gender_allowed, city, locality,
				lat, lng, location, details,
				publish_status, verification_status, published_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7::float8, $8::float8, `+listing.PointSQL(7, 8)+`, $9,
				'PUBLISHED', 'PENDING', now())
			RETURNING `+selectColumns,
			draftID, userID, f.PropertyName, f.GenderAllowed, f.City, f.Locality, f.Lat, f.Lng, f.Details)
		if err != nil {
			return nil, false, listing.MapPQError(err)
		}
		return &h, false, nil
	case err != nil:
		return nil, false, err
	}

	var h Hostel
	err = tx.GetContext(ctx, &h, `
		UPDATE pg_colive_hostels SET
			property_name = $2, gender_allowed = $3, city = $4, locality = $5,
			lat = $6::float8, lng = $7::float8, location = `+listing.PointSQL(6, 7)+`,
			details = $8,
			verification_status = `+listing.ReviewOnUpdateSQL+`,
			deleted_at = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+selectColumns,
		existing, f.PropertyName, f.GenderAllowed, f.City, f.Locality, f.Lat, f.Lng, f.Details)
	if err != nil {
		return nil, false, err
	}
	return &h, true, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Hostel, error) {
	var h Hostel
	err := r.db.GetContext(ctx, &h, `SELECT `+selectColumns+` FROM pg_colive_hostels WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Hostel, error) {
	items := []Hostel{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+selectColumns+` FROM pg_colive_hostels
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, userID)
	return items, err
}

func (r *Repository) SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyHostel, error) {
	items := []NearbyHostel{}
	err := r.db.SelectContext(ctx, &items, listing.NearbySQL(table, selectColumns), q.Lat, q.Lng, q.RadiusKm, q.Limit)
	return items, err
}

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return listing.SoftDelete(ctx, r.db, table, id, userID)
}
