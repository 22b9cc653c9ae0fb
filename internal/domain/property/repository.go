package property

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

const table = "properties"

const selectColumns = `
	id, draft_id, user_id, property_type, listing_type, title, city, locality,
	lat, lng, property_details, publish_status, verification_status,
	verification_notes, verified_by, verified_at, published_at, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// upsertTx updates the property published from draftID or creates it.
// The details document is replaced with the current draft steps.
func (r *Repository) upsertTx(ctx context.Context, tx *sqlx.Tx, userID, draftID uuid.UUID, f fields) (*Property, bool, error) {
	var existing uuid.UUID
	err := tx.GetContext(ctx, &existing, `SELECT id FROM properties WHERE draft_id = $1 FOR UPDATE`, draftID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var p Property
		err = tx.GetContext(ctx, &p, `
			INSERT INTO properties (
				draft_id, user_id, property_type, listing_type, title, city, locality,
				lat, lng, location, property_details,
				publish_status, verification_status, published_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::float8, $9::float8, `+listing.PointSQL(8, 9)+`, $10,
				'PUBLISHED', 'PENDING', now())
			RETURNING `+selectColumns,
			draftID, userID, f.PropertyType, f.ListingType, f.Title, f.City, f.Locality, f.Lat, f.Lng, f.Details)
		if err != nil {
			return nil, false, listing.MapPQError(err)
		}
		return &p, false, nil
	case err != nil:
		return nil, false, err
	}

	var p Property
	err = tx.GetContext(ctx, &p, `
		UPDATE properties SET
			property_type = $2, listing_type = $3, title = $4, city = $5, locality = $6,
			lat = $7::float8, lng = $8::float8, location = `+listing.PointSQL(7, 8)+`,
			property_details = $9,
			verification_status = `+listing.ReviewOnUpdateSQL+`,
			deleted_at = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+selectColumns,
		existing, f.PropertyType, f.ListingType, f.Title, f.City, f.Locality, f.Lat, f.Lng, f.Details)
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var p Property
	err := r.db.GetContext(ctx, &p, `SELECT `+selectColumns+` FROM properties WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, listing.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Property, error) {
	items := []Property{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+selectColumns+` FROM properties
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`, userID)
	return items, err
}

func (r *Repository) SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProperty, error) {
	items := []NearbyProperty{}
	err := r.db.SelectContext(ctx, &items, listing.NearbySQL(table, selectColumns), q.Lat, q.Lng, q.RadiusKm, q.Limit)
	return items, err
}

func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return listing.SoftDelete(ctx, r.db, table, id, userID)
}
