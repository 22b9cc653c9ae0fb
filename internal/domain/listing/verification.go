package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

// DraftResetter returns the source draft of a rejected listing to DRAFT.
type DraftResetter interface {
	ResetToDraftTx(ctx context.Context, tx *sqlx.Tx, publishedType string, publishedID uuid.UUID) error
}

// Verifier applies admin review decisions to one listing table.
type Verifier struct {
	db         *sqlx.DB
	drafts     DraftResetter
	table      string
	entityType string
}

// NewVerifier binds a verifier to a table. table is a trusted identifier,
// never request input.
func NewVerifier(db *sqlx.DB, drafts DraftResetter, table, entityType string) *Verifier {
	return &Verifier{db: db, drafts: drafts, table: table, entityType: entityType}
}

// Update records the decision. REJECTED also reopens the source draft.
func (v *Verifier) Update(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error {
	if !ValidVerificationStatus(status) {
		return ErrInvalidStatus
	}

	err := database.InTx(ctx, v.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`
			UPDATE %s
			SET verification_status = $2, verification_notes = NULLIF($3::text, ''),
			    verified_by = $4, verified_at = now(), updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL`, v.table),
			id, status, notes, verifiedBy)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		if status == VerificationRejected {
			return v.drafts.ResetToDraftTx(ctx, tx, v.entityType, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.LogInfo(ctx, "Listing verification updated",
		"entity_type", v.entityType, "entity_id", id.String(), "status", status, "verified_by", verifiedBy.String())
	return nil
}

// SoftDelete hides a listing owned by userID and forgets its publish
// replays, so republishing the draft revives the row.
func SoftDelete(ctx context.Context, db *sqlx.DB, table string, id, userID uuid.UUID) error {
	return database.InTx(ctx, db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`
			UPDATE %s SET deleted_at = now(), updated_at = now()
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, table), id, userID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM publish_requests WHERE entity_id = $1`, id)
		return err
	})
}
