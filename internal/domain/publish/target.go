package publish

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
)

// Outcome is what a target reports after writing its entity.
type Outcome struct {
	EntityID uuid.UUID
	IsUpdate bool
	Preview  Preview
}

// Target turns a draft of one type into its published entity. Upsert runs
// on the publish transaction and must look the entity up by draft id, so
// republishing keeps the entity id.
type Target interface {
	DraftType() draft.Type
	// EntityType is the upper-case type stored on the draft and used for
	// the debit metadata, e.g. "PROPERTY".
	EntityType() string
	// EntityKey names the entity in responses and metadata, e.g. "property"
	// gives "propertyId".
	EntityKey() string
	// Label is the human name used in the ledger reason.
	Label() string
	Upsert(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d *draft.Draft) (*Outcome, error)
}
