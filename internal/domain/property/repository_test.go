package property

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/database/dbtest"
)

func TestPublishRejectRepublish(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	userID := dbtest.CreateUser(t, db)
	adminID := dbtest.CreateUser(t, db)

	drafts := draft.NewStore(db)
	repo := NewRepository(db)
	svc := NewService(db, repo, drafts)
	target := NewTarget(repo)

	d, err := drafts.Create(ctx, userID, draft.TypeProperty, propertyDraft().Data)
	require.NoError(t, err)

	upsert := func() *Property {
		var id uuid.UUID
		require.NoError(t, database.InTx(ctx, db, func(tx *sqlx.Tx) error {
			out, err := target.Upsert(ctx, tx, userID, d)
			if err != nil {
				return err
			}
			id = out.EntityID
			return drafts.MarkPublishedTx(ctx, tx, d.ID, out.EntityID, EntityType)
		}))
		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		return p
	}

	first := upsert()
	assert.Equal(t, listing.VerificationPending, first.VerificationStatus)
	assert.Equal(t, "Bengaluru", *first.City)

	require.NoError(t, svc.UpdateVerificationStatus(ctx, first.ID, listing.VerificationRejected, adminID, "Wrong pin"))
	rejected, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.VerificationRejected, rejected.VerificationStatus)
	require.NotNil(t, rejected.VerificationNotes)
	assert.Equal(t, "Wrong pin", *rejected.VerificationNotes)

	d.Data["locationSelection"] = json.RawMessage(`{"city":"Bengaluru","locality":"HAL 2nd Stage","addressText":"100ft Road","coordinates":{"lat":12.971,"lng":77.641}}`)
	second := upsert()
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, listing.VerificationPending, second.VerificationStatus)
	assert.Equal(t, "HAL 2nd Stage", *second.Locality)

	hits, err := svc.SearchNearby(ctx, listing.NearbyQuery{Lat: 12.97, Lng: 77.64, RadiusKm: 1, Limit: 100})
	require.NoError(t, err)
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID.String()
	}
	assert.Contains(t, ids, first.ID.String())

	require.NoError(t, svc.Delete(ctx, first.ID, userID))
	mine, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
