package project

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/database/dbtest"
)

func TestUpsertMergesAndSearchNearby(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	userID := dbtest.CreateUser(t, db)

	drafts := draft.NewStore(db)
	repo := NewRepository(db)
	target := NewTarget(repo)

	d, err := drafts.Create(ctx, userID, draft.TypeProject, projectDraft().Data)
	require.NoError(t, err)

	publish := func(d *draft.Draft) (id string, isUpdate bool) {
		require.NoError(t, database.InTx(ctx, db, func(tx *sqlx.Tx) error {
			out, err := target.Upsert(ctx, tx, userID, d)
			if err != nil {
				return err
			}
			id, isUpdate = out.EntityID.String(), out.IsUpdate
			return nil
		}))
		return id, isUpdate
	}

	firstID, isUpdate := publish(d)
	assert.False(t, isUpdate)

	// The second publish drops the legal step; the stored RERA number survives the merge.
	delete(d.Data, "legal-docs")
	d.Data["basic-details"] = json.RawMessage(`{"projectName":"Green Acres Phase 2","projectType":"residential"}`)
	secondID, isUpdate := publish(d)
	assert.True(t, isUpdate)
	assert.Equal(t, firstID, secondID)

	mine, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	p := mine[0]
	assert.Equal(t, "Green Acres Phase 2", p.ProjectName)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, "P52100012345", p.Details["reraNumber"])
	assert.Equal(t, listing.VerificationPending, p.VerificationStatus)

	hits, err := repo.SearchNearby(ctx, listing.NearbyQuery{Lat: 18.561, Lng: 73.781, RadiusKm: 2, Limit: 100})
	require.NoError(t, err)
	var found *NearbyProject
	for i := range hits {
		if hits[i].ID == p.ID {
			found = &hits[i]
		}
	}
	require.NotNil(t, found)
	assert.Less(t, found.DistanceKm, 1.0)

	far, err := repo.SearchNearby(ctx, listing.NearbyQuery{Lat: 28.6, Lng: 77.2, RadiusKm: 5, Limit: 100})
	require.NoError(t, err)
	for _, h := range far {
		assert.NotEqual(t, p.ID, h.ID)
	}

	items, total, err := repo.List(ctx, Filter{City: "pune", Search: "Phase 2"}, 1, 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)
	assert.NotEmpty(t, items)

	require.NoError(t, repo.Delete(ctx, p.ID, userID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, listing.ErrNotFound)
}
