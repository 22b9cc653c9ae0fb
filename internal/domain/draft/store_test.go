package draft_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/database/dbtest"
)

func TestUpdateStepIsShallowMerge(t *testing.T) {
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db)
	store := draft.NewStore(db)
	ctx := context.Background()

	d, err := store.Create(ctx, userID, draft.TypeProperty, draft.Data{
		"pricing": json.RawMessage(`{"pricing":[{"type":"asking_price","unit":"total","value":"100"}]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, draft.StatusDraft, d.Status)

	_, err = store.UpdateStep(ctx, d.ID, userID, "location-selection", json.RawMessage(`{"city":"Pune","extra":{"a":1}}`))
	require.NoError(t, err)
	d, err = store.UpdateStep(ctx, d.ID, userID, "location-selection", json.RawMessage(`{"city":"Mumbai"}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"city":"Mumbai"}`, string(d.Data["location-selection"]))
	assert.Contains(t, string(d.Data["pricing"]), "asking_price")
}

func TestGetIsOwnerScoped(t *testing.T) {
	db := dbtest.Open(t)
	owner := dbtest.CreateUser(t, db)
	other := dbtest.CreateUser(t, db)
	store := draft.NewStore(db)
	ctx := context.Background()

	d, err := store.Create(ctx, owner, draft.TypeProject, nil)
	require.NoError(t, err)

	_, err = store.Get(ctx, d.ID, other, "")
	assert.ErrorIs(t, err, draft.ErrNotFound)

	_, err = store.Get(ctx, d.ID, owner, draft.TypeProperty)
	assert.ErrorIs(t, err, draft.ErrNotFound)

	_, err = store.Get(ctx, uuid.New(), owner, "")
	assert.ErrorIs(t, err, draft.ErrNotFound)

	got, err := store.Get(ctx, d.ID, owner, draft.TypeProject)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	_, err = store.UpdateStep(ctx, d.ID, other, "basic-details", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestMarkPublishedAndDelete(t *testing.T) {
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db)
	store := draft.NewStore(db)
	ctx := context.Background()

	d, err := store.Create(ctx, userID, draft.TypeDeveloper, draft.Data{"basic-info": json.RawMessage(`{"developerName":"Acme"}`)})
	require.NoError(t, err)

	entityID := uuid.New()
	err = database.InTx(ctx, db, func(tx *sqlx.Tx) error {
		locked, err := store.GetForUpdateTx(ctx, tx, d.ID, userID, draft.TypeDeveloper)
		if err != nil {
			return err
		}
		return store.MarkPublishedTx(ctx, tx, locked.ID, entityID, "DEVELOPER")
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, d.ID, userID, "")
	require.NoError(t, err)
	assert.Equal(t, draft.StatusPublished, got.Status)
	require.NotNil(t, got.PublishedID)
	assert.Equal(t, entityID, *got.PublishedID)

	assert.ErrorIs(t, store.Delete(ctx, d.ID, userID), draft.ErrDraftPublished)

	// editing a published draft keeps it published
	got, err = store.UpdateStep(ctx, d.ID, userID, "basic-info", json.RawMessage(`{"developerName":"Acme Homes"}`))
	require.NoError(t, err)
	assert.Equal(t, draft.StatusPublished, got.Status)

	require.NoError(t, database.InTx(ctx, db, func(tx *sqlx.Tx) error {
		return store.ResetToDraftTx(ctx, tx, "DEVELOPER", entityID)
	}))
	require.NoError(t, store.Delete(ctx, d.ID, userID))

	_, err = store.Get(ctx, d.ID, userID, "")
	assert.ErrorIs(t, err, draft.ErrNotFound)
}

func TestListByUserFilters(t *testing.T) {
	db := dbtest.Open(t)
	userID := dbtest.CreateUser(t, db)
	store := draft.NewStore(db)
	ctx := context.Background()

	_, err := store.Create(ctx, userID, draft.TypeProperty, nil)
	require.NoError(t, err)
	_, err = store.Create(ctx, userID, draft.TypePGHostel, nil)
	require.NoError(t, err)

	all, err := store.ListByUser(ctx, userID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hostels, err := store.ListByUser(ctx, userID, draft.TypePGHostel, draft.StatusDraft)
	require.NoError(t, err)
	require.Len(t, hostels, 1)
	assert.Equal(t, draft.TypePGHostel, hostels[0].Type)
}
