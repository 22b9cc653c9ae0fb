package property

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

func propertyDraft() *draft.Draft {
	return &draft.Draft{ID: uuid.New(), Type: draft.TypeProperty, Data: draft.Data{
		"property-type":     json.RawMessage(`{"propertyType":"apartment"}`),
		"listingInfo":       json.RawMessage(`{"title":"Sunny 2BHK near the park","description":"Bright corner flat"}`),
		"basic-details":     json.RawMessage(`{"listingType":"rent","ownershipType":"freehold"}`),
		"locationSelection": json.RawMessage(`{"city":"Bengaluru","locality":"Indiranagar","addressText":"12th Main","coordinates":{"lat":12.97,"lng":77.64}}`),
		"pricing":           json.RawMessage(`{"pricing":[{"type":"monthly_rent","value":"45000"}]}`),
	}}
}

func TestFieldsFromDraft(t *testing.T) {
	f, err := fieldsFromDraft(propertyDraft())
	require.NoError(t, err)

	assert.Equal(t, "apartment", f.PropertyType)
	require.NotNil(t, f.Title)
	assert.Equal(t, "Sunny 2BHK near the park", *f.Title)
	assert.Equal(t, "rent", *f.ListingType)
	assert.Equal(t, "Bengaluru", *f.City)
	assert.Equal(t, "Indiranagar", *f.Locality)
	assert.InDelta(t, 12.97, *f.Lat, 1e-9)

	// Every step is kept under its canonical id.
	assert.Len(t, f.Details, 5)
	assert.Contains(t, f.Details, "location-selection")
	assert.Contains(t, f.Details, "listing-info")
}

func TestFieldsFromDraftNeedsPropertyType(t *testing.T) {
	d := propertyDraft()
	delete(d.Data, "property-type")

	_, err := fieldsFromDraft(d)
	var verr *schema.DraftValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []schema.StepID{schema.StepPropertyType}, verr.Steps())
}

func TestPreviewFallsBackToUntitled(t *testing.T) {
	p := &Property{PropertyType: "villa"}
	preview := Preview(p)
	assert.Equal(t, "Untitled Property", preview["name"])
	assert.Equal(t, "villa", preview["type"])
	assert.Equal(t, "", preview["city"])

	title, city := "Lake view villa", "Goa"
	preview = Preview(&Property{PropertyType: "villa", Title: &title, City: &city})
	assert.Equal(t, title, preview["name"])
	assert.Equal(t, city, preview["city"])
}
