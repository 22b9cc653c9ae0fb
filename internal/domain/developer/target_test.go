package developer

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

func TestFieldsFromDraft(t *testing.T) {
	d := &draft.Draft{ID: uuid.New(), Type: draft.TypeDeveloper, Data: draft.Data{
		"basicInfo": json.RawMessage(`{"developerName":"Skyline Builders","developerType":"company","establishedYear":"1998","website":"https://skyline.example.com","subscribeForDeveloperPage":true}`),
	}}

	f, err := fieldsFromDraft(d)
	require.NoError(t, err)
	assert.Equal(t, "Skyline Builders", f.DeveloperName)
	require.NotNil(t, f.DeveloperType)
	assert.Equal(t, "company", *f.DeveloperType)
	require.NotNil(t, f.EstablishedYear)
	assert.Equal(t, 1998, *f.EstablishedYear)
	assert.Nil(t, f.Description)
	assert.True(t, f.SubscribeForDeveloperPage)
	assert.Equal(t, "https://skyline.example.com", f.Details["website"])
}

func TestFieldsFromDraftRequiresName(t *testing.T) {
	_, err := fieldsFromDraft(&draft.Draft{Data: draft.Data{}})
	var verr *schema.DraftValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Errors, schema.StepBasicInfo)
}

func TestPreview(t *testing.T) {
	dev := &Developer{ID: uuid.New(), DeveloperName: "Skyline", PublishStatus: "PUBLISHED", VerificationStatus: "PENDING"}
	p := Preview(dev)
	assert.Equal(t, dev.ID, p["developerId"])
	assert.Equal(t, "PENDING", p["verificationStatus"])
}
