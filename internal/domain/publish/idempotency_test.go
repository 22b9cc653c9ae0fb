package publish

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
)

func TestDeriveKeyIgnoresKeyOrderAndWhitespace(t *testing.T) {
	id := uuid.New()
	a := draft.Data{"basic-info": json.RawMessage(`{"developerName":"Skyline","establishedYear":"1998"}`)}
	b := draft.Data{"basic-info": json.RawMessage(`{ "establishedYear": "1998",  "developerName": "Skyline" }`)}

	ka, err := DeriveKey(id, a)
	require.NoError(t, err)
	kb, err := DeriveKey(id, b)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
	assert.Len(t, ka, 64)
}

func TestDeriveKeyChangesWithContentAndDraft(t *testing.T) {
	id := uuid.New()
	data := draft.Data{"pricing": json.RawMessage(`{"value":"8000000"}`)}
	base, err := DeriveKey(id, data)
	require.NoError(t, err)

	changed, err := DeriveKey(id, draft.Data{"pricing": json.RawMessage(`{"value":"8000001"}`)})
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)

	other, err := DeriveKey(uuid.New(), data)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}

func TestDeriveKeyKeepsNumberLiterals(t *testing.T) {
	id := uuid.New()
	a, err := DeriveKey(id, draft.Data{"x": json.RawMessage(`{"n":12345678901234567890}`)})
	require.NoError(t, err)
	b, err := DeriveKey(id, draft.Data{"x": json.RawMessage(`{"n":12345678901234567891}`)})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
