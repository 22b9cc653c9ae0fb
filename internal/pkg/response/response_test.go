package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name              string
		total, page, lim  int
		wantPages         int
		wantNext, wantPrv bool
	}{
		{"empty", 0, 1, 20, 0, false, false},
		{"exact", 40, 1, 20, 2, true, false},
		{"partial last page", 41, 3, 20, 3, false, true},
		{"zero limit", 5, 1, 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.total, tt.page, tt.lim)
			assert.Equal(t, tt.wantPages, m.TotalPages)
			assert.Equal(t, tt.wantNext, m.HasNext)
			assert.Equal(t, tt.wantPrv, m.HasPrev)
		})
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	PaymentRequired(rec, "Insufficient wallet balance", map[string]string{"required": "10"})

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INSUFFICIENT_FUNDS", body.Error.Code)
	assert.Equal(t, map[string]interface{}{"required": "10"}, body.Error.Details)
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}
