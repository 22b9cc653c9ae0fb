package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/middleware"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, req Request) (*Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*Result)
	return res, args.Error(1)
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func post(t *testing.T, p Publisher, userID uuid.UUID, body, key string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/properties/publish", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	req = req.WithContext(middleware.WithUser(req.Context(), userID, middleware.RolePartner))
	rec := httptest.NewRecorder()
	NewHandler(p).For(draft.TypeProperty).ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestPublishCreated(t *testing.T) {
	userID, draftID, entityID := uuid.New(), uuid.New(), uuid.New()
	balance := decimal.NewFromInt(190)

	p := new(MockPublisher)
	p.On("Publish", mock.Anything, Request{UserID: userID, DraftID: draftID, DraftType: draft.TypeProperty, IdempotencyKey: "abc"}).
		Return(&Result{
			EntityID:       entityID,
			EntityType:     "PROPERTY",
			EntityKey:      "property",
			Preview:        Preview{"name": "Sea view flat"},
			NewBalance:     &balance,
			IdempotencyKey: "abc",
		}, nil)

	rec, env := post(t, p, userID, `{"draftId":"`+draftID.String()+`"}`, "abc")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "abc", rec.Header().Get(IdempotencyHeader))
	assert.Equal(t, entityID.String(), env.Data["propertyId"])
	assert.Equal(t, false, env.Data["isUpdate"])
	assert.Equal(t, false, env.Data["replayed"])
	assert.Equal(t, "190", env.Data["newBalance"])
	assert.Equal(t, map[string]interface{}{"name": "Sea view flat"}, env.Data["property"])
	p.AssertExpectations(t)
}

func TestPublishReplayIsOK(t *testing.T) {
	p := new(MockPublisher)
	p.On("Publish", mock.Anything, mock.Anything).
		Return(&Result{EntityID: uuid.New(), EntityKey: "property", Replayed: true, IdempotencyKey: "k"}, nil)

	rec, env := post(t, p, uuid.New(), `{"draftId":"`+uuid.NewString()+`"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env.Data["replayed"])
	assert.NotContains(t, env.Data, "newBalance")
}

func TestPublishRejectsBadBody(t *testing.T) {
	p := new(MockPublisher)

	rec, _ := post(t, p, uuid.New(), `{"draftId":"nope"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = post(t, p, uuid.New(), `{`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = post(t, p, uuid.New(), `{"draftId":"`+uuid.NewString()+`"}`, strings.Repeat("k", MaxKeyLength+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublishErrorMapping(t *testing.T) {
	verr := schema.MissingStepError(schema.StepMediaUpload)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verr, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"funds", &wallet.InsufficientFundsError{Balance: decimal.NewFromInt(5), Required: decimal.NewFromInt(10)}, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS"},
		{"not found", draft.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"empty", draft.ErrEmptyDraft, http.StatusBadRequest, "BAD_REQUEST"},
		{"in progress", ErrPublishInProgress, http.StatusConflict, "CONFLICT"},
		{"key reuse", ErrKeyConflict, http.StatusConflict, "CONFLICT"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := new(MockPublisher)
			p.On("Publish", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec, env := post(t, p, uuid.New(), `{"draftId":"`+uuid.NewString()+`"}`, "")
			assert.Equal(t, tc.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestPublishDetails(t *testing.T) {
	p := new(MockPublisher)
	p.On("Publish", mock.Anything, mock.Anything).
		Return(nil, &wallet.InsufficientFundsError{Balance: decimal.NewFromInt(5), Required: decimal.NewFromInt(10)})
	_, env := post(t, p, uuid.New(), `{"draftId":"`+uuid.NewString()+`"}`, "")
	assert.JSONEq(t, `{"balance":"5.00","required":"10.00"}`, string(env.Error.Details))

	p = new(MockPublisher)
	p.On("Publish", mock.Anything, mock.Anything).Return(nil, schema.MissingStepError(schema.StepMediaUpload))
	_, env = post(t, p, uuid.New(), `{"draftId":"`+uuid.NewString()+`"}`, "")

	var details map[string][]schema.FieldError
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	require.Len(t, details["media-upload"], 1)
	assert.Equal(t, schema.CodeRequiredStep, details["media-upload"][0].Code)
}
