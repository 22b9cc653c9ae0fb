package draft

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/middleware"
)

type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) Create(ctx context.Context, userID uuid.UUID, req *CreateDraftRequest) (*Draft, error) {
	args := m.Called(ctx, userID, req)
	d, _ := args.Get(0).(*Draft)
	return d, args.Error(1)
}

func (m *MockDraftService) Get(ctx context.Context, userID, draftID uuid.UUID) (*Draft, error) {
	args := m.Called(ctx, userID, draftID)
	d, _ := args.Get(0).(*Draft)
	return d, args.Error(1)
}

func (m *MockDraftService) List(ctx context.Context, userID uuid.UUID, t Type, status Status) ([]Draft, error) {
	args := m.Called(ctx, userID, t, status)
	return args.Get(0).([]Draft), args.Error(1)
}

func (m *MockDraftService) UpdateStep(ctx context.Context, userID, draftID uuid.UUID, stepID string, data json.RawMessage) (*StepUpdate, error) {
	args := m.Called(ctx, userID, draftID, stepID, data)
	u, _ := args.Get(0).(*StepUpdate)
	return u, args.Error(1)
}

func (m *MockDraftService) Delete(ctx context.Context, userID, draftID uuid.UUID) error {
	return m.Called(ctx, userID, draftID).Error(0)
}

func (m *MockDraftService) Validation(ctx context.Context, userID, draftID uuid.UUID) (*schema.ValidationSummary, error) {
	args := m.Called(ctx, userID, draftID)
	s, _ := args.Get(0).(*schema.ValidationSummary)
	return s, args.Error(1)
}

func serve(h *Handler, userID uuid.UUID, req *http.Request) *httptest.ResponseRecorder {
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, middleware.RolePartner)))
		})
	}
	w := httptest.NewRecorder()
	h.Routes(auth).ServeHTTP(w, req)
	return w
}

func TestCreateValidatesDraftType(t *testing.T) {
	svc := new(MockDraftService)
	w := serve(NewHandler(svc), uuid.New(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"draftType":"CASTLE"}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "draftType")
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDraft(t *testing.T) {
	userID := uuid.New()
	svc := new(MockDraftService)
	svc.On("Create", mock.Anything, userID, mock.MatchedBy(func(req *CreateDraftRequest) bool {
		return req.DraftType == "PROPERTY"
	})).Return(&Draft{ID: uuid.New(), Type: TypeProperty, Status: StatusDraft}, nil)

	w := serve(NewHandler(svc), userID, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"draftType":"PROPERTY"}`)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"draftStatus":"DRAFT"`)
	svc.AssertExpectations(t)
}

func TestGetNotFound(t *testing.T) {
	userID, draftID := uuid.New(), uuid.New()
	svc := new(MockDraftService)
	svc.On("Get", mock.Anything, userID, draftID).Return(nil, ErrNotFound)

	w := serve(NewHandler(svc), userID, httptest.NewRequest(http.MethodGet, "/"+draftID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRejectsBadID(t *testing.T) {
	w := serve(NewHandler(new(MockDraftService)), uuid.New(), httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStepPassesStepThrough(t *testing.T) {
	userID, draftID := uuid.New(), uuid.New()
	svc := new(MockDraftService)
	svc.On("UpdateStep", mock.Anything, userID, draftID, "locationSelection", json.RawMessage(`{"city":"Pune"}`)).
		Return(&StepUpdate{Draft: &Draft{ID: draftID}, Validation: schema.Result{Valid: false, Errors: []schema.FieldError{{Field: "locality", Code: "required"}}}}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/"+draftID.String()+"/steps/locationSelection", strings.NewReader(`{"stepData":{"city":"Pune"}}`))
	w := serve(NewHandler(svc), userID, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stepValidation"`)
	assert.Contains(t, w.Body.String(), `"locality"`)
	svc.AssertExpectations(t)
}

func TestDeletePublishedConflict(t *testing.T) {
	userID, draftID := uuid.New(), uuid.New()
	svc := new(MockDraftService)
	svc.On("Delete", mock.Anything, userID, draftID).Return(ErrDraftPublished)

	w := serve(NewHandler(svc), userID, httptest.NewRequest(http.MethodDelete, "/"+draftID.String(), nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	w := serve(NewHandler(new(MockDraftService)), uuid.New(), httptest.NewRequest(http.MethodGet, "/?status=archived", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
