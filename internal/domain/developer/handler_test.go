package developer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/middleware"
)

type MockDeveloperService struct {
	mock.Mock
}

func (m *MockDeveloperService) List(ctx context.Context, filter Filter, page, limit int) ([]Developer, int, error) {
	args := m.Called(ctx, filter, page, limit)
	items, _ := args.Get(0).([]Developer)
	return items, args.Int(1), args.Error(2)
}

func (m *MockDeveloperService) Get(ctx context.Context, id uuid.UUID) (*Developer, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*Developer)
	return d, args.Error(1)
}

func (m *MockDeveloperService) ListByUser(ctx context.Context, userID uuid.UUID) ([]Developer, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]Developer)
	return items, args.Error(1)
}

func (m *MockDeveloperService) UpdatePublishStatus(ctx context.Context, id uuid.UUID, status, notes string) (*Developer, error) {
	args := m.Called(ctx, id, status, notes)
	d, _ := args.Get(0).(*Developer)
	return d, args.Error(1)
}

func (m *MockDeveloperService) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error {
	return m.Called(ctx, id, status, verifiedBy, notes).Error(0)
}

func (m *MockDeveloperService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func serve(svc DeveloperService, userID uuid.UUID, role string, req *http.Request) *httptest.ResponseRecorder {
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, role)))
		})
	}
	publish := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }

	rec := httptest.NewRecorder()
	NewHandler(svc).Routes(auth, publish).ServeHTTP(rec, req)
	return rec
}

func TestListDefaultsAndMeta(t *testing.T) {
	svc := new(MockDeveloperService)
	svc.On("List", mock.Anything, Filter{Search: "sky"}, 2, 5).
		Return([]Developer{{ID: uuid.New(), DeveloperName: "Skyline"}}, 11, nil)

	rec := serve(svc, uuid.Nil, "", httptest.NewRequest(http.MethodGet, "/?search=sky&page=2&limit=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPages":3`)
	assert.Contains(t, rec.Body.String(), `"developerName":"Skyline"`)
	svc.AssertExpectations(t)
}

func TestGetNotFound(t *testing.T) {
	svc := new(MockDeveloperService)
	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, listing.ErrNotFound)

	rec := serve(svc, uuid.Nil, "", httptest.NewRequest(http.MethodGet, "/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(svc, uuid.Nil, "", httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishRouteIsWired(t *testing.T) {
	rec := serve(new(MockDeveloperService), uuid.New(), middleware.RolePartner,
		httptest.NewRequest(http.MethodPost, "/publish", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestVerificationRequiresAdmin(t *testing.T) {
	svc := new(MockDeveloperService)
	id := uuid.New()
	body := `{"status":"REJECTED","notes":"Logo missing"}`

	rec := serve(svc, uuid.New(), middleware.RolePartner,
		httptest.NewRequest(http.MethodPatch, "/"+id.String()+"/verification", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminID := uuid.New()
	svc.On("UpdateVerificationStatus", mock.Anything, id, "REJECTED", adminID, "Logo missing").Return(nil)
	rec = serve(svc, adminID, middleware.RoleAdmin,
		httptest.NewRequest(http.MethodPatch, "/"+id.String()+"/verification", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestVerificationRejectsUnknownStatus(t *testing.T) {
	svc := new(MockDeveloperService)
	rec := serve(svc, uuid.New(), middleware.RoleAdmin,
		httptest.NewRequest(http.MethodPatch, "/"+uuid.NewString()+"/verification", strings.NewReader(`{"status":"MAYBE"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertNotCalled(t, "UpdateVerificationStatus")
}

func TestDeleteOwn(t *testing.T) {
	svc := new(MockDeveloperService)
	userID, id := uuid.New(), uuid.New()
	svc.On("Delete", mock.Anything, id, userID).Return(nil)

	rec := serve(svc, userID, middleware.RolePartner, httptest.NewRequest(http.MethodDelete, "/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
