package project

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/middleware"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*Project)
	return p, args.Error(1)
}

func (m *MockProjectService) ListByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]Project)
	return items, args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, filter Filter, page, limit int) ([]Project, int, error) {
	args := m.Called(ctx, filter, page, limit)
	items, _ := args.Get(0).([]Project)
	return items, args.Int(1), args.Error(2)
}

func (m *MockProjectService) SearchNearby(ctx context.Context, q listing.NearbyQuery) ([]NearbyProject, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]NearbyProject)
	return items, args.Error(1)
}

func (m *MockProjectService) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, status string, verifiedBy uuid.UUID, notes string) error {
	return m.Called(ctx, id, status, verifiedBy, notes).Error(0)
}

func (m *MockProjectService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func router(svc ProjectService, userID uuid.UUID, role string) http.Handler {
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, role)))
		})
	}
	return NewHandler(svc).Routes(auth, func(w http.ResponseWriter, r *http.Request) {})
}

func TestNearby(t *testing.T) {
	svc := new(MockProjectService)
	want := listing.NearbyQuery{Lat: 18.5, Lng: 73.8, RadiusKm: 5, Limit: listing.DefaultNearby}
	svc.On("SearchNearby", mock.Anything, want).
		Return([]NearbyProject{{Project: Project{ProjectName: "Green Acres"}, DistanceKm: 1.2}}, nil)

	rec := httptest.NewRecorder()
	router(svc, uuid.Nil, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nearby?lat=18.5&lng=73.8&radius=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"distanceKm":1.2`)
	svc.AssertExpectations(t)
}

func TestNearbyRejectsBadRadius(t *testing.T) {
	svc := new(MockProjectService)
	rec := httptest.NewRecorder()
	router(svc, uuid.Nil, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nearby?lat=18.5&lng=73.8&radius=101", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SearchNearby")
}

func TestListFilters(t *testing.T) {
	svc := new(MockProjectService)
	svc.On("List", mock.Anything, Filter{City: "Pune", ProjectType: "residential"}, 1, 20).Return([]Project{}, 0, nil)

	rec := httptest.NewRecorder()
	router(svc, uuid.Nil, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?city=Pune&projectType=residential", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListMyRequiresUser(t *testing.T) {
	svc := new(MockProjectService)
	userID := uuid.New()
	svc.On("ListByUser", mock.Anything, userID).Return([]Project{{ID: uuid.New()}}, nil)

	rec := httptest.NewRecorder()
	router(svc, userID, middleware.RolePartner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/my", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
