package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Avi9631/partner-platform/internal/middleware"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	args := m.Called(ctx, id, req)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserService) CompleteOnboarding(ctx context.Context, id uuid.UUID, req *OnboardingRequest) (*User, error) {
	args := m.Called(ctx, id, req)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, f Filter, page, limit int) ([]User, int, error) {
	args := m.Called(ctx, f, page, limit)
	users, _ := args.Get(0).([]User)
	return users, args.Int(1), args.Error(2)
}

func (m *MockUserService) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*User, error) {
	args := m.Called(ctx, id, status)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockUserService) UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*User, error) {
	args := m.Called(ctx, id, status, adminID, notes)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func as(userID uuid.UUID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, role)))
		})
	}
}

func TestOnboardingTwiceConflicts(t *testing.T) {
	svc := new(MockUserService)
	userID := uuid.New()
	svc.On("CompleteOnboarding", mock.Anything, userID, mock.AnythingOfType("*user.OnboardingRequest")).
		Return(nil, ErrAlreadyOnboarded)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/me/onboarding", strings.NewReader(`{"firstName":"Asha","lastName":"Rao"}`))
	NewHandler(svc).Routes(as(userID, middleware.RolePartner)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOnboardingValidates(t *testing.T) {
	svc := new(MockUserService)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/me/onboarding", strings.NewReader(`{"firstName":"Asha"}`))
	NewHandler(svc).Routes(as(uuid.New(), middleware.RolePartner)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "lastName")
	svc.AssertNotCalled(t, "CompleteOnboarding")
}

func TestMe(t *testing.T) {
	svc := new(MockUserService)
	userID := uuid.New()
	svc.On("Me", mock.Anything, userID).Return(&User{ID: userID, NameInitial: "AR", Status: StatusActive}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc).Routes(as(userID, middleware.RolePartner)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nameInitial":"AR"`)
	assert.Contains(t, rec.Body.String(), `"userStatus":"ACTIVE"`)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	svc := new(MockUserService)
	rec := httptest.NewRecorder()
	NewHandler(svc).AdminRoutes(as(uuid.New(), middleware.RolePartner)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	svc.On("List", mock.Anything, Filter{Status: "PENDING"}, 1, 20).Return([]User{}, 0, nil)
	rec = httptest.NewRecorder()
	NewHandler(svc).AdminRoutes(as(uuid.New(), middleware.RoleAdmin)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?userStatus=PENDING", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
