package business

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

type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) Save(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error) {
	args := m.Called(ctx, userID, req)
	b, _ := args.Get(0).(*Business)
	return b, args.Error(1)
}

func (m *MockBusinessService) Mine(ctx context.Context, userID uuid.UUID) (*Business, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).(*Business)
	return b, args.Error(1)
}

func (m *MockBusinessService) Get(ctx context.Context, id uuid.UUID) (*Business, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Business)
	return b, args.Error(1)
}

func (m *MockBusinessService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, req *BusinessRequest) (*Business, error) {
	args := m.Called(ctx, userID, req)
	b, _ := args.Get(0).(*Business)
	return b, args.Error(1)
}

func (m *MockBusinessService) List(ctx context.Context, f Filter, page, limit int) ([]Business, int, error) {
	args := m.Called(ctx, f, page, limit)
	businesses, _ := args.Get(0).([]Business)
	return businesses, args.Int(1), args.Error(2)
}

func (m *MockBusinessService) UpdateVerification(ctx context.Context, id uuid.UUID, status string, adminID uuid.UUID, notes string) (*Business, error) {
	args := m.Called(ctx, id, status, adminID, notes)
	b, _ := args.Get(0).(*Business)
	return b, args.Error(1)
}

func (m *MockBusinessService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func as(userID uuid.UUID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, role)))
		})
	}
}

const agencyBody = `{
	"agencyName": "Skyline Realty",
	"agencyRegistrationNumber": "U70100KA2020PTC000001",
	"agencyAddress": "12 MG Road, Bengaluru",
	"agencyEmail": "Office@Skyline.in",
	"agencyPhone": "+919876543210"
}`

func TestOnboardingCreatesBusiness(t *testing.T) {
	svc := new(MockBusinessService)
	userID := uuid.New()
	svc.On("CompleteOnboarding", mock.Anything, userID, mock.MatchedBy(func(req *BusinessRequest) bool {
		return req.details().Email == "office@skyline.in"
	})).Return(&Business{ID: uuid.New(), UserID: userID, Name: "Skyline Realty", VerificationStatus: VerificationPending}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/me/onboarding", strings.NewReader(agencyBody))
	NewHandler(svc).Routes(as(userID, middleware.RolePartner)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"verificationStatus":"PENDING"`)
	svc.AssertExpectations(t)
}

func TestOnboardingTwiceConflicts(t *testing.T) {
	svc := new(MockBusinessService)
	userID := uuid.New()
	svc.On("CompleteOnboarding", mock.Anything, userID, mock.AnythingOfType("*business.BusinessRequest")).
		Return(nil, ErrAlreadyOnboarded)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/me/onboarding", strings.NewReader(agencyBody))
	NewHandler(svc).Routes(as(userID, middleware.RolePartner)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSaveValidates(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing email", `{"agencyName":"A","agencyRegistrationNumber":"R","agencyAddress":"X","agencyPhone":"+919876543210"}`, "agencyEmail"},
		{"bad phone", `{"agencyName":"A","agencyRegistrationNumber":"R","agencyAddress":"X","agencyEmail":"a@b.in","agencyPhone":"call me"}`, "agencyPhone"},
		{"blank name", `{"agencyName":"   ","agencyRegistrationNumber":"R","agencyAddress":"X","agencyEmail":"a@b.in","agencyPhone":"+919876543210"}`, "agencyName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBusinessService)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/me", strings.NewReader(tt.body))
			NewHandler(svc).Routes(as(uuid.New(), middleware.RolePartner)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.field)
			svc.AssertNotCalled(t, "Save")
		})
	}
}

func TestMineNotFound(t *testing.T) {
	svc := new(MockBusinessService)
	userID := uuid.New()
	svc.On("Mine", mock.Anything, userID).Return(nil, ErrBusinessNotFound)

	rec := httptest.NewRecorder()
	NewHandler(svc).Routes(as(userID, middleware.RolePartner)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	svc := new(MockBusinessService)
	rec := httptest.NewRecorder()
	NewHandler(svc).AdminRoutes(as(uuid.New(), middleware.RolePartner)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	svc.On("List", mock.Anything, Filter{VerificationStatus: "PENDING", Search: "sky"}, 1, 20).Return([]Business{}, 0, nil)
	rec = httptest.NewRecorder()
	NewHandler(svc).AdminRoutes(as(uuid.New(), middleware.RoleAdmin)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?verificationStatus=PENDING&search=sky", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAdminVerifyAndDelete(t *testing.T) {
	svc := new(MockBusinessService)
	adminID := uuid.New()
	id := uuid.New()
	svc.On("UpdateVerification", mock.Anything, id, VerificationApproved, adminID, "ok").
		Return(&Business{ID: id, Status: StatusActive, VerificationStatus: VerificationApproved}, nil)
	svc.On("Delete", mock.Anything, id).Return(nil)
	router := NewHandler(svc).AdminRoutes(as(adminID, middleware.RoleAdmin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+id.String()+"/verification",
		strings.NewReader(`{"status":"APPROVED","notes":"ok"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"businessStatus":"ACTIVE"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}
