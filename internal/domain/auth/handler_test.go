package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SendOTP(ctx context.Context, phone string) (*OTPSent, error) {
	args := m.Called(ctx, phone)
	s, _ := args.Get(0).(*OTPSent)
	return s, args.Error(1)
}

func (m *MockAuthService) ResendOTP(ctx context.Context, phone string) (*OTPSent, error) {
	args := m.Called(ctx, phone)
	s, _ := args.Get(0).(*OTPSent)
	return s, args.Error(1)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phone, code string) (*AuthResponse, error) {
	args := m.Called(ctx, phone, code)
	r, _ := args.Get(0).(*AuthResponse)
	return r, args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	p, _ := args.Get(0).(*TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func post(svc AuthService, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	NewHandler(svc).Routes().ServeHTTP(rec, req)
	return rec
}

func TestSendOTPHandler(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("SendOTP", mock.Anything, "+919876543210").Return(&OTPSent{ExpiresIn: 300, ResendAfter: 60}, nil)

	rec := post(svc, "/otp/send", `{"phone":"+91 98765 43210"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resendAfter":60`)
	svc.AssertExpectations(t)
}

func TestSendOTPInvalidPhone(t *testing.T) {
	rec := post(new(MockAuthService), "/otp/send", `{"phone":"12"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestResendCooldownHandler(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ResendOTP", mock.Anything, "+919876543210").Return(nil, &CooldownError{RetryAfter: 41500 * time.Millisecond})

	rec := post(svc, "/otp/resend", `{"phone":"+919876543210"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"retryAfter":42`)
}

func TestVerifyOTPErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrInvalidCode, http.StatusBadRequest, "INVALID_OTP"},
		{ErrCodeExpired, http.StatusBadRequest, "OTP_EXPIRED"},
		{ErrTooManyAttempts, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{ErrUserSuspended, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("VerifyOTP", mock.Anything, "+919876543210", "123456").Return(nil, tc.err)

			rec := post(svc, "/otp/verify", `{"phone":"+919876543210","code":"123456"}`)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.code)
		})
	}
}

func TestVerifyOTPRejectsShortCode(t *testing.T) {
	rec := post(new(MockAuthService), "/otp/verify", `{"phone":"+919876543210","code":"123"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRefreshHandler(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Refresh", mock.Anything, "good").Return(&TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}, nil)
	svc.On("Refresh", mock.Anything, "stale").Return(nil, ErrInvalidRefreshToken)

	rec := post(svc, "/refresh", `{"refreshToken":"good"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accessToken":"a"`)

	rec = post(svc, "/refresh", `{"refreshToken":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, "r").Return(nil)

	rec := post(svc, "/logout", `{"refreshToken":"r"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
