package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Avi9631/partner-platform/internal/config"
	"github.com/Avi9631/partner-platform/internal/domain/auth"
	"github.com/Avi9631/partner-platform/internal/domain/business"
	"github.com/Avi9631/partner-platform/internal/domain/developer"
	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/pghostel"
	"github.com/Avi9631/partner-platform/internal/domain/project"
	"github.com/Avi9631/partner-platform/internal/domain/property"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/realtime"
	"github.com/Avi9631/partner-platform/internal/domain/user"
	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/jwt"
)

// testRouter mounts handlers without backing services; only paths that stop
// in middleware are safe to hit.
func testRouter() http.Handler {
	tokens := jwt.NewService("test-secret", time.Minute, time.Hour)
	h := handlers{
		auth:       auth.NewHandler(nil),
		users:      user.NewHandler(nil),
		businesses: business.NewHandler(nil),
		wallet:     wallet.NewHandler(nil),
		drafts:     draft.NewHandler(nil),
		publish:    publish.NewHandler(nil),
		developers: developer.NewHandler(nil),
		projects:   project.NewHandler(nil),
		properties: property.NewHandler(nil),
		hostels:    pghostel.NewHandler(nil),
		realtime:   realtime.NewHandler(nil, tokens, nil),
	}
	return newRouter(&config.Config{}, middleware.Auth(tokens), h)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter()
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/wallet/balance"},
		{http.MethodGet, "/api/v1/drafts"},
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodPut, "/api/v1/businesses/me"},
		{http.MethodPost, "/api/v1/businesses/me/onboarding"},
		{http.MethodGet, "/api/v1/admin/businesses"},
		{http.MethodPost, "/api/v1/developers/publish"},
		{http.MethodPost, "/api/v1/projects/publish"},
		{http.MethodPost, "/api/v1/properties/publish"},
		{http.MethodPost, "/api/v1/pg-hostels/publish"},
		{http.MethodGet, "/ws"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/otp/send", nil))

	// Reaches the handler, which rejects the empty body.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
