package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "partner")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "partner", claims.Role)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := NewService("secret", time.Minute, time.Hour)

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "partner")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	token, err := NewService("a", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "partner")
	require.NoError(t, err)

	_, err = NewService("b", time.Minute, time.Hour).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
