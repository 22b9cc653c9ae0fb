package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi9631/partner-platform/internal/pkg/database/redistest"
)

func TestRedisCodeStore(t *testing.T) {
	store := NewRedisStore(redistest.Open(t))
	ctx := context.Background()
	phone := "+91" + uuid.NewString()[:10]
	t.Cleanup(func() {
		_ = store.DeleteCode(ctx, phone)
		_ = store.client.Del(ctx, cooldownKeyPrefix+phone).Err()
	})

	_, _, err := store.GetCode(ctx, phone)
	assert.ErrorIs(t, err, ErrCodeExpired)

	require.NoError(t, store.SaveCode(ctx, phone, "hash-1", time.Minute, 30*time.Second))

	err = store.SaveCode(ctx, phone, "hash-2", time.Minute, 30*time.Second)
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Greater(t, cooldown.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, cooldown.RetryAfter, 30*time.Second)

	hash, attempts, err := store.GetCode(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, "hash-1", hash)
	assert.Zero(t, attempts)

	n, err := store.IncrementAttempts(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.DeleteCode(ctx, phone))
	_, _, err = store.GetCode(ctx, phone)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestRedisTokenStore(t *testing.T) {
	store := NewRedisStore(redistest.Open(t))
	ctx := context.Background()
	hash := uuid.NewString()
	userID := uuid.New()

	require.NoError(t, store.SaveRefresh(ctx, hash, userID, time.Minute))

	got, err := store.TakeRefresh(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = store.TakeRefresh(ctx, hash)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
