package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CodeStore keeps hashed one-time codes with their attempt counters.
type CodeStore interface {
	// SaveCode stores a code hash unless the resend cooldown is active, in
	// which case it returns a *CooldownError.
	SaveCode(ctx context.Context, phone, hash string, ttl, cooldown time.Duration) error
	// GetCode returns ErrCodeExpired when nothing is stored.
	GetCode(ctx context.Context, phone string) (hash string, attempts int, err error)
	IncrementAttempts(ctx context.Context, phone string) (int, error)
	DeleteCode(ctx context.Context, phone string) error
}

// TokenStore keeps issued refresh tokens by hash.
type TokenStore interface {
	SaveRefresh(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	// TakeRefresh removes the token and returns its owner, or
	// ErrInvalidRefreshToken when it is unknown.
	TakeRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error)
	DeleteRefresh(ctx context.Context, tokenHash string) error
}

const (
	codeKeyPrefix     = "otp:code:"
	cooldownKeyPrefix = "otp:cooldown:"
	refreshKeyPrefix  = "auth:refresh:"
)

// RedisStore implements CodeStore and TokenStore.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveCode(ctx context.Context, phone, hash string, ttl, cooldown time.Duration) error {
	if cooldown > 0 {
		ok, err := s.client.SetNX(ctx, cooldownKeyPrefix+phone, 1, cooldown).Result()
		if err != nil {
			return err
		}
		if !ok {
			wait, err := s.client.PTTL(ctx, cooldownKeyPrefix+phone).Result()
			if err != nil || wait < 0 {
				wait = cooldown
			}
			return &CooldownError{RetryAfter: wait}
		}
	}

	key := codeKeyPrefix + phone
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "hash", hash, "attempts", 0)
	pipe.PExpire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) GetCode(ctx context.Context, phone string) (string, int, error) {
	vals, err := s.client.HGetAll(ctx, codeKeyPrefix+phone).Result()
	if err != nil {
		return "", 0, err
	}
	hash, ok := vals["hash"]
	if !ok {
		return "", 0, ErrCodeExpired
	}
	attempts, _ := strconv.Atoi(vals["attempts"])
	return hash, attempts, nil
}

func (s *RedisStore) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	n, err := s.client.HIncrBy(ctx, codeKeyPrefix+phone, "attempts", 1).Result()
	return int(n), err
}

func (s *RedisStore) DeleteCode(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKeyPrefix+phone).Err()
}

func (s *RedisStore) SaveRefresh(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+tokenHash, userID.String(), ttl).Err()
}

func (s *RedisStore) TakeRefresh(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	val, err := s.client.GetDel(ctx, refreshKeyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

func (s *RedisStore) DeleteRefresh(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}
