package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the key is already held by someone else.
var ErrNotAcquired = errors.New("lock not acquired")

// releaseScript deletes the key only while it still carries our token, so an
// expired lock that was re-taken by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived exclusive locks backed by Redis.
// A nil client makes every Acquire succeed with a no-op lock.
type Locker struct {
	client *redis.Client
	prefix string
}

func NewLocker(client *redis.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// Lock is a held lock; call Release when done.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// Acquire takes key for ttl or fails immediately with ErrNotAcquired.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	if l == nil || l.client == nil {
		return &Lock{}, nil
	}

	token := uuid.NewString()
	fullKey := l.prefix + key
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return &Lock{client: l.client, key: fullKey, token: token}, nil
}

// Release frees the lock if it is still ours.
func (lk *Lock) Release(ctx context.Context) error {
	if lk == nil || lk.client == nil {
		return nil
	}
	return releaseScript.Run(ctx, lk.client, []string{lk.key}, lk.token).Err()
}
