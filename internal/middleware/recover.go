package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/Avi9631/partner-platform/internal/pkg/logger"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

// requestTags collects fields set further down the chain (user id, draft id)
// so a panic logged at the outermost layer still carries them.
type requestTags struct {
	mu     sync.Mutex
	fields map[string]string
}

type tagsKey struct{}

// Tag records a field to include if the request panics. It is a no-op
// outside Recover.
func Tag(ctx context.Context, key, value string) {
	t, ok := ctx.Value(tagsKey{}).(*requestTags)
	if !ok {
		return
	}
	t.mu.Lock()
	t.fields[key] = value
	t.mu.Unlock()
}

// Recover is a middleware that recovers from panics
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tags := &requestTags{fields: make(map[string]string)}
		ctx := context.WithValue(r.Context(), tagsKey{}, tags)

		defer func() {
			if err := recover(); err != nil {
				event := logger.FromContext(ctx).Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", r.Method).
					Str("path", r.URL.Path)
				tags.mu.Lock()
				for k, v := range tags.fields {
					event = event.Str(k, v)
				}
				tags.mu.Unlock()
				event.Msg("Panic recovered")
				response.InternalError(w)
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
