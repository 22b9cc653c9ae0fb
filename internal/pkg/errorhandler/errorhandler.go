package errorhandler

import (
	"context"
	"net/http"

	"github.com/Avi9631/partner-platform/internal/pkg/logger"
	"github.com/Avi9631/partner-platform/internal/pkg/response"
)

// HandleErrorWithDetails logs a client-side failure at warn level and writes
// the error envelope with details.
func HandleErrorWithDetails(ctx context.Context, w http.ResponseWriter, status int, code, message string, details interface{}, err error) {
	event := logger.FromContext(ctx).Warn().
		Str("error_code", code).
		Int("status_code", status).
		Interface("error_details", details)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(message)

	response.ErrorWithDetails(w, status, code, message, details)
}

// Internal logs an unexpected error with the given key/value context and
// answers with a generic 500.
func Internal(ctx context.Context, w http.ResponseWriter, err error, msg string, fields ...interface{}) {
	logger.LogError(ctx, err, msg, fields...)
	response.InternalError(w)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors interface{}) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}
