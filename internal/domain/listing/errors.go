package listing

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound          = errors.New("listing not found")
	ErrAlreadyPublished  = errors.New("draft already has a published listing")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrMissingCoordinate = errors.New("listing location is missing coordinates")
)

// MapPQError turns a unique violation on a draft_id index into
// ErrAlreadyPublished and leaves other errors alone.
func MapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrAlreadyPublished
	}
	return err
}
