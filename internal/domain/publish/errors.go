package publish

import "errors"

var (
	ErrPublishInProgress = errors.New("another publish of this draft is in progress")
	ErrKeyConflict       = errors.New("idempotency key already used for a different draft")
	ErrUnknownTarget     = errors.New("no publish target for draft type")
)
