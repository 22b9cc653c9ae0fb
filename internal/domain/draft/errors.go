package draft

import "errors"

var (
	ErrNotFound        = errors.New("draft not found")
	ErrEmptyDraft      = errors.New("draft has no data")
	ErrDraftPublished  = errors.New("published drafts cannot be deleted")
	ErrInvalidType     = errors.New("invalid draft type")
	ErrInvalidStep     = errors.New("invalid step id")
	ErrInvalidStepData = errors.New("step data must be a JSON object")
)
