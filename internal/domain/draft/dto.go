package draft

import (
	"encoding/json"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

type CreateDraftRequest struct {
	DraftType string `json:"draftType" validate:"required,oneof=PROPERTY PROJECT DEVELOPER PG_HOSTEL"`
	DraftData Data   `json:"draftData"`
}

type UpdateStepRequest struct {
	StepData json.RawMessage `json:"stepData"`
}

// StepUpdate is the draft after a step write plus that step's validation.
// Saving never fails on validation; the result is advisory.
type StepUpdate struct {
	Draft      *Draft        `json:"draft"`
	Validation schema.Result `json:"stepValidation"`
}
