package draft

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/schema"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

const maxStepIDLength = 64

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateDraftRequest) (*Draft, error) {
	t := Type(req.DraftType)
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	data := Data{}
	for id, raw := range schema.Normalize(req.DraftData) {
		data[string(id)] = raw
	}

	d, err := s.store.Create(ctx, userID, t, data)
	if err != nil {
		return nil, err
	}
	logger.LogInfo(ctx, "listing draft created", "user_id", userID.String(), "draft_id", d.ID.String(), "draft_type", string(t))
	return d, nil
}

func (s *Service) Get(ctx context.Context, userID, draftID uuid.UUID) (*Draft, error) {
	return s.store.Get(ctx, draftID, userID, "")
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, t Type, status Status) ([]Draft, error) {
	if t != "" && !t.Valid() {
		return nil, ErrInvalidType
	}
	return s.store.ListByUser(ctx, userID, t, status)
}

// UpdateStep merges one step into the draft. The step id is canonicalised
// so camelCase clients and kebab-case clients write the same key.
func (s *Service) UpdateStep(ctx context.Context, userID, draftID uuid.UUID, stepID string, data json.RawMessage) (*StepUpdate, error) {
	id := schema.CanonicalStepID(stepID)
	if id == "" || len(id) > maxStepIDLength {
		return nil, ErrInvalidStep
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, ErrInvalidStepData
	}

	d, err := s.store.UpdateStep(ctx, draftID, userID, string(id), trimmed)
	if err != nil {
		return nil, err
	}

	result := schema.Validate(string(d.Type), string(id), trimmed)
	logger.LogDebug(ctx, "draft step saved", "draft_id", draftID.String(), "step_id", string(id), "step_valid", result.Valid)
	return &StepUpdate{Draft: d, Validation: result}, nil
}

func (s *Service) Delete(ctx context.Context, userID, draftID uuid.UUID) error {
	if err := s.store.Delete(ctx, draftID, userID); err != nil {
		return err
	}
	logger.LogInfo(ctx, "listing draft deleted", "user_id", userID.String(), "draft_id", draftID.String())
	return nil
}

// Validation reports completeness and errors for the whole draft.
func (s *Service) Validation(ctx context.Context, userID, draftID uuid.UUID) (*schema.ValidationSummary, error) {
	d, err := s.store.Get(ctx, draftID, userID, "")
	if err != nil {
		return nil, err
	}
	summary := schema.Summary(string(d.Type), d.Data)
	return &summary, nil
}
