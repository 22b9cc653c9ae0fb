package developer

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

// Target publishes developer drafts.
type Target struct {
	repo *Repository
}

func NewTarget(repo *Repository) *Target {
	return &Target{repo: repo}
}

func (t *Target) DraftType() draft.Type { return draft.TypeDeveloper }
func (t *Target) EntityType() string    { return EntityType }
func (t *Target) EntityKey() string     { return "developer" }
func (t *Target) Label() string         { return "Developer" }

func (t *Target) Upsert(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d *draft.Draft) (*publish.Outcome, error) {
	f, err := fieldsFromDraft(d)
	if err != nil {
		return nil, err
	}

	dev, isUpdate, err := t.repo.upsertTx(ctx, tx, userID, d.ID, f)
	if err != nil {
		return nil, err
	}

	return &publish.Outcome{
		EntityID: dev.ID,
		IsUpdate: isUpdate,
		Preview:  Preview(dev),
	}, nil
}

// Preview is the summary returned by the publish endpoint.
func Preview(dev *Developer) publish.Preview {
	return publish.Preview{
		"developerId":        dev.ID,
		"developerName":      dev.DeveloperName,
		"publishStatus":      dev.PublishStatus,
		"verificationStatus": dev.VerificationStatus,
	}
}

func fieldsFromDraft(d *draft.Draft) (fields, error) {
	var info schema.DeveloperBasicInfo
	ok, err := d.Step(schema.StepBasicInfo, &info)
	if err != nil {
		return fields{}, err
	}
	if !ok || info.DeveloperName == "" {
		return fields{}, schema.MissingStepError(schema.StepBasicInfo)
	}

	details := listing.Details{}
	if raw, ok := schema.Normalize(d.Data)[schema.StepBasicInfo]; ok {
		if err := json.Unmarshal(raw, &details); err != nil {
			return fields{}, err
		}
	}

	f := fields{
		DeveloperName:             info.DeveloperName,
		DeveloperType:             optional(info.DeveloperType),
		Description:               optional(info.Description),
		Website:                   optional(info.Website),
		SubscribeForDeveloperPage: info.SubscribeForDeveloperPage,
		Details:                   details,
	}
	if year, err := strconv.Atoi(info.EstablishedYear); err == nil {
		f.EstablishedYear = &year
	}
	return f, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
