package pghostel

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

type Target struct {
	repo *Repository
}

func NewTarget(repo *Repository) *Target {
	return &Target{repo: repo}
}

func (t *Target) DraftType() draft.Type { return draft.TypePGHostel }
func (t *Target) EntityType() string    { return EntityType }
func (t *Target) EntityKey() string     { return "pgHostel" }
func (t *Target) Label() string         { return "PG/Hostel" }

func (t *Target) Upsert(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d *draft.Draft) (*publish.Outcome, error) {
	f, err := fieldsFromDraft(d)
	if err != nil {
		return nil, err
	}

	h, isUpdate, err := t.repo.upsertTx(ctx, tx, userID, d.ID, f)
	if err != nil {
		return nil, err
	}
	return &publish.Outcome{EntityID: h.ID, IsUpdate: isUpdate, Preview: Preview(h)}, nil
}

func Preview(h *Hostel) publish.Preview {
	city := ""
	if h.City != nil {
		city = *h.City
	}
	return publish.Preview{
		"pgHostelId":   h.ID,
		"propertyName": h.PropertyName,
		"city":         city,
	}
}

func fieldsFromDraft(d *draft.Draft) (fields, error) {
	var basic schema.PGHostelBasicDetails
	ok, err := d.Step(schema.StepBasicDetails, &basic)
	if err != nil {
		return fields{}, err
	}
	if !ok || basic.PropertyName == "" {
		return fields{}, schema.MissingStepError(schema.StepBasicDetails)
	}

	var loc schema.LocationDetails
	if _, err := d.Step(schema.StepLocationDetails, &loc); err != nil {
		return fields{}, err
	}

	details, err := listing.FromSteps(d.Data)
	if err != nil {
		return fields{}, err
	}

	f := fields{
		PropertyName:  basic.PropertyName,
		GenderAllowed: optional(basic.GenderAllowed),
		City:          optional(loc.City),
		Locality:      optional(loc.Locality),
		Details:       details,
	}
	if loc.Coordinates != nil {
		f.Lat, f.Lng = loc.Coordinates.Lat, loc.Coordinates.Lng
	}
	return f, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
