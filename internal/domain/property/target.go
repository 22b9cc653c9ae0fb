package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

// Target publishes property drafts.
type Target struct {
	repo *Repository
}

func NewTarget(repo *Repository) *Target {
	return &Target{repo: repo}
}

func (t *Target) DraftType() draft.Type { return draft.TypeProperty }
func (t *Target) EntityType() string    { return EntityType }
func (t *Target) EntityKey() string     { return "property" }
func (t *Target) Label() string         { return "Property" }

func (t *Target) Upsert(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, d *draft.Draft) (*publish.Outcome, error) {
	f, err := fieldsFromDraft(d)
	if err != nil {
		return nil, err
	}

	p, isUpdate, err := t.repo.upsertTx(ctx, tx, userID, d.ID, f)
	if err != nil {
		return nil, err
	}
	return &publish.Outcome{EntityID: p.ID, IsUpdate: isUpdate, Preview: Preview(p)}, nil
}

func Preview(p *Property) publish.Preview {
	name := untitled
	if p.Title != nil && *p.Title != "" {
		name = *p.Title
	}
	return publish.Preview{
		"name":     name,
		"type":     p.PropertyType,
		"city":     deref(p.City),
		"locality": deref(p.Locality),
	}
}

func fieldsFromDraft(d *draft.Draft) (fields, error) {
	var pt schema.PropertyTypeStep
	ok, err := d.Step(schema.StepPropertyType, &pt)
	if err != nil {
		return fields{}, err
	}
	if !ok || pt.PropertyType == "" {
		return fields{}, schema.MissingStepError(schema.StepPropertyType)
	}

	var (
		info  schema.ListingInfo
		basic schema.BasicDetails
		loc   schema.LocationSelection
	)
	if _, err := d.Step(schema.StepListingInfo, &info); err != nil {
		return fields{}, err
	}
	if _, err := d.Step(schema.StepBasicDetails, &basic); err != nil {
		return fields{}, err
	}
	if _, err := d.Step(schema.StepLocationSelection, &loc); err != nil {
		return fields{}, err
	}

	details, err := listing.FromSteps(d.Data)
	if err != nil {
		return fields{}, err
	}

	f := fields{
		PropertyType: pt.PropertyType,
		ListingType:  optional(basic.ListingType),
		Title:        optional(info.Title),
		City:         optional(loc.City),
		Locality:     optional(loc.Locality),
		Details:      details,
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

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
