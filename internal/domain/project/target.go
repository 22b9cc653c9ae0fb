package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/listing"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/schema"
)

// Target publishes project drafts.
type Target struct {
	repo *Repository
}

func NewTarget(repo *Repository) *Target {
	return &Target{repo: repo}
}

func (t *Target) DraftType() draft.Type { return draft.TypeProject }
func (t *Target) EntityType() string    { return EntityType }
func (t *Target) EntityKey() string     { return "project" }
func (t *Target) Label() string         { return "Project" }

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

func Preview(p *Project) publish.Preview {
	return publish.Preview{
		"projectId":   p.ID,
		"projectName": p.ProjectName,
		"city":        p.City(),
		"status":      p.Status,
	}
}

func fieldsFromDraft(d *draft.Draft) (fields, error) {
	var basic schema.ProjectBasicDetails
	ok, err := d.Step(schema.StepBasicDetails, &basic)
	if err != nil {
		return fields{}, err
	}
	if !ok || basic.ProjectName == "" {
		return fields{}, schema.MissingStepError(schema.StepBasicDetails)
	}

	var (
		loc     schema.LocationDetails
		configs schema.ProjectConfigurations
		pricing schema.ProjectPricing
		amen    schema.Amenities
		legal   schema.ProjectLegalDocs
		media   schema.ProjectMedia
	)
	steps := []struct {
		id schema.StepID
		v  interface{}
	}{
		{schema.StepLocationDetails, &loc},
		{schema.StepConfigurations, &configs},
		{schema.StepPricing, &pricing},
		{schema.StepAmenities, &amen},
		{schema.StepLegalDocs, &legal},
		{schema.StepMediaUpload, &media},
	}
	for _, s := range steps {
		if _, err := d.Step(s.id, s.v); err != nil {
			return fields{}, err
		}
	}

	details := listing.Details{}
	details.Set("description", basic.Description)
	details.Set("projectType", basic.ProjectType)
	details.Set("projectStatus", basic.ProjectStatus)
	details.Set("developerName", basic.DeveloperName)
	details.Set("developerId", basic.DeveloperID)
	details.Set("launchDate", basic.LaunchDate)
	details.Set("possessionDate", basic.PossessionDate)
	details.Set("completionDate", basic.CompletionDate)

	details.Set("city", loc.City)
	details.Set("locality", loc.Locality)
	details.Set("area", loc.Area)
	details.Set("addressText", loc.AddressText)
	details.Set("landmark", loc.Landmark)

	details.Set("totalUnits", configs.TotalUnits)
	details.Set("totalTowers", configs.TotalTowers)
	details.Set("totalAcres", configs.TotalAcres)

	if pricing.PriceRange != nil {
		details["priceRange"] = map[string]string{"min": pricing.PriceRange.Min, "max": pricing.PriceRange.Max}
	}
	details.Set("amenities", amen.Amenities)
	details.Set("features", amen.Features)
	details.Set("reraNumber", legal.ReraNumber)
	details.Set("images", media.Images)
	details.Set("videos", media.Videos)
	details.Set("brochure", media.Brochure)
	details.Set("floorPlans", media.FloorPlans)

	f := fields{ProjectName: basic.ProjectName, Details: details}
	if loc.Coordinates != nil {
		f.Lat, f.Lng = loc.Coordinates.Lat, loc.Coordinates.Lng
	}
	return f, nil
}
