package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

const (
	EntityType    = "PROJECT"
	StatusActive  = "ACTIVE"
	defaultStatus = StatusActive
)

type Project struct {
	ID                 uuid.UUID       `db:"id" json:"projectId"`
	DraftID            *uuid.UUID      `db:"draft_id" json:"draftId,omitempty"`
	UserID             uuid.UUID       `db:"user_id" json:"userId"`
	ProjectName        string          `db:"project_name" json:"projectName"`
	Status             string          `db:"status" json:"status"`
	Lat                *float64        `db:"lat" json:"lat,omitempty"`
	Lng                *float64        `db:"lng" json:"lng,omitempty"`
	Details            listing.Details `db:"project_details" json:"projectDetails"`
	PublishStatus      string          `db:"publish_status" json:"publishStatus"`
	VerificationStatus string          `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string         `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID      `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time      `db:"verified_at" json:"verifiedAt,omitempty"`
	PublishedAt        *time.Time      `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}

// City is read from the details document.
func (p *Project) City() string {
	city, _ := p.Details["city"].(string)
	return city
}

// NearbyProject is a search hit with its distance from the query point.
type NearbyProject struct {
	Project
	DistanceKm float64 `db:"distance_km" json:"distanceKm"`
}

type Filter struct {
	City        string
	ProjectType string
	Status      string
	Search      string
}

type fields struct {
	ProjectName string
	Lat         *float64
	Lng         *float64
	Details     listing.Details
}
