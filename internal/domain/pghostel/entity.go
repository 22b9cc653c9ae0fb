package pghostel

import (
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

const EntityType = "PG_HOSTEL"

// Hostel is a PG, hostel or co-living listing.
type Hostel struct {
	ID                 uuid.UUID       `db:"id" json:"pgHostelId"`
	DraftID            *uuid.UUID      `db:"draft_id" json:"draftId,omitempty"`
	UserID             uuid.UUID       `db:"user_id" json:"userId"`
	PropertyName       string          `db:"property_name" json:"propertyName"`
	GenderAllowed      *string         `db:"gender_allowed" json:"genderAllowed,omitempty"`
	City               *string         `db:"city" json:"city,omitempty"`
	Locality           *string         `db:"locality" json:"locality,omitempty"`
	Lat                *float64        `db:"lat" json:"lat,omitempty"`
	Lng                *float64        `db:"lng" json:"lng,omitempty"`
	Details            listing.Details `db:"details" json:"details"`
	PublishStatus      string          `db:"publish_status" json:"publishStatus"`
	VerificationStatus string          `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string         `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID      `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time      `db:"verified_at" json:"verifiedAt,omitempty"`
	PublishedAt        *time.Time      `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}

type NearbyHostel struct {
	Hostel
	DistanceKm float64 `db:"distance_km" json:"distanceKm"`
}

type fields struct {
	PropertyName  string
	GenderAllowed *string
	City          *string
	Locality      *string
	Lat           *float64
	Lng           *float64
	Details       listing.Details
}
