package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

const EntityType = "PROPERTY"

const untitled = "Untitled Property"

type Property struct {
	ID                 uuid.UUID       `db:"id" json:"propertyId"`
	DraftID            *uuid.UUID      `db:"draft_id" json:"draftId,omitempty"`
	UserID             uuid.UUID       `db:"user_id" json:"userId"`
	PropertyType       string          `db:"property_type" json:"propertyType"`
	ListingType        *string         `db:"listing_type" json:"listingType,omitempty"`
	Title              *string         `db:"title" json:"title,omitempty"`
	City               *string         `db:"city" json:"city,omitempty"`
	Locality           *string         `db:"locality" json:"locality,omitempty"`
	Lat                *float64        `db:"lat" json:"lat,omitempty"`
	Lng                *float64        `db:"lng" json:"lng,omitempty"`
	Details            listing.Details `db:"property_details" json:"propertyDetails"`
	PublishStatus      string          `db:"publish_status" json:"publishStatus"`
	VerificationStatus string          `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string         `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID      `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time      `db:"verified_at" json:"verifiedAt,omitempty"`
	PublishedAt        *time.Time      `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}

type NearbyProperty struct {
	Property
	DistanceKm float64 `db:"distance_km" json:"distanceKm"`
}

type fields struct {
	PropertyType string
	ListingType  *string
	Title        *string
	City         *string
	Locality     *string
	Lat          *float64
	Lng          *float64
	Details      listing.Details
}
