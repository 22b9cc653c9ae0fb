package developer

import (
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/listing"
)

// EntityType is stored on published drafts and in debit metadata.
const EntityType = "DEVELOPER"

type Developer struct {
	ID                        uuid.UUID       `db:"id" json:"developerId"`
	DraftID                   *uuid.UUID      `db:"draft_id" json:"draftId,omitempty"`
	UserID                    uuid.UUID       `db:"user_id" json:"userId"`
	DeveloperName             string          `db:"developer_name" json:"developerName"`
	DeveloperType             *string         `db:"developer_type" json:"developerType,omitempty"`
	Description               *string         `db:"description" json:"description,omitempty"`
	EstablishedYear           *int            `db:"established_year" json:"establishedYear,omitempty"`
	Website                   *string         `db:"website" json:"website,omitempty"`
	SubscribeForDeveloperPage bool            `db:"subscribe_for_developer_page" json:"subscribeForDeveloperPage"`
	Details                   listing.Details `db:"details" json:"details"`
	PublishStatus             string          `db:"publish_status" json:"publishStatus"`
	VerificationStatus        string          `db:"verification_status" json:"verificationStatus"`
	VerificationNotes         *string         `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy                *uuid.UUID      `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt                *time.Time      `db:"verified_at" json:"verifiedAt,omitempty"`
	PublishedAt               *time.Time      `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt                 time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time       `db:"updated_at" json:"updatedAt"`
}

// Filter narrows List. An empty PublishStatus means PUBLISHED.
type Filter struct {
	DeveloperType      string
	PublishStatus      string
	VerificationStatus string
	Search             string
}

// fields are the columns a publish writes.
type fields struct {
	DeveloperName             string
	DeveloperType             *string
	Description               *string
	EstablishedYear           *int
	Website                   *string
	SubscribeForDeveloperPage bool
	Details                   listing.Details
}
