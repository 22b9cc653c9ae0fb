package business

import (
	"time"

	"github.com/google/uuid"
)

// Status is partner_businesses.business_status.
type Status string

const (
	StatusPendingVerification Status = "PENDING_VERIFICATION"
	StatusActive              Status = "ACTIVE"
)

// Verification statuses of a business profile.
const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

// TypeBusiness is the only business type partners register today.
const TypeBusiness = "BUSINESS"

// Business is the agency or firm a partner lists on behalf of
// (partner_businesses). A user owns at most one.
type Business struct {
	ID                 uuid.UUID  `db:"id" json:"businessId"`
	UserID             uuid.UUID  `db:"user_id" json:"userId"`
	Name               string     `db:"business_name" json:"businessName"`
	RegistrationNumber string     `db:"registration_number" json:"registrationNumber"`
	Address            string     `db:"business_address" json:"businessAddress"`
	Email              string     `db:"business_email" json:"businessEmail"`
	Phone              string     `db:"business_phone" json:"businessPhone"`
	Type               string     `db:"business_type" json:"businessType"`
	Status             Status     `db:"business_status" json:"businessStatus"`
	VerificationStatus string     `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string    `db:"verification_notes" json:"verificationNotes,omitempty"`
	VerifiedBy         *uuid.UUID `db:"verified_by" json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time `db:"verified_at" json:"verifiedAt,omitempty"`
	OnboardedAt        *time.Time `db:"onboarded_at" json:"onboardedAt,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// IsVerified returns true if the business was approved
func (b *Business) IsVerified() bool {
	return b.VerificationStatus == VerificationApproved
}

// Details is the partner-editable part of a business.
type Details struct {
	Name               string
	RegistrationNumber string
	Address            string
	Email              string
	Phone              string
}

// Filter narrows the admin business list.
type Filter struct {
	Status             string
	VerificationStatus string
	Type               string
	Search             string
}

// Blank reports required fields that are empty once trimmed.
func (d Details) Blank() map[string]string {
	errs := map[string]string{}
	for field, v := range map[string]string{
		"agencyName":               d.Name,
		"agencyRegistrationNumber": d.RegistrationNumber,
		"agencyAddress":            d.Address,
		"agencyEmail":              d.Email,
		"agencyPhone":              d.Phone,
	} {
		if v == "" {
			errs[field] = "This field is required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
