package business

import "strings"

// BusinessRequest carries the agency form of the partner app.
type BusinessRequest struct {
	AgencyName               string `json:"agencyName" validate:"required,min=1,max=255"`
	AgencyRegistrationNumber string `json:"agencyRegistrationNumber" validate:"required,min=1,max=100"`
	AgencyAddress            string `json:"agencyAddress" validate:"required,min=1,max=1000"`
	AgencyEmail              string `json:"agencyEmail" validate:"required,email,max=255"`
	AgencyPhone              string `json:"agencyPhone" validate:"required,phone"`
}

func (r *BusinessRequest) details() Details {
	return Details{
		Name:               strings.TrimSpace(r.AgencyName),
		RegistrationNumber: strings.TrimSpace(r.AgencyRegistrationNumber),
		Address:            strings.TrimSpace(r.AgencyAddress),
		Email:              strings.ToLower(strings.TrimSpace(r.AgencyEmail)),
		Phone:              strings.TrimSpace(r.AgencyPhone),
	}
}

type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	Notes  string `json:"notes" validate:"max=2000"`
}
