package user

import "strings"

type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName" validate:"max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *UpdateProfileRequest) profile() Profile {
	return newProfile(r.FirstName, r.LastName, r.Email)
}

type OnboardingRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

func (r *OnboardingRequest) profile() Profile {
	return newProfile(r.FirstName, r.LastName, r.Email)
}

func newProfile(first, last string, email *string) Profile {
	p := Profile{FirstName: strings.TrimSpace(first), LastName: strings.TrimSpace(last)}
	if email != nil {
		if e := strings.ToLower(strings.TrimSpace(*email)); e != "" {
			p.Email = &e
		}
	}
	return p
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACTIVE SUSPENDED"`
}

type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	Notes  string `json:"notes" validate:"max=2000"`
}
