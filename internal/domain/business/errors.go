package business

import "errors"

var (
	ErrBusinessNotFound    = errors.New("business not found")
	ErrAlreadyOnboarded    = errors.New("business onboarding already completed")
	ErrInvalidVerification = errors.New("invalid verification status")
	ErrUserNotFound        = errors.New("user not found")
)
