package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already in use")
	ErrAlreadyOnboarded    = errors.New("onboarding already completed")
	ErrInvalidStatus       = errors.New("invalid user status")
	ErrInvalidVerification = errors.New("invalid verification status")
)
