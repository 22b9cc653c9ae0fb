package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrResendCooldown      = errors.New("otp resend cooldown active")
	ErrCodeExpired         = errors.New("otp expired or not requested")
	ErrInvalidCode         = errors.New("invalid otp")
	ErrTooManyAttempts     = errors.New("too many otp attempts")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserSuspended       = errors.New("user is suspended")
)

// CooldownError carries the wait before another code may be sent.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("otp resend cooldown active, retry in %s", e.RetryAfter)
}

func (e *CooldownError) Unwrap() error { return ErrResendCooldown }
