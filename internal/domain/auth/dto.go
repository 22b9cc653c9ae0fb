package auth

import (
	"strings"

	"github.com/Avi9631/partner-platform/internal/domain/user"
)

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// OTPSent tells the client how long the code lives and when it may ask again.
type OTPSent struct {
	ExpiresIn   int `json:"expiresIn"`
	ResendAfter int `json:"resendAfter"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int    `json:"expiresIn"`
}

type AuthResponse struct {
	TokenPair
	User      *user.User `json:"user"`
	IsNewUser bool       `json:"isNewUser"`
}

// normalizePhone drops formatting characters users commonly type.
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}
