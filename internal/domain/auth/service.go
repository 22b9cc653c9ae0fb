package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Avi9631/partner-platform/internal/domain/user"
	"github.com/Avi9631/partner-platform/internal/pkg/jwt"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
	"github.com/Avi9631/partner-platform/internal/pkg/otp"
)

// Users is the part of the user repository that sign-in needs.
type Users interface {
	FindOrCreateByPhone(ctx context.Context, phone string) (*user.User, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// Config holds OTP limits.
type Config struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
}

// Service implements phone sign-in and session refresh.
type Service struct {
	users  Users
	codes  CodeStore
	tokens TokenStore
	jwt    *jwt.Service
	sender Sender
	cfg    Config
}

func NewService(users Users, codes CodeStore, tokens TokenStore, jwtService *jwt.Service, sender Sender, cfg Config) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Service{users: users, codes: codes, tokens: tokens, jwt: jwtService, sender: sender, cfg: cfg}
}

// SendOTP issues a fresh code for the phone.
func (s *Service) SendOTP(ctx context.Context, phone string) (*OTPSent, error) {
	phone = normalizePhone(phone)

	code, err := otp.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	hash, err := otp.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}
	if err := s.codes.SaveCode(ctx, phone, hash, s.cfg.CodeTTL, s.cfg.ResendCooldown); err != nil {
		return nil, err
	}
	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		_ = s.codes.DeleteCode(ctx, phone)
		return nil, fmt.Errorf("deliver otp: %w", err)
	}

	return &OTPSent{
		ExpiresIn:   int(s.cfg.CodeTTL.Seconds()),
		ResendAfter: int(s.cfg.ResendCooldown.Seconds()),
	}, nil
}

// ResendOTP replaces any pending code once the cooldown has passed.
func (s *Service) ResendOTP(ctx context.Context, phone string) (*OTPSent, error) {
	return s.SendOTP(ctx, phone)
}

// VerifyOTP checks the code and signs the user in, creating the account on
// first login.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*AuthResponse, error) {
	phone = normalizePhone(phone)

	hash, attempts, err := s.codes.GetCode(ctx, phone)
	if err != nil {
		return nil, err
	}
	if attempts >= s.cfg.MaxAttempts {
		_ = s.codes.DeleteCode(ctx, phone)
		return nil, ErrTooManyAttempts
	}

	if !otp.Verify(code, hash) {
		n, err := s.codes.IncrementAttempts(ctx, phone)
		if err != nil {
			return nil, err
		}
		if n >= s.cfg.MaxAttempts {
			_ = s.codes.DeleteCode(ctx, phone)
			logger.LogWarn(ctx, "OTP attempts exhausted", "phone", maskPhone(phone))
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidCode
	}

	if err := s.codes.DeleteCode(ctx, phone); err != nil {
		return nil, err
	}

	u, created, err := s.users.FindOrCreateByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u.IsSuspended() {
		return nil, ErrUserSuspended
	}
	if err := s.users.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.LogWarn(ctx, "Failed to update last login", "user_id", u.ID.String(), "error", err.Error())
	}

	pair, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	if created {
		logger.LogInfo(ctx, "Partner signed up", "user_id", u.ID.String())
	}

	return &AuthResponse{TokenPair: *pair, User: u, IsNewUser: created}, nil
}

// Refresh rotates a refresh token. The presented token is consumed even
// when the user turns out to be suspended.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := s.tokens.TakeRefresh(ctx, jwt.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if u.IsSuspended() {
		return nil, ErrUserSuspended
	}

	return s.issue(ctx, u)
}

// Logout revokes a refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.DeleteRefresh(ctx, jwt.HashToken(refreshToken))
}

func (s *Service) issue(ctx context.Context, u *user.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.tokens.SaveRefresh(ctx, jwt.HashToken(refresh), u.ID, s.jwt.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwt.AccessTTL().Seconds()),
	}, nil
}
