package auth

import (
	"context"

	"github.com/Avi9631/partner-platform/internal/pkg/logger"
)

// Sender delivers a one-time code to a phone.
type Sender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending them. The code itself
// is only logged when reveal is set.
type LogSender struct {
	reveal bool
}

func NewLogSender(reveal bool) *LogSender {
	return &LogSender{reveal: reveal}
}

func (s *LogSender) SendOTP(ctx context.Context, phone, code string) error {
	if !s.reveal {
		code = "******"
	}
	logger.LogInfo(ctx, "OTP issued", "phone", maskPhone(phone), "code", code)
	return nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return phone[:len(phone)-4] + "****"
}
