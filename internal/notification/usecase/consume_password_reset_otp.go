package usecase

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"
)

type ConsumePasswordResetOTPInput struct {
	Email     string `validate:"required,email"`
	OTP       string `validate:"required,len=6,numeric"`
	ExpiresAt time.Time
}

// ConsumePasswordResetOTP emails a freshly issued reset code. Malformed
// events are dropped; delivery failures are returned so the broker can
// redeliver.
func (s *Usecase) ConsumePasswordResetOTP(ctx context.Context, in ConsumePasswordResetOTPInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordResetOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	now := s.clock.Now()
	if !in.ExpiresAt.IsZero() && now.After(in.ExpiresAt) {
		slog.WarnContext(ctx, "password reset otp expired before delivery", "email", in.Email)
		return nil
	}

	ttl := 0
	if !in.ExpiresAt.IsZero() {
		ttl = int(math.Ceil(in.ExpiresAt.Sub(now).Minutes()))
	}

	data := s.baseEmailTemplateData()
	data["otp"] = in.OTP
	data["ttl_minutes"] = strconv.Itoa(ttl)
	data["expires_at"] = in.ExpiresAt.UTC().Format("15:04 MST")

	html, text, err := s.render("password_reset_otp", data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render password reset otp email", "email", in.Email, "error", err)
		return nil
	}

	subject := "Your " + data["app_name"].(string) + " password reset code"
	if err := s.repoMail.SendPasswordResetOTP(ctx, in.Email, subject, text, html); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset otp email", "email", in.Email, "error", err)
		return err
	}

	return nil
}
