package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/dinebite/internal/identity/entity"
	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
)

type RequestPasswordResetInput struct {
	Email string `validate:"required"`
}

type RequestPasswordResetOutput struct {
	// OTP is only set when the service is configured to expose codes.
	OTP string
}

// RequestPasswordReset issues a new code for the email. The email does not
// need to belong to an account, and earlier codes stay valid unless
// invalidate_previous is enabled.
func (s *Usecase) RequestPasswordReset(ctx context.Context, in RequestPasswordResetInput) (*RequestPasswordResetOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestPasswordReset")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err, msgFailedGenerateOTP)
	}

	digest, err := s.digest(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err, msgFailedGenerateOTP)
	}

	now := s.clock.Now()
	otp := entity.PasswordResetOTP{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		OTP:       digest,
		ExpiresAt: now.Add(s.otpTTL()),
		CreatedAt: now,
	}

	if err := s.repoDB.CreatePasswordResetOTP(ctx, otp, s.cfg.GetBool(keyInvalidatePrevious)); err != nil {
		slog.ErrorContext(ctx, "failed to repo create password reset otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err, msgFailedGenerateOTP)
	}

	if err := s.repoMessaging.PublishPasswordResetOTPIssued(ctx, PasswordResetOTPIssuedEvent{
		Email:     otp.Email,
		OTP:       code,
		ExpiresAt: otp.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish password reset otp issued", "email", in.Email, "error", err)
	}

	out := &RequestPasswordResetOutput{}
	if s.cfg.GetBool(keyExposeOTP) {
		out.OTP = code
	}

	return out, nil
}
