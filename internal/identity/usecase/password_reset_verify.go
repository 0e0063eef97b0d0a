package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/otpcode"
)

type VerifyResetOTPInput struct {
	Email string `validate:"required"`
	OTP   string `validate:"required"`
}

// VerifyResetOTP consumes the newest live code matching email and otp.
// Unknown, expired, used and concurrently consumed codes all fail the same
// way.
func (s *Usecase) VerifyResetOTP(ctx context.Context, in VerifyResetOTPInput) error {
	ctx, span := s.startSpan(ctx, "VerifyResetOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if !otpcode.Valid(in.OTP) {
		return errInvalidCode
	}

	digest, err := s.digest(in.OTP)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err, msgFailedVerifyOTP)
	}

	otp, err := s.repoDB.GetRedeemablePasswordResetOTP(ctx, in.Email, digest, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset otp not redeemable", "email", in.Email)
		return errInvalidCode
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get redeemable password reset otp", "email", in.Email, "error", err)
		return goerror.NewServer(err, msgFailedVerifyOTP)
	}

	ok, err := s.repoDB.MarkPasswordResetOTPUsed(ctx, otp.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark password reset otp used", "otp_id", otp.ID, "error", err)
		return goerror.NewServer(err, msgFailedVerifyOTP)
	}
	if !ok {
		slog.WarnContext(ctx, "password reset otp consumed concurrently", "otp_id", otp.ID)
		return errInvalidCode
	}

	return nil
}
