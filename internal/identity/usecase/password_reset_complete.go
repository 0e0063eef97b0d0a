package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/otpcode"
)

type ResetPasswordWithOTPInput struct {
	Email       string `validate:"required"`
	OTP         string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

// ResetPasswordWithOTP replaces the account password using a verified code,
// then removes every code issued for the email.
func (s *Usecase) ResetPasswordWithOTP(ctx context.Context, in ResetPasswordWithOTPInput) error {
	ctx, span := s.startSpan(ctx, "ResetPasswordWithOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if !otpcode.Valid(in.OTP) {
		return errInvalidSession
	}

	digest, err := s.digest(in.OTP)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err, msgFailedResetPass)
	}

	if _, err := s.repoDB.GetVerifiedPasswordResetOTP(ctx, in.Email, digest, s.clock.Now()); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "password reset without verified otp", "email", in.Email)
			return errInvalidSession
		}
		slog.ErrorContext(ctx, "failed to repo get verified password reset otp", "email", in.Email, "error", err)
		return goerror.NewServer(err, msgFailedResetPass)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset for unknown user", "email", in.Email)
		return errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err, msgFailedResetPass)
	}

	newHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err, msgFailedResetPass)
	}

	if err := s.repoDB.ResetPasswordWithOTP(ctx, user.ID, in.Email, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err, msgFailedResetPass)
	}

	return nil
}
