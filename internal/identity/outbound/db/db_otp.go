package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/dinebite/internal/identity/entity"
	"github.com/shandysiswandi/dinebite/internal/pkg/sqlc"
)

// CreatePasswordResetOTP stores otp. With invalidatePrevious every earlier
// code for the email, verified or not, is deleted in the same transaction.
func (s *DB) CreatePasswordResetOTP(ctx context.Context, otp entity.PasswordResetOTP, invalidatePrevious bool) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePasswordResetOTP")
	defer func() { s.endSpan(span, err) }()

	params := sqlc.CreateIdentityPasswordResetOTPParams{
		ID:        otp.ID,
		Email:     otp.Email,
		Otp:       otp.OTP,
		ExpiresAt: timestamptz(otp.ExpiresAt),
		CreatedAt: timestamptz(otp.CreatedAt),
	}

	if !invalidatePrevious {
		return s.mapError(s.query.CreateIdentityPasswordResetOTP(ctx, params))
	}

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if _, err := q.DeleteIdentityPasswordResetOTPByEmail(ctx, otp.Email); err != nil {
			return err
		}

		return q.CreateIdentityPasswordResetOTP(ctx, params)
	})
}

// GetRedeemablePasswordResetOTP returns the newest unused, unexpired record
// matching email and digest.
func (s *DB) GetRedeemablePasswordResetOTP(ctx context.Context, email, digest string, now time.Time) (_ *entity.PasswordResetOTP, err error) {
	ctx, span := s.startSpan(ctx, "GetRedeemablePasswordResetOTP")
	defer func() { s.endSpan(span, err) }()

	result, err := s.query.GetIdentityRedeemablePasswordResetOTP(ctx, sqlc.GetIdentityRedeemablePasswordResetOTPParams{
		Email: email,
		Otp:   digest,
		Now:   timestamptz(now),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return toPasswordResetOTP(result), nil
}

// GetVerifiedPasswordResetOTP returns the newest verified, unexpired record
// matching email and digest.
func (s *DB) GetVerifiedPasswordResetOTP(ctx context.Context, email, digest string, now time.Time) (_ *entity.PasswordResetOTP, err error) {
	ctx, span := s.startSpan(ctx, "GetVerifiedPasswordResetOTP")
	defer func() { s.endSpan(span, err) }()

	result, err := s.query.GetIdentityVerifiedPasswordResetOTP(ctx, sqlc.GetIdentityVerifiedPasswordResetOTPParams{
		Email: email,
		Otp:   digest,
		Now:   timestamptz(now),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return toPasswordResetOTP(result), nil
}

// MarkPasswordResetOTPUsed flips is_used only if it is still false. It
// returns false when another caller flipped it first.
func (s *DB) MarkPasswordResetOTPUsed(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkPasswordResetOTPUsed")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.query.MarkIdentityPasswordResetOTPUsed(ctx, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return rows == 1, nil
}

// ResetPasswordWithOTP overwrites the credential and deletes every reset
// code for email in one transaction.
func (s *DB) ResetPasswordWithOTP(ctx context.Context, userID int64, email, newHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetPasswordWithOTP")
	defer func() { s.endSpan(span, err) }()

	return s.inTx(ctx, func(q *sqlc.Queries) error {
		if err := q.UpsertIdentityUserCredential(ctx, sqlc.UpsertIdentityUserCredentialParams{
			UserID:   userID,
			Password: newHash,
		}); err != nil {
			return err
		}

		_, err := q.DeleteIdentityPasswordResetOTPByEmail(ctx, email)
		return err
	})
}

// DeleteExpiredPasswordResetOTP removes every record that expired before now.
func (s *DB) DeleteExpiredPasswordResetOTP(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredPasswordResetOTP")
	defer func() { s.endSpan(span, err) }()

	n, err := s.query.DeleteIdentityExpiredPasswordResetOTP(ctx, timestamptz(now))
	if err != nil {
		return 0, s.mapError(err)
	}

	return n, nil
}

func toPasswordResetOTP(o sqlc.IdentityPasswordResetOtp) *entity.PasswordResetOTP {
	return &entity.PasswordResetOTP{
		ID:        o.ID,
		Email:     o.Email,
		OTP:       o.Otp,
		ExpiresAt: o.ExpiresAt.Time,
		IsUsed:    o.IsUsed,
		CreatedAt: o.CreatedAt.Time,
	}
}
