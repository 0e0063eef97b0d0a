package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/idempotency"
)

type PurgeExpiredOTPOutput struct {
	Deleted int64
	// Skipped is true when another replica owns this interval.
	Skipped bool
}

// PurgeExpiredOTP deletes expired reset codes. Runs are keyed by interval
// window so replicas sharing redis purge once per window.
func (s *Usecase) PurgeExpiredOTP(ctx context.Context) (*PurgeExpiredOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "PurgeExpiredOTP")
	defer span.End()

	interval := s.PurgeInterval()
	now := s.clock.Now()
	key := "identity:otp-purge:" + strconv.FormatInt(now.Truncate(interval).Unix(), 10)

	out := &PurgeExpiredOTPOutput{}
	err := s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		n, err := s.repoDB.DeleteExpiredPasswordResetOTP(ctx, now)
		out.Deleted = n
		return err
	}, idempotency.WithLockTTL(interval), idempotency.WithStateTTL(interval))

	switch {
	case errors.Is(err, idempotency.ErrInProgress),
		errors.Is(err, idempotency.ErrCompleted),
		errors.Is(err, idempotency.ErrFailed):
		out.Skipped = true
		return out, nil
	case err != nil:
		slog.ErrorContext(ctx, "failed to purge expired password reset otp", "error", err)
		return nil, goerror.NewServer(err)
	}

	if out.Deleted > 0 {
		slog.InfoContext(ctx, "purged expired password reset otp", "deleted", out.Deleted)
	}

	return out, nil
}
