package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/dinebite/internal/identity/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/goroutine"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
)

type purger interface {
	PurgeExpiredOTP(ctx context.Context) (*usecase.PurgeExpiredOTPOutput, error)
	PurgeInterval() time.Duration
}

// RegisterJob starts the expired reset code sweeper. It stops with ctx.
func RegisterJob(ctx context.Context, routine *goroutine.Manager, uuid uid.StringID, uc purger) {
	routine.Go(ctx, func(ctx context.Context) error {
		interval := uc.PurgeInterval()
		slog.InfoContext(ctx, "Running job for purging expired password reset otp", "interval", interval.String())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				runPurge(instrument.SetCorrelationID(ctx, uuid.Generate()), uc)
			}
		}
	})
}

func runPurge(ctx context.Context, uc purger) {
	out, err := uc.PurgeExpiredOTP(ctx)
	if err != nil {
		slog.WarnContext(ctx, "purge expired password reset otp failed", "error", err)
		return
	}
	if out.Skipped {
		slog.DebugContext(ctx, "purge expired password reset otp skipped, owned by another replica")
	}
}
