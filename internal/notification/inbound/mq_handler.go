package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/dinebite/internal/notification/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/shared/event"
)

// MQHandler decodes notification events for the use case.
type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(event.HeaderCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// PasswordResetOTPNotification handles password_reset_otp_issued.
func (h *MQHandler) PasswordResetOTPNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordResetOTPNotification")
	defer span.End()

	body := msg.Body()

	var payload event.PasswordResetOTPIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password reset otp notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: password reset otp notification", "email", payload.Email)

	if err := h.uc.ConsumePasswordResetOTP(ctx, usecase.ConsumePasswordResetOTPInput{
		Email:     payload.Email,
		OTP:       payload.OTP,
		ExpiresAt: payload.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume password reset otp", "email", payload.Email, "error", err)
		return err
	}

	return nil
}
