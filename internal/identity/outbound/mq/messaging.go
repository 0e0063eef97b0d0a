package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/dinebite/internal/identity/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

// Messaging publishes identity events.
type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

// NewMessaging wraps a messaging client.
func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

// PublishPasswordResetOTPIssued emits the event the notification module
// turns into an email.
func (m *Messaging) PublishPasswordResetOTPIssued(ctx context.Context, msg usecase.PasswordResetOTPIssuedEvent) (err error) {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishPasswordResetOTPIssued")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(event.PasswordResetOTPIssuedMessage{
		Email:     msg.Email,
		OTP:       msg.OTP,
		ExpiresAt: msg.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return m.client.Publish(ctx, event.PasswordResetOTPIssuedDestination, messaging.OutgoingMessage{
		Key:     []byte(msg.Email),
		Body:    body,
		Headers: []messaging.Header{{Key: event.HeaderCorrelationID, Value: instrument.GetCorrelationID(ctx)}},
	})
}
