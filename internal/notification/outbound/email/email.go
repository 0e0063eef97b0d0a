// Package email delivers notification emails through the configured mail
// client.
package email

import (
	"context"
	"strings"

	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const templatePasswordResetOTP = "password_reset_otp"

// Mail is the notification module's outbound email adapter.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

// New wraps client. The sender address comes from the client's own config.
func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

// SendPasswordResetOTP emails a rendered reset code message to a single
// recipient.
func (m *Mail) SendPasswordResetOTP(ctx context.Context, to, subject, textBody, htmlBody string) (err error) {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "SendPasswordResetOTP",
		trace.WithAttributes(
			attribute.String("mail.template", templatePasswordResetOTP),
			attribute.String("mail.recipient_domain", recipientDomain(to)),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return m.client.Send(ctx, mail.Message{
		To:       []string{to},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}

func recipientDomain(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}

	return ""
}
