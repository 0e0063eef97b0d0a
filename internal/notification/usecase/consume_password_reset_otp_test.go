package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/mail"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	sent []mail.Message
	err  error
}

func (o *outbox) SendPasswordResetOTP(_ context.Context, to, subject, textBody, htmlBody string) error {
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, mail.Message{To: []string{to}, Subject: subject, TextBody: textBody, HTMLBody: htmlBody})
	return nil
}

func newUsecase(t *testing.T, box *outbox, now time.Time) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: DineBite
modules:
  notification:
    support_email: support@dinebite.test
    company_name: DineBite Labs
`))
	require.NoError(t, err)

	v, err := validator.NewV10()
	require.NoError(t, err)

	uc, err := NewNotification(Dependency{
		Config:     cfg,
		Clock:      clock.NewFixed(now),
		Validator:  v,
		RepoMail:   box,
		Instrument: instrument.NewNoop(),
	})
	require.NoError(t, err)

	return uc
}

func TestConsumePasswordResetOTP(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("sends html and text bodies", func(t *testing.T) {
		box := &outbox{}
		uc := newUsecase(t, box, now)

		err := uc.ConsumePasswordResetOTP(ctx, ConsumePasswordResetOTPInput{
			Email:     "ana@example.com",
			OTP:       "482913",
			ExpiresAt: now.Add(10 * time.Minute),
		})
		require.NoError(t, err)

		require.Len(t, box.sent, 1)
		msg := box.sent[0]
		assert.Equal(t, []string{"ana@example.com"}, msg.To)
		assert.Equal(t, "Your DineBite password reset code", msg.Subject)
		assert.Contains(t, msg.HTMLBody, "482913")
		assert.Contains(t, msg.TextBody, "Your code: 482913")
		assert.Contains(t, msg.TextBody, "expires in 10 minutes")
		assert.Contains(t, msg.HTMLBody, "support@dinebite.test")
	})

	t.Run("drops malformed event", func(t *testing.T) {
		box := &outbox{}
		uc := newUsecase(t, box, now)

		err := uc.ConsumePasswordResetOTP(ctx, ConsumePasswordResetOTPInput{Email: "ana@example.com", OTP: "12"})
		assert.NoError(t, err)
		assert.Empty(t, box.sent)
	})

	t.Run("drops expired code", func(t *testing.T) {
		box := &outbox{}
		uc := newUsecase(t, box, now)

		err := uc.ConsumePasswordResetOTP(ctx, ConsumePasswordResetOTPInput{
			Email: "ana@example.com", OTP: "482913", ExpiresAt: now.Add(-time.Second),
		})
		assert.NoError(t, err)
		assert.Empty(t, box.sent)
	})

	t.Run("returns delivery failure", func(t *testing.T) {
		box := &outbox{err: errors.New("smtp: 421 try later")}
		uc := newUsecase(t, box, now)

		err := uc.ConsumePasswordResetOTP(ctx, ConsumePasswordResetOTPInput{
			Email: "ana@example.com", OTP: "482913", ExpiresAt: now.Add(time.Minute),
		})
		assert.Error(t, err)
	})
}
