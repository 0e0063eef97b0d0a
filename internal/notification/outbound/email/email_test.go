package email

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMail struct {
	sent []mail.Message
	err  error
}

func (c *captureMail) Send(_ context.Context, msg mail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (*captureMail) Close() error { return nil }

func TestMail_SendPasswordResetOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("single recipient message", func(t *testing.T) {
		client := &captureMail{}
		m := New(client, instrument.NewNoop())

		require.NoError(t, m.SendPasswordResetOTP(ctx, "ana@example.com", "Your code", "text 482913", "<p>482913</p>"))

		require.Len(t, client.sent, 1)
		assert.Equal(t, mail.Message{
			To:       []string{"ana@example.com"},
			Subject:  "Your code",
			TextBody: "text 482913",
			HTMLBody: "<p>482913</p>",
		}, client.sent[0])
	})

	t.Run("client error is returned", func(t *testing.T) {
		boom := errors.New("smtp down")
		m := New(&captureMail{err: boom}, instrument.NewNoop())

		err := m.SendPasswordResetOTP(ctx, "ana@example.com", "Your code", "t", "h")
		assert.ErrorIs(t, err, boom)
	})
}

func TestRecipientDomain(t *testing.T) {
	assert.Equal(t, "example.com", recipientDomain("ana@example.com"))
	assert.Equal(t, "", recipientDomain("not-an-address"))
}
