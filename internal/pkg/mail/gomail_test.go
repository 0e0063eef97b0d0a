package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{})
	assert.ErrorIs(t, err, ErrSMTPHostRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "no-reply@dinebite.app"})
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestSMTP_Build(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "no-reply@dinebite.app"})
	require.NoError(t, err)

	_, err = s.build(Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrNoRecipients)

	m, err := s.build(Message{
		To:       []string{"ana@example.com"},
		Subject:  "Your DineBite verification code",
		TextBody: "code 482913",
		HTMLBody: "<b>482913</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"no-reply@dinebite.app"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "multipart/alternative")
	assert.Contains(t, buf.String(), "482913")

	noSender, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	_, err = noSender.build(Message{To: []string{"a@b.co"}})
	assert.ErrorIs(t, err, ErrNoSender)
}

func TestSMTP_SendCanceled(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "no-reply@dinebite.app"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, Message{To: []string{"a@b.co"}}), context.Canceled)
}

func TestLog_Send(t *testing.T) {
	l := NewLog()
	assert.NoError(t, l.Send(context.Background(), Message{To: []string{"a@b.co"}}))
	assert.ErrorIs(t, l.Send(context.Background(), Message{}), ErrNoRecipients)
}
