package mail

import (
	"context"
	"log/slog"
)

// Log writes messages to the logger instead of sending them. Used when no
// SMTP server is configured.
type Log struct{}

// NewLog returns a Mail that only logs.
func NewLog() *Log { return &Log{} }

func (*Log) Send(ctx context.Context, msg Message) error {
	if len(msg.To)+len(msg.Cc) == 0 {
		return ErrNoRecipients
	}

	slog.InfoContext(ctx, "mail not sent, log driver active", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (*Log) Close() error { return nil }
