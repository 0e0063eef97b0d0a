// Package mail sends transactional email such as password reset codes.
package mail

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNoRecipients = errors.New("mail: no recipients")
	ErrNoSender     = errors.New("mail: no sender")
)

// Message is a provider-neutral email. HTMLBody is sent as an alternative
// part when TextBody is also set.
type Message struct {
	From     string
	To       []string
	Cc       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail delivers messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
