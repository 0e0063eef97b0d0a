// Package messaging publishes and consumes events on NATS, NSQ, Kafka or an
// in-process broker, behind one interface.
//
// Every driver acks a message when the handler returns nil and nacks it (or
// leaves it uncommitted) otherwise.
package messaging

import (
	"context"
	"errors"
	"io"
)

var (
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
	ErrGroupRequired   = errors.New("messaging: consumer group is required")
	ErrClosed          = errors.New("messaging: client closed")
)

// Messaging publishes and consumes messages on a broker.
type Messaging interface {
	io.Closer

	Publish(ctx context.Context, topic string, msg OutgoingMessage) error

	// Consume blocks until ctx is done or the subscription fails.
	Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error
}

// Handler processes one message. A returned error asks for redelivery.
type Handler func(ctx context.Context, msg Message) error

type Header struct {
	Key   string
	Value string
}

// OutgoingMessage is a body with optional headers.
type OutgoingMessage struct {
	Key     []byte
	Body    []byte
	Headers []Header
}

// Message is a delivered message.
type Message interface {
	Topic() string
	Body() []byte
	// Header returns the first value for key, or "".
	Header(key string) string
}

type consumeOptions struct {
	group       string
	concurrency int
}

type ConsumeOption func(*consumeOptions)

// WithGroup names the consumer group. Members of one group share the stream
// (Kafka group id, NSQ channel, NATS queue group).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithConcurrency sets the number of handler goroutines.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

func newConsumeOptions(opts []ConsumeOption) consumeOptions {
	o := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

func validateConsume(topic string, h Handler, o consumeOptions) error {
	switch {
	case topic == "":
		return ErrTopicRequired
	case h == nil:
		return ErrHandlerRequired
	case o.group == "":
		return ErrGroupRequired
	}
	return nil
}

func firstHeader(headers []Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return h.Value
		}
	}
	return ""
}
