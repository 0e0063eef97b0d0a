package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig is the server URL plus extra connect options.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

type natsMessage struct{ m *nats.Msg }

func (n natsMessage) Topic() string            { return n.m.Subject }
func (n natsMessage) Body() []byte             { return n.m.Data }
func (n natsMessage) Header(key string) string { return n.m.Header.Get(key) }

// NATS uses core NATS subjects with queue groups.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to the server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

func (n *NATS) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := nats.NewMsg(topic)
	m.Data = msg.Body
	for _, h := range msg.Headers {
		m.Header.Add(h.Key, h.Value)
	}

	if err := n.conn.PublishMsg(m); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}

	return n.conn.Flush()
}

func (n *NATS) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	o := newConsumeOptions(opts)
	if err := validateConsume(topic, h, o); err != nil {
		return err
	}

	msgs := make(chan *nats.Msg, o.concurrency)
	sub, err := n.conn.ChanQueueSubscribe(topic, o.group, msgs)
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	var wg sync.WaitGroup
	for range o.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case m := <-msgs:
					if err := handle(ctx, DriverNATS, h, natsMessage{m: m}); err != nil {
						_ = m.Nak() //nolint:errcheck // core nats has no redelivery
						continue
					}
					_ = m.Ack() //nolint:errcheck // core nats has no ack
				}
			}
		})
	}

	<-ctx.Done()
	uerr := sub.Unsubscribe()
	wg.Wait()

	return errors.Join(ctx.Err(), uerr)
}

func (n *NATS) Close() error {
	err := n.conn.Drain()
	n.conn.Close()
	return err
}
