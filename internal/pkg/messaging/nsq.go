package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	nsq "github.com/nsqio/go-nsq"
)

var ErrNSQAddrRequired = errors.New("messaging: nsq nsqd or lookupd address is required")

// NSQConfig names the nsqd and lookupd addresses.
type NSQConfig struct {
	NSQDAddr     string
	LookupdAddrs []string
}

// nsqEnvelope carries headers, which NSQ has no native slot for.
type nsqEnvelope struct {
	Headers map[string]string `json:"h,omitempty"`
	Body    []byte            `json:"b"`
}

type nsqMessage struct {
	topic string
	env   nsqEnvelope
}

func (n nsqMessage) Topic() string            { return n.topic }
func (n nsqMessage) Body() []byte             { return n.env.Body }
func (n nsqMessage) Header(key string) string { return n.env.Headers[key] }

// NSQ wraps a go-nsq producer. Headers travel in a JSON envelope.
type NSQ struct {
	cfg      NSQConfig
	producer *nsq.Producer
}

// NewNSQ builds the producer.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	if cfg.NSQDAddr == "" && len(cfg.LookupdAddrs) == 0 {
		return nil, ErrNSQAddrRequired
	}

	n := &NSQ{cfg: cfg}
	if cfg.NSQDAddr != "" {
		p, err := nsq.NewProducer(cfg.NSQDAddr, nsq.NewConfig())
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		n.producer = p
	}

	return n, nil
}

func (n *NSQ) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if n.producer == nil {
		return ErrNSQAddrRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	env := nsqEnvelope{Body: msg.Body}
	if len(msg.Headers) > 0 {
		env.Headers = make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			env.Headers[h.Key] = h.Value
		}
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	if err := n.producer.Publish(topic, raw); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return nil
}

func (n *NSQ) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	o := newConsumeOptions(opts)
	if err := validateConsume(topic, h, o); err != nil {
		return err
	}

	cfg := nsq.NewConfig()
	cfg.MaxInFlight = max(cfg.MaxInFlight, o.concurrency)

	c, err := nsq.NewConsumer(topic, o.group, cfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq consumer: %w", err)
	}
	c.SetLoggerLevel(nsq.LogLevelError)

	c.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		var env nsqEnvelope
		if err := json.Unmarshal(m.Body, &env); err != nil {
			env = nsqEnvelope{Body: m.Body}
		}
		// a non-nil error makes go-nsq requeue the message
		return handle(ctx, DriverNSQ, h, nsqMessage{topic: topic, env: env})
	}), o.concurrency)

	if len(n.cfg.LookupdAddrs) > 0 {
		err = c.ConnectToNSQLookupds(n.cfg.LookupdAddrs)
	} else {
		err = c.ConnectToNSQD(n.cfg.NSQDAddr)
	}
	if err != nil {
		c.Stop()
		<-c.StopChan
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		c.Stop()
		<-c.StopChan
		return ctx.Err()
	case <-c.StopChan:
		return ErrClosed
	}
}

func (n *NSQ) Close() error {
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}
