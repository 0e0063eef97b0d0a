package messaging

import (
	"context"
	"sync"
)

type memoryMessage struct {
	topic string
	msg   OutgoingMessage
}

func (m memoryMessage) Topic() string            { return m.topic }
func (m memoryMessage) Body() []byte             { return m.msg.Body }
func (m memoryMessage) Header(key string) string { return firstHeader(m.msg.Headers, key) }

// Memory is an in-process broker. Each group receives every message once;
// members of a group take turns. Messages published while a topic has no
// consumers are dropped.
type Memory struct {
	mu     sync.Mutex
	groups map[string]map[string]*memoryGroup
	closed bool
	done   chan struct{}
}

type memoryGroup struct {
	ch   chan memoryMessage
	refs int
}

const memoryBuffer = 64

// NewMemory returns an in-process broker for development and tests.
func NewMemory() *Memory {
	return &Memory{groups: map[string]map[string]*memoryGroup{}, done: make(chan struct{})}
}

func (m *Memory) Publish(ctx context.Context, topic string, msg OutgoingMessage) error {
	if topic == "" {
		return ErrTopicRequired
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	targets := make([]chan memoryMessage, 0, len(m.groups[topic]))
	for _, g := range m.groups[topic] {
		targets = append(targets, g.ch)
	}
	m.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- memoryMessage{topic: topic, msg: msg}:
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return ErrClosed
		}
	}

	return nil
}

func (m *Memory) Consume(ctx context.Context, topic string, h Handler, opts ...ConsumeOption) error {
	o := newConsumeOptions(opts)
	if err := validateConsume(topic, h, o); err != nil {
		return err
	}

	g, err := m.join(topic, o.group)
	if err != nil {
		return err
	}
	defer m.leave(topic, o.group)

	var wg sync.WaitGroup
	for range o.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-m.done:
					return
				case msg := <-g.ch:
					_ = handle(ctx, DriverMemory, h, msg) //nolint:errcheck // nothing to redeliver to
				}
			}
		})
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrClosed
}

func (m *Memory) join(topic, group string) (*memoryGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.groups[topic] == nil {
		m.groups[topic] = map[string]*memoryGroup{}
	}

	g := m.groups[topic][group]
	if g == nil {
		g = &memoryGroup{ch: make(chan memoryMessage, memoryBuffer)}
		m.groups[topic][group] = g
	}
	g.refs++

	return g, nil
}

func (m *Memory) leave(topic, group string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := m.groups[topic][group]
	if g == nil {
		return
	}
	g.refs--
	if g.refs == 0 {
		delete(m.groups[topic], group)
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}
