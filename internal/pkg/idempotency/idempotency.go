// Package idempotency records operation state in redis so an operation keyed
// by the same string runs once across replicas.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInProgress   = errors.New("idempotency: operation in progress")
	ErrCompleted    = errors.New("idempotency: operation already completed")
	ErrFailed       = errors.New("idempotency: operation already failed")
	ErrUnknownState = errors.New("idempotency: unknown state")
)

// State is the stored progress of a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

const (
	keyPrefix      = "idempotency:"
	defaultLockTTL = time.Minute
	defaultDoneTTL = time.Minute
)

// Idempotency is satisfied by StateTracker.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lock time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker records idempotency key state in Redis.
type StateTracker struct {
	client redis.Cmdable
}

// New builds a tracker on any redis client.
func New(client redis.Cmdable) *StateTracker {
	return &StateTracker{client: client}
}

// Option tunes a single call.
type Option func(*execOptions)

type execOptions struct {
	lockTTL time.Duration
	doneTTL time.Duration
}

// WithLockTTL bounds how long an unfinished run blocks others.
func WithLockTTL(d time.Duration) Option {
	return func(o *execOptions) { o.lockTTL = d }
}

// WithStateTTL bounds how long a finished run blocks others.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.doneTTL = d }
}

// Acquire returns StateNone when the caller now owns key. Any other state
// means someone else ran or is running the operation.
func (s *StateTracker) Acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	k := keyPrefix + key

	ok, err := s.client.SetNX(ctx, k, string(StateInProgress), lock).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return StateNone, nil
	}

	cur, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Acquire(ctx, key, lock)
	}
	if err != nil {
		return "", err
	}

	switch st := State(cur); st {
	case StateInProgress, StateCompleted, StateFailed:
		return st, nil
	default:
		return "", ErrUnknownState
	}
}

// MarkCompleted stores key as completed for ttl.
func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+key, string(StateCompleted), ttl).Err()
}

// MarkFailed stores key as failed for ttl.
func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+key, string(StateFailed), ttl).Err()
}

// Exec runs fn only if key was not claimed, then records the outcome.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockTTL: defaultLockTTL, doneTTL: defaultDoneTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockTTL <= 0 {
		o.lockTTL = defaultLockTTL
	}
	if o.doneTTL <= 0 {
		o.doneTTL = defaultDoneTTL
	}

	st, err := s.Acquire(ctx, key, o.lockTTL)
	if err != nil {
		return err
	}

	switch st {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	case StateFailed:
		return ErrFailed
	}

	if err := fn(ctx); err != nil {
		return errors.Join(err, s.MarkFailed(ctx, key, o.doneTTL))
	}

	return s.MarkCompleted(ctx, key, o.doneTTL)
}
