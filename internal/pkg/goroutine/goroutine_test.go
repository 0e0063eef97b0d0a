package goroutine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManager_CollectsErrors(t *testing.T) {
	m := NewManager(4)
	errBoom := errors.New("boom")

	assert.True(t, m.Go(context.Background(), func(context.Context) error { return nil }))
	assert.True(t, m.Go(context.Background(), func(context.Context) error { return errBoom }))
	assert.True(t, m.Go(context.Background(), func(context.Context) error { panic("bad") }))

	err := m.Wait()
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Zero(t, m.Running())
}

func TestManager_StopsOnContextCancel(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	assert.True(t, m.Go(ctx, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	<-started

	assert.False(t, m.Go(ctx, func(context.Context) error { return nil }), "limit of one is taken")

	cancel()
	assert.NoError(t, m.Wait())
}

func TestManager_ClosedRejects(t *testing.T) {
	m := NewManager(0)
	assert.NoError(t, m.Wait())
	assert.False(t, m.Go(context.Background(), func(context.Context) error { return nil }))
}
