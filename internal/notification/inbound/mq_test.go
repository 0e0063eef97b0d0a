package inbound

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/notification/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goroutine"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUC struct {
	mu   sync.Mutex
	got  []usecase.ConsumePasswordResetOTPInput
	cIDs []string
}

func (r *recordingUC) ConsumePasswordResetOTP(ctx context.Context, in usecase.ConsumePasswordResetOTPInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, in)
	r.cIDs = append(r.cIDs, instrument.GetCorrelationID(ctx))
	return nil
}

func (r *recordingUC) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func TestRegisterMQConsumer(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  notification:
    consumer_names:
      - password_reset_otp_issued_notification
`))
	require.NoError(t, err)

	broker := messaging.NewMemory()
	t.Cleanup(func() { _ = broker.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	gm := goroutine.NewManager(4)
	rec := &recordingUC{}

	RegisterMQConsumer(ctx, cfg, gm, broker, uid.NewUUID(), rec, instrument.NewNoop())

	exp := time.Date(2026, 6, 1, 9, 10, 0, 0, time.UTC)
	body, err := json.Marshal(event.PasswordResetOTPIssuedMessage{Email: "ana@example.com", OTP: "482913", ExpiresAt: exp})
	require.NoError(t, err)

	// the consumer joins asynchronously, so publish until it is delivered
	require.Eventually(t, func() bool {
		_ = broker.Publish(ctx, event.PasswordResetOTPIssuedDestination, messaging.OutgoingMessage{
			Body:    body,
			Headers: []messaging.Header{{Key: event.HeaderCorrelationID, Value: "cid-42"}},
		})
		return rec.count() > 0
	}, time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, gm.Wait())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, "ana@example.com", rec.got[0].Email)
	assert.Equal(t, "482913", rec.got[0].OTP)
	assert.True(t, exp.Equal(rec.got[0].ExpiresAt))
	assert.Equal(t, "cid-42", rec.cIDs[0])
}

func TestMQHandler_MalformedBody(t *testing.T) {
	rec := &recordingUC{}
	h := &MQHandler{uc: rec, uuid: uid.NewUUID(), ins: instrument.NewNoop()}

	broker := messaging.NewMemory()
	t.Cleanup(func() { _ = broker.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- broker.Consume(ctx, "t", func(ctx context.Context, msg messaging.Message) error {
			err := h.PasswordResetOTPNotification(ctx, msg)
			cancel()
			return err
		}, messaging.WithGroup("g"))
	}()

	require.Eventually(t, func() bool {
		_ = broker.Publish(ctx, "t", messaging.OutgoingMessage{Body: []byte("{not json")})
		return ctx.Err() != nil
	}, time.Second, 10*time.Millisecond)

	<-done
	assert.Zero(t, rec.count())
}
