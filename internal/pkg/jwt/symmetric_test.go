package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHS512(t *testing.T, clk clock.Clocker) *HS512 {
	t.Helper()

	h, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("k", 64)),
		Issuer:    "dinebite",
		Audiences: []string{"dinebite-app"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)

	return h
}

func TestHS512_RoundTrip(t *testing.T) {
	clk := clock.NewFixed(time.Now().UTC().Truncate(time.Second))
	h := newTestHS512(t, clk)

	token, err := h.Generate(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.UserEmail)
	assert.Equal(t, "42", claims.Subject)

	clk.Add(16 * time.Minute)
	_, err = h.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHS512_Rejects(t *testing.T) {
	h := newTestHS512(t, clock.New())

	_, err := h.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewHS512(Config{Secret: []byte("short")})
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestAuthContext(t *testing.T) {
	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{UserID: 7})
	require.NotNil(t, GetAuth(ctx))
	assert.Equal(t, int64(7), GetAuth(ctx).UserID)
}
