package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/resetflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startApp(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping containers in short mode")
	}

	ctx := context.Background()

	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("dinebite"),
		tcpostgres.WithUsername("dinebite"),
		tcpostgres.WithPassword("dinebite"),
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "db", "migrations", "0001_identity.up.sql")),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	rd, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = rd.Terminate(context.Background()) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	redisURL, err := rd.ConnectionString(ctx)
	require.NoError(t, err)

	t.Setenv("CONFIG_PATH", filepath.Join("..", "..", "config", "config.yaml"))
	t.Setenv("DINEBITE_DATABASE_URL", dsn)
	t.Setenv("DINEBITE_REDIS_URL", redisURL)
	t.Setenv("DINEBITE_MAIL_DRIVER", "log")
	t.Setenv("DINEBITE_MESSAGING_DRIVER", "memory")
	t.Setenv("DINEBITE_INSTRUMENT_ENABLED", "false")

	application := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errc := application.Serve(l)
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Stop(stopCtx)
		<-errc
	})

	return "http://" + l.Addr().String()
}

func postJSON(t *testing.T, url string, payload any) (int, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

func TestApp_PasswordResetEndToEnd(t *testing.T) {
	base := startApp(t)
	ctx := context.Background()

	status, out := postJSON(t, base+"/register", map[string]string{
		"email": "ana@example.com", "password": "old-secret", "full_name": "Ana Lima",
	})
	require.Equal(t, http.StatusCreated, status, out)

	status, _ = postJSON(t, base+"/login", map[string]string{"email": "ana@example.com", "password": "old-secret"})
	require.Equal(t, http.StatusOK, status)

	flow := resetflow.New(base)

	first, err := flow.RequestCode(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, first, 6)

	second, err := flow.Resend(ctx)
	require.NoError(t, err)

	require.NoError(t, flow.VerifyCode(ctx, second))
	require.NoError(t, flow.CompleteReset(ctx, "n3w-secret"))
	assert.Equal(t, resetflow.StatePasswordReset, flow.State())

	// the first code was never used but the reset removed it
	status, out = postJSON(t, base+"/verify-reset-otp", map[string]string{"email": "ana@example.com", "otp": first})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired verification code", out["message"])

	status, _ = postJSON(t, base+"/login", map[string]string{"email": "ana@example.com", "password": "old-secret"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, out = postJSON(t, base+"/login", map[string]string{"email": "ana@example.com", "password": "n3w-secret"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, out["access_token"])
}

func TestApp_ResetUnknownAccount(t *testing.T) {
	base := startApp(t)
	ctx := context.Background()

	flow := resetflow.New(base)
	code, err := flow.RequestCode(ctx, "ghost@example.com")
	require.NoError(t, err)
	require.NoError(t, flow.VerifyCode(ctx, code))

	err = flow.CompleteReset(ctx, "n3w-secret")
	var apiErr *resetflow.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "User not found", apiErr.Message)
	assert.Equal(t, resetflow.StateCodeVerified, flow.State())
}
