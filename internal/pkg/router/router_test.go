package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/jwt"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeResponse struct {
	OTP string `json:"otp,omitempty"`
}

func (codeResponse) Message() string { return "OTP generated successfully" }

type createdResponse struct {
	ID int64 `json:"id,string"`
}

func (createdResponse) StatusCode() int { return http.StatusCreated }

func newTestRouter(t *testing.T) (*Router, jwt.JWT) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: "/down"
instrument:
  mask_fields: "otp,password"
`))
	require.NoError(t, err)

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "test",
		TTL:    time.Minute,
		Clock:  clock.New(),
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	r := NewRouter(Config{Config: cfg, UUID: uid.NewUUID(), JWT: tokens, Instrument: instrument.NewNoop()})

	r.PublicPOST("/code", func(req *Request) (any, error) {
		var body struct {
			Email string `json:"email"`
		}
		if err := req.DecodeBody(&body); err != nil {
			return nil, err
		}
		return codeResponse{OTP: "123456"}, nil
	})
	r.PublicPOST("/created", func(*Request) (any, error) { return createdResponse{ID: 9}, nil })
	r.PublicPOST("/invalid", func(*Request) (any, error) {
		return nil, goerror.NewInvalidInput(nil, "new_password", "new_password must be 8-72 characters")
	})
	r.PublicPOST("/business", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("Invalid or expired verification code", goerror.CodeBadRequest)
	})
	r.PublicPOST("/server", func(*Request) (any, error) {
		return nil, goerror.NewServer(errors.New("pg: connection refused"), "Failed to generate OTP")
	})
	r.PublicPOST("/raw", func(*Request) (any, error) { return nil, errors.New("leaky detail") })
	r.PublicPOST("/panic", func(*Request) (any, error) { panic("boom") })
	r.PublicGET("/down", func(*Request) (any, error) { return Message("up"), nil })
	r.GET("/me", func(req *Request) (any, error) {
		return map[string]string{"email": jwt.GetAuth(req.Context()).UserEmail}, nil
	})
	r.PublicGET("/list", func(*Request) (any, error) { return []int{1, 2}, nil })

	return r, tokens
}

func serve(r http.Handler, method, path, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)

	return rec, out
}

func TestRouter_Envelope(t *testing.T) {
	r, tokens := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		header []string
		status int
		want   map[string]any
	}{
		{
			name: "flattened success", method: http.MethodPost, path: "/code", body: `{"email":"a@b.co"}`,
			status: http.StatusOK,
			want:   map[string]any{"success": true, "message": "OTP generated successfully", "otp": "123456"},
		},
		{
			name: "custom status", method: http.MethodPost, path: "/created", body: `{}`,
			status: http.StatusCreated,
			want:   map[string]any{"success": true, "message": "Request processed successfully", "id": "9"},
		},
		{
			name: "non object body", method: http.MethodGet, path: "/list",
			status: http.StatusOK,
			want:   map[string]any{"success": true, "message": "Request processed successfully", "data": []any{1.0, 2.0}},
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/code", body: `{"email":`,
			status: http.StatusBadRequest,
			want:   map[string]any{"success": false, "message": "Invalid request body"},
		},
		{
			name: "validation fields", method: http.MethodPost, path: "/invalid", body: `{}`,
			status: http.StatusBadRequest,
			want: map[string]any{
				"success": false,
				"message": "new_password must be 8-72 characters",
				"errors":  map[string]any{"new_password": "new_password must be 8-72 characters"},
			},
		},
		{
			name: "business error", method: http.MethodPost, path: "/business", body: `{}`,
			status: http.StatusBadRequest,
			want:   map[string]any{"success": false, "message": "Invalid or expired verification code"},
		},
		{
			name: "server error hides cause", method: http.MethodPost, path: "/server", body: `{}`,
			status: http.StatusInternalServerError,
			want:   map[string]any{"success": false, "message": "Failed to generate OTP"},
		},
		{
			name: "plain error", method: http.MethodPost, path: "/raw", body: `{}`,
			status: http.StatusInternalServerError,
			want:   map[string]any{"success": false, "message": "Internal server error"},
		},
		{
			name: "panic recovered", method: http.MethodPost, path: "/panic", body: `{}`,
			status: http.StatusInternalServerError,
			want:   map[string]any{"success": false, "message": "Internal server error"},
		},
		{
			name: "maintenance", method: http.MethodGet, path: "/down",
			status: http.StatusServiceUnavailable,
			want:   map[string]any{"success": false, "message": "Service is under maintenance"},
		},
		{
			name: "not found", method: http.MethodGet, path: "/nope",
			status: http.StatusNotFound,
			want:   map[string]any{"success": false, "message": "Endpoint not found"},
		},
		{
			name: "health", method: http.MethodGet, path: "/health",
			status: http.StatusOK,
			want:   map[string]any{"success": true, "message": "ok"},
		},
		{
			name: "auth required", method: http.MethodGet, path: "/me",
			status: http.StatusUnauthorized,
			want:   map[string]any{"success": false, "message": "Authentication required"},
		},
		{
			name: "bad token", method: http.MethodGet, path: "/me", header: []string{"Authorization", "Bearer nope"},
			status: http.StatusUnauthorized,
			want:   map[string]any{"success": false, "message": "Invalid or expired token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, got := serve(r, tt.method, tt.path, tt.body, tt.header...)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
		})
	}

	t.Run("authenticated", func(t *testing.T) {
		token, err := tokens.Generate(1, "ana@example.com")
		require.NoError(t, err)

		rec, got := serve(r, http.MethodGet, "/me", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ana@example.com", got["email"])
	})
}

func TestRouter_CorrelationIDPropagates(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := serve(r, http.MethodGet, "/health", "", HeaderRequestID, "req-123")
	assert.Equal(t, "req-123", rec.Header().Get(HeaderCorrelationID))

	rec, _ = serve(r, http.MethodGet, "/health", "", HeaderCorrelationID, "cid-1", HeaderRequestID, "req-123")
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Set("X-Real-IP", "garbage")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}
