// Package resetflow drives the three-step password reset from the client
// side: request a code, verify it, then set the new password.
//
// A Flow only moves forward one step per successful call. A failed call
// leaves the state where it was and returns the server message as an
// *APIError. Nothing is retried.
package resetflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrInvalidTransition is returned when a step is called out of order. No
// request is sent.
var ErrInvalidTransition = errors.New("resetflow: invalid state transition")

// State is a step of the reset flow.
type State int

const (
	StateIdle State = iota
	StateCodeRequested
	StateCodeVerified
	StatePasswordReset
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCodeRequested:
		return "code_requested"
	case StateCodeVerified:
		return "code_verified"
	case StatePasswordReset:
		return "password_reset"
	default:
		return "unknown"
	}
}

// APIError is a response with success=false.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resetflow: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	OTP     string            `json:"otp"`
	Errors  map[string]string `json:"errors"`
}

// Option configures a Flow.
type Option func(*Flow)

// WithHTTPClient replaces the default client, which has a 10 second timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Flow) { f.client = c }
}

// Flow is safe for concurrent use; calls are serialized.
type Flow struct {
	mu      sync.Mutex
	baseURL string
	client  *http.Client
	state   State
	email   string
	code    string
	message string
}

// New returns an idle flow talking to the backend at baseURL.
func New(baseURL string, opts ...Option) *Flow {
	f := &Flow{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Session is the resumable part of a Flow.
type Session struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
	State State  `json:"state"`
}

// Session snapshots the flow so another process can Restore it.
func (f *Flow) Session() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Session{Email: f.email, Code: f.code, State: f.state}
}

// Restore replaces the flow position. A session in StateCodeVerified must
// carry the verified code.
func (f *Flow) Restore(s Session) error {
	if s.State < StateIdle || s.State > StatePasswordReset {
		return ErrInvalidTransition
	}
	if s.State != StateIdle && s.Email == "" {
		return ErrInvalidTransition
	}
	if s.State == StateCodeVerified && s.Code == "" {
		return ErrInvalidTransition
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.email, f.code, f.state = s.Email, s.Code, s.State

	return nil
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the message of the last successful call.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// RequestCode starts the flow for email. The returned code is empty unless
// the server exposes codes.
func (f *Flow) RequestCode(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return "", ErrInvalidTransition
	}

	return f.request(ctx, email)
}

// Resend issues a new code for the same email and returns to
// StateCodeRequested. Codes issued before stay valid on the server.
func (f *Flow) Resend(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateIdle || f.state == StatePasswordReset {
		return "", ErrInvalidTransition
	}

	return f.request(ctx, f.email)
}

func (f *Flow) request(ctx context.Context, email string) (string, error) {
	env, err := f.post(ctx, "/request-password-reset", map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	f.email = email
	f.code = ""
	f.state = StateCodeRequested
	f.message = env.Message

	return env.OTP, nil
}

// VerifyCode submits code for the requested email. It is only allowed
// after a code was requested.
func (f *Flow) VerifyCode(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateCodeRequested {
		return ErrInvalidTransition
	}

	env, err := f.post(ctx, "/verify-reset-otp", map[string]string{"email": f.email, "otp": code})
	if err != nil {
		return err
	}

	f.code = code
	f.state = StateCodeVerified
	f.message = env.Message

	return nil
}

// CompleteReset sets the new password with the verified code. On success
// the flow ends in StatePasswordReset.
func (f *Flow) CompleteReset(ctx context.Context, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateCodeVerified {
		return ErrInvalidTransition
	}

	env, err := f.post(ctx, "/reset-password-with-otp", map[string]string{
		"email":       f.email,
		"otp":         f.code,
		"newPassword": newPassword,
	})
	if err != nil {
		return err
	}

	f.state = StatePasswordReset
	f.message = env.Message

	return nil
}

func (f *Flow) post(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Fields: env.Errors}
	}

	return &env, nil
}
