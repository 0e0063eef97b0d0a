package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/dinebite/internal/identity/entity"
	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/hash"
	"github.com/shandysiswandi/dinebite/internal/pkg/idempotency"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/jwt"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage down")

type memUser struct {
	user     entity.User
	password string
}

// memRepo keeps rows in maps and follows the SQL queries' semantics.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*memUser
	otps  []entity.PasswordResetOTP
	fail  map[string]error
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*memUser{}, fail: map[string]error{}}
}

func (r *memRepo) failOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[method] = err
}

func (r *memRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["GetUserByEmail"]; err != nil {
		return nil, err
	}

	u, ok := r.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := u.user
	return &cp, nil
}

func (r *memRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.user.ID == id {
			cp := u.user
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *memRepo) GetUserLoginInfo(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &entity.UserLoginInfo{ID: u.user.ID, Email: u.user.Email, Status: u.user.Status, Password: u.password}, nil
}

func (r *memRepo) NewUser(_ context.Context, user entity.NewUser, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	r.users[user.Email] = &memUser{
		user:     entity.User{ID: user.ID, Email: user.Email, FullName: user.FullName, Status: user.Status},
		password: hash,
	}
	return nil
}

func (r *memRepo) CreatePasswordResetOTP(_ context.Context, otp entity.PasswordResetOTP, invalidatePrevious bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["CreatePasswordResetOTP"]; err != nil {
		return err
	}

	if invalidatePrevious {
		r.otps = slices.DeleteFunc(r.otps, func(o entity.PasswordResetOTP) bool {
			return o.Email == otp.Email
		})
	}
	r.otps = append(r.otps, otp)
	return nil
}

func (r *memRepo) newest(email, digest string, match func(entity.PasswordResetOTP) bool) (*entity.PasswordResetOTP, error) {
	var found []entity.PasswordResetOTP
	for _, o := range r.otps {
		if o.Email == email && o.OTP == digest && match(o) {
			found = append(found, o)
		}
	}
	if len(found) == 0 {
		return nil, goerror.ErrNotFound
	}

	slices.SortFunc(found, func(a, b entity.PasswordResetOTP) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return &found[0], nil
}

func (r *memRepo) GetRedeemablePasswordResetOTP(_ context.Context, email, digest string, now time.Time) (*entity.PasswordResetOTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["GetRedeemablePasswordResetOTP"]; err != nil {
		return nil, err
	}

	return r.newest(email, digest, func(o entity.PasswordResetOTP) bool { return o.IsRedeemable(now) })
}

func (r *memRepo) GetVerifiedPasswordResetOTP(_ context.Context, email, digest string, now time.Time) (*entity.PasswordResetOTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.newest(email, digest, func(o entity.PasswordResetOTP) bool { return o.IsVerified(now) })
}

func (r *memRepo) MarkPasswordResetOTPUsed(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.otps {
		if r.otps[i].ID == id && !r.otps[i].IsUsed {
			r.otps[i].IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ResetPasswordWithOTP(_ context.Context, userID int64, email, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail["ResetPasswordWithOTP"]; err != nil {
		return err
	}

	for _, u := range r.users {
		if u.user.ID == userID {
			u.password = newHash
		}
	}
	r.otps = slices.DeleteFunc(r.otps, func(o entity.PasswordResetOTP) bool { return o.Email == email })
	return nil
}

func (r *memRepo) DeleteExpiredPasswordResetOTP(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.otps)
	r.otps = slices.DeleteFunc(r.otps, func(o entity.PasswordResetOTP) bool { return o.ExpiresAt.Before(now) })
	return int64(before - len(r.otps)), nil
}

func (r *memRepo) otpCount(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, o := range r.otps {
		if o.Email == email {
			n++
		}
	}
	return n
}

type memMessaging struct {
	mu     sync.Mutex
	events []PasswordResetOTPIssuedEvent
	err    error
}

func (m *memMessaging) PublishPasswordResetOTPIssued(_ context.Context, msg PasswordResetOTPIssuedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, msg)
	return nil
}

type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]bool
}

func (m *memIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return idempotency.StateCompleted, nil
	}
	m.keys[key] = true
	return idempotency.StateNone, nil
}

func (m *memIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (m *memIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (m *memIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	st, err := m.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}
	if st != idempotency.StateNone {
		return idempotency.ErrCompleted
	}
	return fn(ctx)
}

type seqCodes struct {
	mu   sync.Mutex
	next int
}

func (s *seqCodes) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%06d", 100000+s.next), nil
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fixture struct {
	uc    *Usecase
	repo  *memRepo
	msg   *memMessaging
	clock *clock.Fixed
	jwt   jwt.JWT
}

const baseConfig = `
modules:
  identity:
    password_reset:
      otp_ttl_minutes: 10
      expose_otp: true
      purge_interval_seconds: 60
`

func newFixture(t *testing.T, yaml string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10()
	require.NoError(t, err)

	clk := clock.NewFixed(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer: "dinebite-test",
		TTL:    time.Hour,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	f := &fixture{repo: newMemRepo(), msg: &memMessaging{}, clock: clk, jwt: tokens}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Idempotency:   &memIdempotency{keys: map[string]bool{}},
		Validator:     v,
		Config:        cfg,
		HMAC:          hash.NewHMACSHA256("otp-secret"),
		Password:      hash.NewBcrypt(4, ""),
		UID:           &seqID{},
		OTP:           &seqCodes{},
		Clock:         clk,
		JWT:           tokens,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func (f *fixture) addUser(t *testing.T, email, password string) {
	t.Helper()

	_, err := f.uc.Register(context.Background(), RegisterInput{Email: email, Password: password, FullName: "Test User"})
	require.NoError(t, err)
}

func requireCode(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
	if msg != "" {
		require.Equal(t, msg, gerr.Msg())
	}
}
