package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/dinebite/internal/identity/entity"
	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goerror"
	"github.com/shandysiswandi/dinebite/internal/pkg/hash"
	"github.com/shandysiswandi/dinebite/internal/pkg/idempotency"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/jwt"
	"github.com/shandysiswandi/dinebite/internal/pkg/otpcode"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	keyOTPTTL             = "modules.identity.password_reset.otp_ttl_minutes"
	keyInvalidatePrevious = "modules.identity.password_reset.invalidate_previous"
	keyExposeOTP          = "modules.identity.password_reset.expose_otp"
	keyPurgeInterval      = "modules.identity.password_reset.purge_interval_seconds"

	defaultOTPTTL        = 10 * time.Minute
	defaultPurgeInterval = 5 * time.Minute
)

const (
	msgFailedGenerateOTP = "Failed to generate OTP"
	msgFailedVerifyOTP   = "Failed to verify OTP"
	msgFailedResetPass   = "Failed to reset password"
)

var (
	errInvalidCode    = goerror.NewBusiness("Invalid or expired verification code", goerror.CodeBadRequest)
	errInvalidSession = goerror.NewBusiness("Invalid or expired session", goerror.CodeBadRequest)
	errUserNotFound   = goerror.NewBusiness("User not found", goerror.CodeNotFound)
	errInvalidLogin   = goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	errAuthRequired   = goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
)

// PasswordResetOTPIssuedEvent carries the plain code to the mailer.
type PasswordResetOTPIssuedEvent struct {
	Email     string
	OTP       string
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishPasswordResetOTPIssued(ctx context.Context, msg PasswordResetOTPIssuedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	NewUser(ctx context.Context, user entity.NewUser, hash string) error

	CreatePasswordResetOTP(ctx context.Context, otp entity.PasswordResetOTP, invalidatePrevious bool) error
	GetRedeemablePasswordResetOTP(ctx context.Context, email, digest string, now time.Time) (*entity.PasswordResetOTP, error)
	GetVerifiedPasswordResetOTP(ctx context.Context, email, digest string, now time.Time) (*entity.PasswordResetOTP, error)
	MarkPasswordResetOTPUsed(ctx context.Context, id int64) (bool, error)
	ResetPasswordWithOTP(ctx context.Context, userID int64, email, newHash string) error
	DeleteExpiredPasswordResetOTP(ctx context.Context, now time.Time) (int64, error)
}

// Usecase implements the identity operations.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	password      hash.Hash
	uid           uid.NumberID
	otp           otpcode.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

// Dependency lists what New needs.
type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Password      hash.Hash
	UID           uid.NumberID
	OTP           otpcode.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

// New builds the identity use cases.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		password:      dep.Password,
		uid:           dep.UID,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	if ttl := s.cfg.GetMinute(keyOTPTTL); ttl > 0 {
		return ttl
	}
	return defaultOTPTTL
}

// PurgeInterval is how often expired reset codes are swept.
func (s *Usecase) PurgeInterval() time.Duration {
	if d := s.cfg.GetSecond(keyPurgeInterval); d > 0 {
		return d
	}
	return defaultPurgeInterval
}

// digest returns the stored form of a reset code.
func (s *Usecase) digest(code string) (string, error) {
	b, err := s.hmac.Hash(code)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, userID int64, status entity.UserStatus) error {
	switch status.Ensure() {
	case entity.UserStatusActive:
		return nil

	case entity.UserStatusBanned:
		slog.WarnContext(ctx, "user account is banned", "user_id", userID)
		return goerror.NewBusiness("Account is banned", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is inactive", "user_id", userID)
		return goerror.NewBusiness("Account is inactive", goerror.CodeForbidden)

	default:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", userID, "status", int16(status))
		return goerror.NewBusiness("Account status is unrecognized", goerror.CodeForbidden)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
