// Package jwt issues and checks the HS512 access tokens returned by login.
package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shandysiswandi/dinebite/internal/pkg/clock"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
)

var (
	ErrSecretTooShort = errors.New("jwt: HS512 secret must be at least 64 bytes")
	ErrTokenExpired   = errors.New("jwt: token expired")
	ErrInvalidToken   = errors.New("jwt: invalid token")
)

// JWT signs and verifies access tokens.
type JWT interface {
	Generate(userID int64, email string) (string, error)
	Verify(token string) (Claims, error)
}

// Config configures token signing. Secret must be at least 64 bytes.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clock.Clocker
	UUID      uid.StringID
}

// Claims are the registered claims plus the account identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id,string"`
	UserEmail string `json:"user_email"`
}

type authKey struct{}

// SetAuth stores verified claims on ctx.
func SetAuth(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, authKey{}, c)
}

// GetAuth returns the claims stored by SetAuth, or nil.
func GetAuth(ctx context.Context) *Claims {
	c, ok := ctx.Value(authKey{}).(Claims)
	if !ok {
		return nil
	}

	return &c
}
