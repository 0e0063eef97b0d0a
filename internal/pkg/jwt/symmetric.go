package jwt

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// HS512 signs with a shared secret.
type HS512 struct {
	cfg Config
}

// NewHS512 signs with HMAC-SHA512.
func NewHS512(cfg Config) (*HS512, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSecretTooShort
	}

	return &HS512{cfg: cfg}, nil
}

// Generate issues a token for the account.
func (h *HS512) Generate(userID int64, email string) (string, error) {
	now := h.cfg.Clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        h.cfg.UUID.Generate(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    h.cfg.Issuer,
			Audience:  h.cfg.Audiences,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.TTL)),
		},
		UserID:    userID,
		UserEmail: email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(h.cfg.Secret)
}

// Verify parses token and checks signature, issuer, audience and expiry.
func (h *HS512) Verify(token string) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(h.cfg.Issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.cfg.Clock.Now),
	}
	if len(h.cfg.Audiences) > 0 {
		opts = append(opts, jwt.WithAudience(h.cfg.Audiences...))
	}

	t, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return h.cfg.Secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, errors.Join(ErrInvalidToken, err)
	case !t.Valid:
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
