package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 is a keyed, deterministic digest. Equal inputs give equal hex
// output, so the digest can be used as a lookup key.
type HMACSHA256 struct {
	key []byte
}

// NewHMACSHA256 keys the digest with secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{key: []byte(secret)}
}

func (h *HMACSHA256) Hash(plain string) ([]byte, error) {
	return h.sum(plain), nil
}

func (h *HMACSHA256) Verify(hashed, plain string) bool {
	return hmac.Equal([]byte(hashed), h.sum(plain))
}

func (h *HMACSHA256) sum(plain string) []byte {
	m := hmac.New(sha256.New, h.key)
	m.Write([]byte(plain))
	return hex.AppendEncode(nil, m.Sum(nil))
}
