package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes passwords with bcrypt. With a pepper the plain text is first
// keyed through HMAC-SHA256, so bcrypt always sees 64 hex bytes. The pepper
// is never stored.
type Bcrypt struct {
	cost   int
	pepper *HMACSHA256
}

// NewBcrypt falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	b := &Bcrypt{cost: cost}
	if pepper != "" {
		b.pepper = NewHMACSHA256(pepper)
	}

	return b
}

// Hash returns the bcrypt encoding of plain. Without a pepper plain must fit
// in 72 bytes.
func (b *Bcrypt) Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(b.input(plain), b.cost)
}

// Verify reports whether plain matches hashed.
func (b *Bcrypt) Verify(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), b.input(plain)) == nil
}

func (b *Bcrypt) input(plain string) []byte {
	if b.pepper == nil {
		return []byte(plain)
	}

	return b.pepper.sum(plain)
}
