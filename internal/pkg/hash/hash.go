package hash

import "fmt"

// Hash produces and checks stored secrets.
type Hash interface {
	Hash(plain string) ([]byte, error)
	Verify(hashed, plain string) bool
}

// Driver names accepted by NewPassword.
const (
	DriverBcrypt   = "bcrypt"
	DriverArgon2id = "argon2id"
)

// NewPassword picks the password hasher by driver name.
func NewPassword(driver string, bcryptCost int, pepper string) (Hash, error) {
	switch driver {
	case "", DriverBcrypt:
		return NewBcrypt(bcryptCost, pepper), nil
	case DriverArgon2id:
		return NewArgon2id(pepper), nil
	default:
		return nil, fmt.Errorf("hash: unknown password driver %q", driver)
	}
}
