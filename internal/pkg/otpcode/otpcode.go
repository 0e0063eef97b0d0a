// Package otpcode generates the 6-digit codes sent for password resets.
package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Min and Max bound every generated code, both inclusive.
	Min = 100000
	Max = 999999

	// Length is the number of digits in a code.
	Length = 6
)

var span = big.NewInt(Max - Min + 1)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Random draws codes uniformly from [Min, Max] with crypto/rand.
type Random struct{}

func NewRandom() *Random { return &Random{} }

// Generate returns a uniformly random six digit code.
func (*Random) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("otpcode: read random: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()+Min), nil
}

// Valid reports whether s has the shape of a code. It does not say whether
// the code was ever issued.
func Valid(s string) bool {
	if len(s) != Length || s[0] == '0' {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
