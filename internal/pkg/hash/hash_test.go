package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashers(t *testing.T) {
	hashers := map[string]Hash{
		"bcrypt":   NewBcrypt(bcrypt.MinCost, "pepper"),
		"argon2id": NewArgon2id("pepper"),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			a, err := h.Hash("newpass123")
			require.NoError(t, err)

			b, err := h.Hash("newpass123")
			require.NoError(t, err)

			assert.NotEqual(t, string(a), string(b), "salted hashes must differ")
			assert.True(t, h.Verify(string(a), "newpass123"))
			assert.False(t, h.Verify(string(a), "newpass124"))
			assert.False(t, h.Verify("", "newpass123"))
		})
	}
}

func TestBcrypt_PepperedLongInput(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	long := strings.Repeat("x", 72)
	hashed, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(string(hashed), long))
	assert.False(t, h.Verify(string(hashed), strings.Repeat("x", 71)+"y"))

	unpeppered := NewBcrypt(bcrypt.MinCost, "")
	assert.False(t, unpeppered.Verify(string(hashed), long))

	_, err = unpeppered.Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestHMACSHA256_Deterministic(t *testing.T) {
	h := NewHMACSHA256("secret")

	a, err := h.Hash("482913")
	require.NoError(t, err)
	b, err := h.Hash("482913")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.True(t, h.Verify(string(a), "482913"))
	assert.False(t, h.Verify(string(a), "482914"))

	other, err := NewHMACSHA256("other").Hash("482913")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestNewPassword(t *testing.T) {
	h, err := NewPassword("", 4, "")
	require.NoError(t, err)
	assert.IsType(t, &Bcrypt{}, h)

	h, err = NewPassword(DriverArgon2id, 0, "")
	require.NoError(t, err)
	assert.IsType(t, &Argon2id{}, h)

	_, err = NewPassword("md5", 0, "")
	assert.Error(t, err)
}
