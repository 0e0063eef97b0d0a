package entity

import "time"

// PasswordResetOTP is one issued reset code. OTP holds the digest of the
// code, never the code itself.
type PasswordResetOTP struct {
	ID        int64
	Email     string
	OTP       string
	ExpiresAt time.Time
	IsUsed    bool
	CreatedAt time.Time
}

// IsExpired reports whether the code is past its expiry at now. A code is
// still valid at exactly ExpiresAt.
func (o PasswordResetOTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// IsRedeemable reports whether the code can still be verified at now.
func (o PasswordResetOTP) IsRedeemable(now time.Time) bool {
	return !o.IsUsed && !o.IsExpired(now)
}

// IsVerified reports whether the code was verified and can authorize a
// password change at now.
func (o PasswordResetOTP) IsVerified(now time.Time) bool {
	return o.IsUsed && !o.IsExpired(now)
}
