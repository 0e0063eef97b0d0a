package event

import "time"

const PasswordResetOTPIssuedDestination string = "password_reset_otp_issued"
const PasswordResetOTPIssuedConsumerNotification string = "password_reset_otp_issued_notification"

// PasswordResetOTPIssuedMessage carries a freshly issued code to the
// delivery channel. OTP is the plaintext code.
type PasswordResetOTPIssuedMessage struct {
	Email     string    `json:"email"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}
