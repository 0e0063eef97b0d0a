package inbound

import "net/http"

// RequestPasswordResetRequest is the body of POST /request-password-reset.
type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordResetResponse carries the code only in development.
type RequestPasswordResetResponse struct {
	OTP string `json:"otp,omitempty"`
}

func (RequestPasswordResetResponse) Message() string {
	return "OTP generated successfully"
}

// VerifyResetOTPRequest is the body of POST /verify-reset-otp.
type VerifyResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyResetOTPResponse struct{}

func (VerifyResetOTPResponse) Message() string {
	return "OTP verified successfully"
}

// ResetPasswordWithOTPRequest accepts the password as "newPassword" or
// "new_password".
type ResetPasswordWithOTPRequest struct {
	Email            string `json:"email"`
	OTP              string `json:"otp"`
	NewPassword      string `json:"newPassword"`
	NewPasswordSnake string `json:"new_password"`
}

func (r ResetPasswordWithOTPRequest) password() string {
	if r.NewPassword != "" {
		return r.NewPassword
	}
	return r.NewPasswordSnake
}

type ResetPasswordWithOTPResponse struct{}

func (ResetPasswordWithOTPResponse) Message() string {
	return "Password reset successfully"
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct {
	ID int64 `json:"id,string"`
}

func (RegisterResponse) Message() string {
	return "Registration successful"
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns a bearer access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func (LoginResponse) Message() string {
	return "Login successful"
}

// ProfileResponse is the signed-in account.
type ProfileResponse struct {
	ID       int64  `json:"id,string"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}
