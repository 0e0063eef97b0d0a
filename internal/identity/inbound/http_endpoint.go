package inbound

import (
	"github.com/shandysiswandi/dinebite/internal/identity/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/router"
)

// HTTPEndpoint exposes the password reset and account handlers.
type HTTPEndpoint struct {
	uc uc
}

// RequestPasswordReset issues a reset code for an email.
// @Summary Request password reset code
// @Description Issues a 6-digit code valid for 10 minutes. The code is only echoed back in development.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body RequestPasswordResetRequest true "Reset request payload"
// @Success 200 {object} RequestPasswordResetResponse "OTP generated successfully"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 500 {object} router.errorResponse "Failed to generate OTP"
// @Router /request-password-reset [post]
func (h *HTTPEndpoint) RequestPasswordReset(r *router.Request) (any, error) {
	var req RequestPasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestPasswordReset(r.Context(), usecase.RequestPasswordResetInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return RequestPasswordResetResponse{OTP: resp.OTP}, nil
}

// VerifyResetOTP consumes a reset code.
// @Summary Verify password reset code
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body VerifyResetOTPRequest true "Verify payload"
// @Success 200 {object} VerifyResetOTPResponse "OTP verified successfully"
// @Failure 400 {object} router.errorResponse "Invalid or expired verification code"
// @Failure 500 {object} router.errorResponse "Failed to verify OTP"
// @Router /verify-reset-otp [post]
func (h *HTTPEndpoint) VerifyResetOTP(r *router.Request) (any, error) {
	var req VerifyResetOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.VerifyResetOTP(r.Context(), usecase.VerifyResetOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return VerifyResetOTPResponse{}, nil
}

// ResetPasswordWithOTP sets a new password with a verified code.
// @Summary Reset password with verified code
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body ResetPasswordWithOTPRequest true "Reset payload"
// @Success 200 {object} ResetPasswordWithOTPResponse "Password reset successfully"
// @Failure 400 {object} router.errorResponse "Invalid or expired session"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Failed to reset password"
// @Router /reset-password-with-otp [post]
func (h *HTTPEndpoint) ResetPasswordWithOTP(r *router.Request) (any, error) {
	var req ResetPasswordWithOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResetPasswordWithOTP(r.Context(), usecase.ResetPasswordWithOTPInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.password(),
	}); err != nil {
		return nil, err
	}

	return ResetPasswordWithOTPResponse{}, nil
}

// Register creates an active account.
// @Summary Register account
// @Tags Identity, Account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register payload"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Router /register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{ID: resp.ID}, nil
}

// Login returns an access token.
// @Summary Login
// @Tags Identity, Account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Router /login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

// Profile returns the authenticated account.
// @Summary Current profile
// @Tags Identity, Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:       resp.ID,
		Email:    resp.Email,
		FullName: resp.FullName,
		Status:   resp.Status,
	}, nil
}
