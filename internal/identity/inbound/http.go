package inbound

import (
	"context"

	"github.com/shandysiswandi/dinebite/internal/identity/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/router"
)

type uc interface {
	RequestPasswordReset(ctx context.Context, in usecase.RequestPasswordResetInput) (*usecase.RequestPasswordResetOutput, error)
	VerifyResetOTP(ctx context.Context, in usecase.VerifyResetOTPInput) error
	ResetPasswordWithOTP(ctx context.Context, in usecase.ResetPasswordWithOTPInput) error

	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

// RegisterHTTPEndpoint mounts the identity routes. The password reset and
// sign-in routes are public.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Password reset
	r.PublicPOST("/request-password-reset", end.RequestPasswordReset)
	r.PublicPOST("/verify-reset-otp", end.VerifyResetOTP)
	r.PublicPOST("/reset-password-with-otp", end.ResetPasswordWithOTP)

	// Account
	r.PublicPOST("/register", end.Register)
	r.PublicPOST("/login", end.Login)
	r.GET("/profile", end.Profile) // need authenticated
}
