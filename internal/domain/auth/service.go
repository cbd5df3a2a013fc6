package auth

import "context"

type AuthService interface {
	// Login authenticates an admin (email) or employee (mobile number).
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, employeeID string, req ChangePasswordRequest) error
}
