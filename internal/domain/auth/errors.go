package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrEmployeeInactive    = errors.New("employee account is inactive")
	ErrPasswordMismatch    = errors.New("current password is incorrect")
)
