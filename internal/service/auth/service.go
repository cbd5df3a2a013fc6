package auth

import (
	"context"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	pkgjwt "github.com/oidpl/workforce-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single HR admin account. The hash is provisioned
// through configuration, there is no admin row in the employees table.
type AdminCredentials struct {
	Email        string
	PasswordHash string
	Name         string
}

type AuthServiceImpl struct {
	employee.EmployeeRepository
	pkgjwt.Service
	admin AdminCredentials
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService pkgjwt.Service, admin AdminCredentials) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		admin:              admin,
	}
}

// Login implements auth.AuthService. Identifiers containing "@" are admin
// email logins; everything else is an employee mobile number.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if strings.Contains(req.Identifier, "@") {
		return a.loginAdmin(req)
	}
	return a.loginEmployee(ctx, req)
}

func (a *AuthServiceImpl) loginAdmin(req auth.LoginRequest) (auth.TokenResponse, error) {
	if !strings.EqualFold(req.Identifier, a.admin.Email) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(auth.AdminUserID, a.admin.Name, auth.RoleAdmin)
}

func (a *AuthServiceImpl) loginEmployee(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	emp, err := a.EmployeeRepository.GetByMobile(ctx, req.Identifier)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if !emp.Active {
		return auth.TokenResponse{}, auth.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(emp.ID, emp.Name, auth.RoleEmployee)
}

func (a *AuthServiceImpl) issueTokens(userID, name string, role auth.Role) (auth.TokenResponse, error) {
	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userID, name, role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	resp.UserID = userID
	resp.Name = name
	resp.Role = role

	return resp, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := a.Service.JWTAuth().Decode(refreshToken)
	if err != nil {
		if err == jwt.ErrTokenExpired() {
			return auth.TokenResponse{}, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	// Rotate: old refresh token is single-use
	a.Service.RevokeToken(refreshToken)

	if userID == auth.AdminUserID {
		return a.issueTokens(userID, a.admin.Name, auth.RoleAdmin)
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if !emp.Active {
		return auth.TokenResponse{}, auth.ErrEmployeeInactive
	}

	return a.issueTokens(emp.ID, emp.Name, auth.RoleEmployee)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		a.Service.RevokeToken(refreshToken)
	}
	return nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, employeeID string, req auth.ChangePasswordRequest) error {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return a.EmployeeRepository.UpdatePassword(ctx, employeeID, string(hash))
}
