package auth

import (
	"context"
	"testing"
	"time"

	"github.com/oidpl/workforce-backend-go/internal/domain/auth"
	"github.com/oidpl/workforce-backend-go/internal/domain/employee"
	pkgjwt "github.com/oidpl/workforce-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	byID     map[string]employee.Employee
	byMobile map[string]employee.Employee
	updated  map[string]string
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		byID:     make(map[string]employee.Employee),
		byMobile: make(map[string]employee.Employee),
		updated:  make(map[string]string),
	}
	for _, e := range emps {
		f.byID[e.ID] = e
		f.byMobile[e.Mobile] = e
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByMobile(ctx context.Context, mobile string) (employee.Employee, error) {
	emp, ok := f.byMobile[mobile]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	f.updated[id] = hash
	return nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (f *fakeEmployeeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) UpdateProfileImage(ctx context.Context, id, path string) error {
	return nil
}
func (f *fakeEmployeeRepo) UpdatePushToken(ctx context.Context, id string, token *string) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepo) SetSharing(ctx context.Context, id string, enabled bool) error {
	return nil
}
func (f *fakeEmployeeRepo) SetLocation(ctx context.Context, id string, lat, lon float64, address string, ts time.Time) error {
	return nil
}
func (f *fakeEmployeeRepo) ListSharingEnabled(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthFixture(t *testing.T, emps ...employee.Employee) (auth.AuthService, *fakeEmployeeRepo) {
	t.Helper()
	repo := newFakeEmployeeRepo(emps...)
	jwtSvc := pkgjwt.NewJWTService("test-secret", "1h", "168h")
	svc := NewAuthService(repo, jwtSvc, AdminCredentials{
		Email:        "admin@oidpl.com",
		PasswordHash: mustHash(t, "admin-pass"),
		Name:         "HR Admin",
	})
	return svc, repo
}

func activeEmployee(t *testing.T) employee.Employee {
	return employee.Employee{
		ID:           "emp-1",
		Name:         "Asha Verma",
		Code:         "OIDPL007",
		Mobile:       "9876543210",
		PasswordHash: mustHash(t, "emp-pass"),
		Active:       true,
	}
}

func TestLogin_AdminByEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "Admin@OIDPL.com",
		Password:   "admin-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, auth.RoleAdmin, resp.Role)
	assert.Equal(t, auth.AdminUserID, resp.UserID)
	assert.Equal(t, "HR Admin", resp.Name)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLogin_AdminWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "admin@oidpl.com",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownAdminEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "someone@else.com",
		Password:   "admin-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_EmployeeByMobile(t *testing.T) {
	svc, _ := newAuthFixture(t, activeEmployee(t))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "9876543210",
		Password:   "emp-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, auth.RoleEmployee, resp.Role)
	assert.Equal(t, "emp-1", resp.UserID)
	assert.Equal(t, "Asha Verma", resp.Name)
}

func TestLogin_EmployeeWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, activeEmployee(t))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "9876543210",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownMobile(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "9999999999",
		Password:   "emp-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveEmployee(t *testing.T) {
	emp := activeEmployee(t)
	emp.Active = false
	svc, _ := newAuthFixture(t, emp)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Identifier: "9876543210",
		Password:   "emp-pass",
	})
	assert.ErrorIs(t, err, auth.ErrEmployeeInactive)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	svc, _ := newAuthFixture(t, activeEmployee(t))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Identifier: "9876543210", Password: "emp-pass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", refreshed.UserID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Old refresh token is single-use
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	svc, _ := newAuthFixture(t, activeEmployee(t))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Identifier: "9876543210", Password: "emp-pass"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture(t, activeEmployee(t))
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Identifier: "9876543210", Password: "emp-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newAuthFixture(t, activeEmployee(t))
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "emp-1", auth.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-pass",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
	assert.Empty(t, repo.updated)

	err = svc.ChangePassword(ctx, "emp-1", auth.ChangePasswordRequest{
		CurrentPassword: "emp-pass",
		NewPassword:     "new-pass",
	})
	require.NoError(t, err)

	stored := repo.updated["emp-1"]
	require.NotEmpty(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-pass")))
}
