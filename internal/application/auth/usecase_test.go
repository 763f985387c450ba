package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/apptest"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
)

const testSecret = "test-secret"

func newUser(t *testing.T, id, email, password, role string, activo bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Nombre: "Usuario " + id, Email: email, PasswordHash: string(hash), Role: role, Activo: activo}
}

func newUseCase(t *testing.T, users ...*entity.User) (*AuthUseCase, *apptest.Users) {
	t.Helper()
	repo := apptest.NewUsers(users...)
	uc := NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, bcrypt.MinCost, nil)
	return uc, repo
}

func TestLogin_Exitoso(t *testing.T) {
	uc, repo := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleSupervisor, true))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@taller.co ", Password: "secreta123"})
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleSupervisor, role)

	stored, _ := repo.GetByID(context.Background(), "u1")
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_CredencialesInvalidasIndistinguibles(t *testing.T) {
	uc, repo := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleAdmin, true))

	_, errWrongPass := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@taller.co", Password: "otra-clave"})
	_, errNoUser := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@taller.co", Password: "otra-clave"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())

	stored, _ := repo.GetByID(context.Background(), "u1")
	assert.Nil(t, stored.LastLogin, "lastLogin no cambia si el login falla")
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, repo := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleEmpleado, false))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@taller.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@taller.co", Password: "mala-clave"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "con password incorrecto no se revela el estado de la cuenta")

	stored, _ := repo.GetByID(context.Background(), "u1")
	assert.Nil(t, stored.LastLogin)
}

func TestRegister(t *testing.T) {
	uc, _ := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleAdmin, true))
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Nombre: "Luis", Email: "Luis@Taller.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmpleado, out.Role)
	assert.Equal(t, "luis@taller.co", out.Email)
	assert.True(t, out.Activo)

	_, err = uc.Register(ctx, dto.RegisterRequest{Nombre: "Otro", Email: "ana@taller.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Register(ctx, dto.RegisterRequest{Nombre: "X", Email: "x@taller.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeactivate(t *testing.T) {
	uc, _ := newUseCase(t,
		newUser(t, "admin", "admin@taller.co", "secreta123", entity.RoleAdmin, true),
		newUser(t, "emp", "emp@taller.co", "secreta123", entity.RoleEmpleado, true),
	)
	ctx := context.Background()

	out, err := uc.Deactivate(ctx, "emp")
	require.NoError(t, err)
	assert.False(t, out.Activo)

	_, err = uc.Deactivate(ctx, "admin")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Deactivate(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	uc, _ := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleEmpleado, true))
	ctx := context.Background()

	err := uc.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "nueva-clave"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "current_password")

	require.NoError(t, uc.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "secreta123", NewPassword: "nueva-clave"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@taller.co", Password: "nueva-clave"})
	assert.NoError(t, err)
}

func TestUpdateMe_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase(t,
		newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleEmpleado, true),
		newUser(t, "u2", "luis@taller.co", "secreta123", entity.RoleEmpleado, true),
	)
	email := "luis@taller.co"
	_, err := uc.UpdateMe(context.Background(), "u1", dto.UpdateMeRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	nombre := "Ana María"
	out, err := uc.UpdateMe(context.Background(), "u1", dto.UpdateMeRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Nombre)
}

func TestResetPassword(t *testing.T) {
	uc, repo := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleEmpleado, true))
	ctx := context.Background()

	token, err := uc.issueResetToken(ctx, "ana@taller.co")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, _ := repo.GetByID(ctx, "u1")
	assert.NotEqual(t, token, stored.ResetTokenHash, "solo se guarda el hash")

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "clave-nueva-1"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@taller.co", Password: "clave-nueva-1"})
	assert.NoError(t, err)

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "otra-clave-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el token es de un solo uso")
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	uc, _ := newUseCase(t, newUser(t, "u1", "ana@taller.co", "secreta123", entity.RoleEmpleado, true))
	ctx := context.Background()

	token, err := uc.issueResetToken(ctx, "ana@taller.co")
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "clave-nueva-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestForgotPassword_EmailDesconocidoNoFalla(t *testing.T) {
	uc, _ := newUseCase(t)
	assert.NoError(t, uc.ForgotPassword(context.Background(), "nadie@taller.co"))
}
