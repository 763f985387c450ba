package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// ResetTokenTTL vigencia del token de recuperación de contraseña.
const ResetTokenTTL = time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y gestión de la propia cuenta.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
	log        *logger.Logger
	now        func() time.Time

	// dummyHash se compara cuando el email no existe, para que la respuesta tarde lo mismo.
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bcryptCost int, log *logger.Logger) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("taller-api-dummy"), bcryptCost)
	return &AuthUseCase{
		userRepo:   userRepo,
		jwtCfg:     jwtCfg,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
		dummyHash:  dummy,
	}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto producen el mismo ErrInvalidCredentials.
// La cuenta inactiva solo se informa después de validar el password.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, domain.ErrAccountInactive
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateMe cambia nombre y/o email del usuario autenticado.
func (uc *AuthUseCase) UpdateMe(ctx context.Context, userID string, in dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Nombre != nil {
		user.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword exige el password actual antes de fijar el nuevo.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.NewValidationError("current_password", "no coincide con la contraseña actual")
	}
	if err := checkPassword("new_password", in.NewPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// Register crea un usuario (solo admin). Rol vacío equivale a empleado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleEmpleado
	}
	if !entity.ValidRole(role) {
		return nil, domain.NewValidationError("role", "debe ser admin, supervisor o empleado")
	}
	if err := checkPassword("password", in.Password); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Nombre:       strings.TrimSpace(in.Nombre),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Deactivate desactiva una cuenta. Las cuentas admin no se pueden desactivar (tampoco la propia).
func (uc *AuthUseCase) Deactivate(ctx context.Context, targetID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin {
		return nil, fmt.Errorf("%w: no se puede desactivar una cuenta admin", domain.ErrForbidden)
	}
	if user.Activo {
		user.Activo = false
		user.UpdatedAt = uc.now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return ToUserResponse(user), nil
}

// ForgotPassword genera un token de recuperación si el email existe. La respuesta al
// cliente es la misma exista o no la cuenta; el token se registra en el log (nivel debug)
// hasta que exista un canal de envío de correo.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	token, err := uc.issueResetToken(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if token != "" {
		uc.log.Debug().Str("email", normalizeEmail(email)).Str("reset_token", token).Msg("token de recuperación generado")
	}
	return nil
}

func (uc *AuthUseCase) issueResetToken(ctx context.Context, email string) (string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !user.Activo {
		return "", nil
	}
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	exp := uc.now().Add(ResetTokenTTL)
	user.ResetTokenHash = hashToken(token)
	user.ResetTokenExpira = &exp
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword fija un nuevo password con un token vigente; el token queda invalidado.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := checkPassword("new_password", in.NewPassword); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByResetTokenHash(ctx, hashToken(strings.TrimSpace(in.Token)))
	if err != nil {
		return err
	}
	now := uc.now()
	if user == nil || user.ResetTokenExpira == nil || now.After(*user.ResetTokenExpira) {
		return domain.NewValidationError("token", "inválido o expirado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetTokenHash = ""
	user.ResetTokenExpira = nil
	user.UpdatedAt = now
	return uc.userRepo.Update(ctx, user)
}

func checkPassword(field, pw string) error {
	if len(pw) < 8 {
		return domain.NewValidationError(field, "debe tener al menos 8 caracteres")
	}
	if len(pw) > 72 {
		return domain.NewValidationError(field, "no puede superar 72 bytes")
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse convierte la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Role:      u.Role,
		Activo:    u.Activo,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
