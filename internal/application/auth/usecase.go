package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
	"github.com/jhoicas/wms-catalog/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SuperAdmin credenciales del super-admin definidas por entorno (vacías = deshabilitado).
type SuperAdmin struct {
	Login    string
	Password string
}

// AuthUseCase caso de uso de login: super-admin por entorno o usuario de la base.
type AuthUseCase struct {
	userRepo repository.UserRepository
	admin    SuperAdmin
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, admin SuperAdmin, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, admin: admin, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite el JWT. Cualquier fallo de credenciales es ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.isSuperAdmin(in.Login, in.Password) {
		admin := &entity.User{ID: entity.SuperAdminID, Username: in.Login, Role: entity.RoleAdmin}
		return uc.issue(admin)
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) isSuperAdmin(login, password string) bool {
	if uc.admin.Login == "" || uc.admin.Password == "" {
		return false
	}
	okLogin := subtle.ConstantTimeCompare([]byte(login), []byte(uc.admin.Login)) == 1
	okPass := subtle.ConstantTimeCompare([]byte(password), []byte(uc.admin.Password)) == 1
	return okLogin && okPass
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *usecase.ToUserResponse(user)}, nil
}
