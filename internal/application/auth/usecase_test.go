package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/wms-catalog/internal/application/auth"
	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/memory"
	"github.com/jhoicas/wms-catalog/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	s := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-ana"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(context.Background(), &entity.User{
		ID: "33333333-3333-3333-3333-333333333333", Username: "ana", PasswordHash: string(hash),
		Role: entity.RoleClient, CreatedAt: time.Now(),
	}))
	return auth.NewAuthUseCase(s.Users(),
		auth.SuperAdmin{Login: "root", Password: "toor"},
		auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_UsuarioDeLaBase(t *testing.T) {
	uc := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: "clave-ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.User.Username)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", claims.UserID)
	assert.Equal(t, entity.RoleClient, claims.Role)
}

func TestLogin_SuperAdmin(t *testing.T) {
	uc := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "root", Password: "toor"})
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.SuperAdminID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	cases := []dto.LoginRequest{
		{Login: "ana", Password: "mala"},
		{Login: "nadie", Password: "x"},
		{Login: "root", Password: "mala"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized), "login %q", in.Login)
	}
}

func TestLogin_SuperAdminDeshabilitado(t *testing.T) {
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), auth.SuperAdmin{}, auth.JWTConfig{Secret: secret, ExpMinutes: 5})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "", Password: ""})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
