package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(t *testing.T, users *memUsers) *gin.Engine {
	t.Helper()
	jwtService, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	c := NewAuthController(users, jwtService, logger.NewNop())
	r := newRouter()
	r.POST("/auth/login", c.Login)
	r.GET("/auth/verify", auth.JWTAuthMiddleware(jwtService), c.Verify)
	return r
}

func newTestUser(t *testing.T, username string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(username, "Operador "+username, "senha123", role, "")
	require.NoError(t, err)
	return u
}

func TestLoginAndVerify(t *testing.T) {
	operator := newTestUser(t, "joana", user.RoleOperator)
	users := newMemUsers(operator)
	r := authRouter(t, users)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "joana", "password": "senha123"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[dto.LoginResponse](t, w)
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "operador", login.User.Role)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	stored, err := users.FindByID(context.Background(), operator.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	w = doJSON(t, r, http.MethodGet, "/auth/verify", nil, "Authorization", "Bearer "+login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	verify := decode[dto.VerifyResponse](t, w)
	assert.True(t, verify.Valid)
	assert.Equal(t, operator.ID, verify.User.ID)
	assert.Equal(t, "joana", verify.User.Username)
}

func TestLoginRejected(t *testing.T) {
	inactive := newTestUser(t, "pedro", user.RoleOperator)
	inactive.Active = false
	r := authRouter(t, newMemUsers(newTestUser(t, "joana", user.RoleAdmin), inactive))

	tests := []struct {
		name     string
		body     map[string]string
		expected int
	}{
		{"senha errada", map[string]string{"username": "joana", "password": "errada"}, http.StatusUnauthorized},
		{"usuário desconhecido", map[string]string{"username": "ninguem", "password": "senha123"}, http.StatusUnauthorized},
		{"usuário inativo", map[string]string{"username": "pedro", "password": "senha123"}, http.StatusUnauthorized},
		{"sem senha", map[string]string{"username": "joana"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/auth/login", tt.body)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestVerifyWithoutToken(t *testing.T) {
	r := authRouter(t, newMemUsers())

	w := doJSON(t, r, http.MethodGet, "/auth/verify", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
