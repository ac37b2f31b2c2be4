package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(users *memUsers, as auth.CurrentUser) *gin.Engine {
	c := NewUserController(users, logger.NewNop())
	r := newRouter(asUser(as))
	r.POST("/users", c.Create)
	r.GET("/users", c.List)
	r.PATCH("/users/:id/deactivate", c.Deactivate)
	return r
}

func TestUserCreate(t *testing.T) {
	users := newMemUsers()
	r := userRouter(users, adminUser)
	body := map[string]string{"username": "Carlos", "name": "Carlos Souza", "password": "segredo", "role": "operador"}

	w := doJSON(t, r, http.MethodPost, "/users", body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[dto.UserResponse](t, w)
	assert.Equal(t, "carlos", res.Username)
	assert.Equal(t, "operador", res.Role)
	assert.True(t, res.Active)
	assert.Equal(t, adminUser.ID, res.CreatedBy)
	assert.NotContains(t, w.Body.String(), "segredo")

	w = doJSON(t, r, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserCreateValidation(t *testing.T) {
	r := userRouter(newMemUsers(), adminUser)

	w := doJSON(t, r, http.MethodPost, "/users", map[string]string{"username": "ana", "name": "Ana", "password": "123", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/users", map[string]string{"username": "ana", "name": "Ana", "password": "segredo", "role": "gerente"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserList(t *testing.T) {
	r := userRouter(newMemUsers(newTestUser(t, "bia", user.RoleOperator), newTestUser(t, "ana", user.RoleAdmin)), adminUser)

	w := doJSON(t, r, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.UserListResponse](t, w)
	require.Equal(t, 2, res.TotalCount)
	assert.Equal(t, "ana", res.Data[0].Username)
}

func TestUserDeactivate(t *testing.T) {
	admin := newTestUser(t, "admin", user.RoleAdmin)
	operator := newTestUser(t, "joana", user.RoleOperator)
	users := newMemUsers(admin, operator)
	r := userRouter(users, auth.CurrentUser{ID: admin.ID, Username: admin.Username, Role: string(user.RoleAdmin)})

	w := doJSON(t, r, http.MethodPatch, "/users/"+admin.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/users/"+operator.ID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.UserResponse](t, w).Active)
	assert.False(t, users.users[operator.ID].Active)

	w = doJSON(t, r, http.MethodPatch, "/users/"+operator.ID+"/deactivate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/users/desconhecido/deactivate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
