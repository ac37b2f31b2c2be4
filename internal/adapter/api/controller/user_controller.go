package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository, log logger.Logger) *UserController {
	return &UserController{
		userRepository: userRepository,
		logger:         log,
	}
}

// Create cria um novo usuário
// @Summary Cria um novo usuário
// @Description Cria um usuário com papel admin ou operador
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var request dto.UserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	creator := auth.GetCurrentUser(ctx)
	u, err := user.NewUser(request.Username, request.Name, request.Password, user.Role(request.Role), creator.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.userRepository.Create(ctx.Request.Context(), u); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Usuário criado", "user_id", u.ID, "username", u.Username, "role", u.Role, "by", creator.Username)
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// List lista os usuários
// @Summary Lista os usuários
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserListResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userRepository.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// Deactivate desativa um usuário
// @Summary Desativa um usuário
// @Description Um administrador não pode desativar a si mesmo
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/{id}/deactivate [patch]
func (c *UserController) Deactivate(ctx *gin.Context) {
	requester := auth.GetCurrentUser(ctx)

	u, err := c.userRepository.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := u.Deactivate(requester.ID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.userRepository.SetActive(ctx.Request.Context(), u.ID, false); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Usuário desativado", "user_id", u.ID, "by", requester.Username)
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
