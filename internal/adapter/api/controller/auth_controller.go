package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/repository"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
)

// AuthController gerencia as requisições relacionadas a autenticação
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         log,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Autentica com nome de usuário e senha e retorna um token válido por 8 horas
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	u, err := c.userRepository.FindByUsername(ctx.Request.Context(), request.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.unauthorized(ctx, "Credenciais inválidas")
			return
		}
		respondError(ctx, c.logger, err)
		return
	}

	if !u.CheckPassword(request.Password) {
		c.logger.Warn("Tentativa de login com senha inválida", "username", request.Username)
		c.unauthorized(ctx, "Credenciais inválidas")
		return
	}
	if !u.Active {
		c.unauthorized(ctx, "Usuário inativo")
		return
	}

	token, expiresAt, err := c.jwtService.GenerateToken(u)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.userRepository.UpdateLastLogin(ctx.Request.Context(), u.ID); err != nil {
		// o login segue válido mesmo sem registrar o acesso
		c.logger.Warn("Falha ao registrar último login", "user_id", u.ID, "error", err)
	}

	c.logger.Info("Login realizado", "user_id", u.ID, "username", u.Username)
	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}

// Verify retorna o usuário identificado pelo token
// @Summary Verifica o token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	current := auth.GetCurrentUser(ctx)
	ctx.JSON(http.StatusOK, dto.VerifyResponse{
		Valid: true,
		User: dto.AuthUserResponse{
			ID:       current.ID,
			Username: current.Username,
			Name:     current.Name,
			Role:     current.Role,
		},
	})
}

func (c *AuthController) unauthorized(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, message, ""))
}
