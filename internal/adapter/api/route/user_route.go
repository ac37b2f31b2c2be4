package route

import (
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController, adminOnly gin.HandlerFunc) {
	userRouter := router.Group("/users")
	userRouter.Use(adminOnly)
	{
		userRouter.GET("", userController.List)
		userRouter.POST("", userController.Create)
		userRouter.PATCH("/:id/deactivate", userController.Deactivate)
	}
}
