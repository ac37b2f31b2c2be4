package route

import (
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
)

// SetupFreightRoutes configura as rotas de notas de frete
func SetupFreightRoutes(router *gin.RouterGroup, freightController *controller.FreightController) {
	freightRouter := router.Group("/freight-notes")
	{
		freightRouter.POST("", freightController.Create)
		freightRouter.GET("", freightController.List)
		freightRouter.GET("/:id", freightController.GetByID)
		freightRouter.PATCH("/:id/payment", freightController.UpdatePayment)
		freightRouter.PATCH("/:id/cancel", freightController.Cancel)
	}
}
