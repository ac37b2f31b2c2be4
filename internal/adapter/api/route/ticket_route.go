package route

import (
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
)

// SetupTicketRoutes configura as rotas de bilhetes
func SetupTicketRoutes(router *gin.RouterGroup, ticketController *controller.TicketController, adminOnly gin.HandlerFunc) {
	ticketRouter := router.Group("/tickets")
	{
		ticketRouter.POST("", ticketController.Create)
		ticketRouter.GET("", ticketController.List)
		ticketRouter.GET("/:id", ticketController.GetByID)
		ticketRouter.PATCH("/:id/payment", ticketController.UpdatePayment)
		ticketRouter.PATCH("/:id/cancel", ticketController.Cancel)

		// exclusão definitiva, mantida para a tela antiga de administração
		ticketRouter.DELETE("/:id", adminOnly, ticketController.Delete)
	}
}
