package route

import (
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
)

// SetupReportRoutes configura as rotas de relatórios, restritas a administradores
func SetupReportRoutes(router *gin.RouterGroup, reportController *controller.ReportController, adminOnly gin.HandlerFunc) {
	reportRouter := router.Group("/reports")
	reportRouter.Use(adminOnly)
	{
		reportRouter.GET("/:kind", reportController.Generate)
		reportRouter.GET("/:kind/export", reportController.Export)
	}
}
