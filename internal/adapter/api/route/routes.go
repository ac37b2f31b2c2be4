package route

import (
	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/controller"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/vessel"
)

// Controllers agrupa os controllers expostos pela API
type Controllers struct {
	Auth    *controller.AuthController
	User    *controller.UserController
	Freight *controller.FreightController
	Ticket  *controller.TicketController
	Report  *controller.ReportController
}

// SetupRoutes registra todas as rotas da API no grupo informado
func SetupRoutes(router *gin.RouterGroup, c Controllers, jwtService *auth.JWTService) {
	authenticated := auth.JWTAuthMiddleware(jwtService)
	adminOnly := auth.RoleAuthMiddleware(string(user.RoleAdmin))

	SetupAuthRoutes(router, c.Auth, authenticated)

	protected := router.Group("")
	protected.Use(authenticated, vessel.VesselMiddleware())

	SetupFreightRoutes(protected, c.Freight)
	SetupTicketRoutes(protected, c.Ticket, adminOnly)
	SetupUserRoutes(protected, c.User, adminOnly)
	SetupReportRoutes(protected, c.Report, adminOnly)
}
