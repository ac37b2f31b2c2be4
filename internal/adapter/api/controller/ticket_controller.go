package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/vessel"
)

// TicketController gerencia as requisições relacionadas a bilhetes de passagem
type TicketController struct {
	repository ticket.Repository
	dates      *daterange.Builder
	logger     logger.Logger
}

// NewTicketController cria uma nova instância de TicketController
func NewTicketController(repository ticket.Repository, dates *daterange.Builder, log logger.Logger) *TicketController {
	return &TicketController{
		repository: repository,
		dates:      dates,
		logger:     log,
	}
}

// Create emite um novo bilhete
// @Summary Emite um bilhete
// @Description Sem vesselName no corpo, usa a embarcação do cabeçalho vessel-name
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body dto.TicketRequest true "Dados do bilhete"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /tickets [post]
func (c *TicketController) Create(ctx *gin.Context) {
	var request dto.TicketRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	draft, err := request.ToDraft(c.dates.Location(), vessel.GetVessel(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	t, err := ticket.NewTicket(draft, c.dates.Now())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.repository.Create(ctx.Request.Context(), t); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Bilhete emitido", "id", t.ID, "number", t.TicketNumber, "route", t.Route)
	ctx.JSON(http.StatusCreated, dto.ToTicketResponse(t))
}

// List lista os bilhetes
// @Summary Lista os bilhetes
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param vesselName query string false "Trecho do nome da embarcação"
// @Param paymentStatus query string false "pendente ou pago"
// @Param paymentMethod query string false "pix, dinheiro ou cartao"
// @Success 200 {object} dto.TicketListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /tickets [get]
func (c *TicketController) List(ctx *gin.Context) {
	var query dto.RecordListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}
	if query.VesselName == "" {
		query.VesselName = string(vessel.GetVessel(ctx))
	}

	filter, err := query.ToFilter()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	tickets, err := c.repository.Find(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTicketListResponse(tickets))
}

// GetByID busca um bilhete pelo ID
// @Summary Busca um bilhete
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do bilhete"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tickets/{id} [get]
func (c *TicketController) GetByID(ctx *gin.Context) {
	t, err := c.repository.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTicketResponse(t))
}

// UpdatePayment altera o pagamento de um bilhete
// @Summary Altera o pagamento de um bilhete
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do bilhete"
// @Param payment body dto.PaymentRequest true "Novo pagamento"
// @Success 200 {object} dto.TicketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tickets/{id}/payment [patch]
func (c *TicketController) UpdatePayment(ctx *gin.Context) {
	var request dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	update, err := request.ToUpdate(c.dates.Location())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	now := c.dates.Now()
	t, err := c.repository.Update(ctx.Request.Context(), ctx.Param("id"), func(t *ticket.Ticket) error {
		return t.UpdatePayment(update, now)
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Pagamento do bilhete alterado", "id", t.ID, "status", t.Payment.Status, "method", t.Payment.Method)
	ctx.JSON(http.StatusOK, dto.ToTicketResponse(t))
}

// Cancel cancela um bilhete
// @Summary Cancela um bilhete
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do bilhete"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tickets/{id}/cancel [patch]
func (c *TicketController) Cancel(ctx *gin.Context) {
	now := c.dates.Now()
	t, err := c.repository.Update(ctx.Request.Context(), ctx.Param("id"), func(t *ticket.Ticket) error {
		return t.Cancel(now)
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Bilhete cancelado", "id", t.ID, "number", t.TicketNumber)
	ctx.JSON(http.StatusOK, dto.ToTicketResponse(t))
}

// Delete remove um bilhete definitivamente
// @Summary Exclui um bilhete
// @Description Operação legada restrita a administradores. Prefira o cancelamento.
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do bilhete"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tickets/{id} [delete]
func (c *TicketController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.repository.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Warn("Bilhete excluído", "id", id, "by", auth.GetCurrentUser(ctx).Username)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Bilhete excluído com sucesso", nil))
}
