package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/vessel"
)

// FreightController gerencia as requisições relacionadas a notas de frete
type FreightController struct {
	repository freight.Repository
	dates      *daterange.Builder
	logger     logger.Logger
}

// NewFreightController cria uma nova instância de FreightController
func NewFreightController(repository freight.Repository, dates *daterange.Builder, log logger.Logger) *FreightController {
	return &FreightController{
		repository: repository,
		dates:      dates,
		logger:     log,
	}
}

// Create emite uma nova nota de frete
// @Summary Emite uma nota de frete
// @Description Cria a nota e atribui o próximo número da sequência
// @Tags freight-notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param note body dto.FreightNoteRequest true "Dados da nota"
// @Success 201 {object} dto.FreightNoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /freight-notes [post]
func (c *FreightController) Create(ctx *gin.Context) {
	var request dto.FreightNoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		if errors.Is(err, freight.ErrInvalidGood) {
			respondError(ctx, c.logger, err)
			return
		}
		badRequest(ctx, err)
		return
	}

	draft, err := request.ToDraft(c.dates.Location())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	note, err := freight.NewNote(draft, c.dates.Now())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := c.repository.Create(ctx.Request.Context(), note); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Nota de frete emitida", "id", note.ID, "number", note.NoteNumber, "vessel", note.VesselName)
	ctx.JSON(http.StatusCreated, dto.ToFreightNoteResponse(note))
}

// List lista as notas de frete
// @Summary Lista as notas de frete
// @Description Lista as notas da emissão mais recente para a mais antiga. Sem vesselName, usa o cabeçalho vessel-name.
// @Tags freight-notes
// @Produce json
// @Security Bearer
// @Param vesselName query string false "Trecho do nome da embarcação"
// @Param paymentStatus query string false "pendente ou pago"
// @Param paymentMethod query string false "pix, dinheiro ou cartao"
// @Success 200 {object} dto.FreightNoteListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /freight-notes [get]
func (c *FreightController) List(ctx *gin.Context) {
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

	notes, err := c.repository.Find(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFreightNoteListResponse(notes))
}

// GetByID busca uma nota de frete pelo ID
// @Summary Busca uma nota de frete
// @Tags freight-notes
// @Produce json
// @Security Bearer
// @Param id path string true "ID da nota"
// @Success 200 {object} dto.FreightNoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /freight-notes/{id} [get]
func (c *FreightController) GetByID(ctx *gin.Context) {
	note, err := c.repository.FindByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToFreightNoteResponse(note))
}

// UpdatePayment altera o pagamento de uma nota de frete
// @Summary Altera o pagamento de uma nota
// @Description Uma nota paga não volta para pendente
// @Tags freight-notes
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da nota"
// @Param payment body dto.PaymentRequest true "Novo pagamento"
// @Success 200 {object} dto.FreightNoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /freight-notes/{id}/payment [patch]
func (c *FreightController) UpdatePayment(ctx *gin.Context) {
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
	note, err := c.repository.Update(ctx.Request.Context(), ctx.Param("id"), func(n *freight.Note) error {
		return n.UpdatePayment(update, now)
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Pagamento da nota alterado", "id", note.ID, "status", note.Payment.Status, "method", note.Payment.Method)
	ctx.JSON(http.StatusOK, dto.ToFreightNoteResponse(note))
}

// Cancel cancela uma nota de frete
// @Summary Cancela uma nota de frete
// @Description O pagamento registrado é mantido
// @Tags freight-notes
// @Produce json
// @Security Bearer
// @Param id path string true "ID da nota"
// @Success 200 {object} dto.FreightNoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /freight-notes/{id}/cancel [patch]
func (c *FreightController) Cancel(ctx *gin.Context) {
	now := c.dates.Now()
	note, err := c.repository.Update(ctx.Request.Context(), ctx.Param("id"), func(n *freight.Note) error {
		return n.Cancel(now)
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Nota de frete cancelada", "id", note.ID, "number", note.NoteNumber)
	ctx.JSON(http.StatusOK, dto.ToFreightNoteResponse(note))
}
