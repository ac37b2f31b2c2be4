package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/export"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
)

// ReportController gerencia as requisições de relatórios e exportações
type ReportController struct {
	service  *report.Service
	exporter *export.Exporter
	logger   logger.Logger
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(service *report.Service, exporter *export.Exporter, log logger.Logger) *ReportController {
	return &ReportController{
		service:  service,
		exporter: exporter,
		logger:   log,
	}
}

// Generate monta um relatório
// @Summary Gera um relatório
// @Description Tipos: dashboard, financial, operational, payments, customers. period tem precedência sobre startDate e endDate.
// @Tags reports
// @Produce json
// @Security Bearer
// @Param kind path string true "Tipo do relatório"
// @Param period query string false "today, yesterday, thisWeek, thisMonth, last30Days, thisYear ou all"
// @Param startDate query string false "Data inicial (AAAA-MM-DD)"
// @Param endDate query string false "Data final (AAAA-MM-DD), inclusiva"
// @Param paymentStatus query string false "pendente ou pago"
// @Param paymentMethod query string false "pix, dinheiro ou cartao"
// @Param vessel query string false "Trecho do nome da embarcação"
// @Success 200 {object} object
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /reports/{kind} [get]
func (c *ReportController) Generate(ctx *gin.Context) {
	kind, err := report.ParseKind(ctx.Param("kind"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	var query dto.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}

	result, err := c.service.Generate(ctx.Request.Context(), kind, query.ToFilter())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Export gera o relatório consolidado em PDF ou planilha
// @Summary Exporta um relatório
// @Description O arquivo é gerado por completo antes do envio. Aceita os mesmos filtros do relatório.
// @Tags reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param kind path string true "Tipo do relatório"
// @Param format query string true "pdf ou excel"
// @Param period query string false "Período"
// @Param startDate query string false "Data inicial (AAAA-MM-DD)"
// @Param endDate query string false "Data final (AAAA-MM-DD)"
// @Param paymentStatus query string false "pendente ou pago"
// @Param paymentMethod query string false "pix, dinheiro ou cartao"
// @Param vessel query string false "Trecho do nome da embarcação"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /reports/{kind}/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	kind, err := report.ParseKind(ctx.Param("kind"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	var query dto.ExportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}

	file, err := c.exporter.Export(ctx.Request.Context(), kind, query.Format, query.ToFilter())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("Relatório exportado", "kind", kind, "format", query.Format, "bytes", len(file.Content))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	ctx.Data(http.StatusOK, file.ContentType, file.Content)
}
