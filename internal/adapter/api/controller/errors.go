package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/repository"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/export"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
)

// erros de entrada do usuário
var validationErrors = []error{
	dto.ErrInvalidDate,
	billing.ErrInvalidPaymentStatus,
	billing.ErrInvalidPaymentMethod,
	billing.ErrMethodRequired,
	freight.ErrEmptyRecipient,
	freight.ErrEmptyAddress,
	freight.ErrEmptyCity,
	freight.ErrEmptyPhone,
	freight.ErrEmptyIDNumber,
	freight.ErrInvalidVessel,
	freight.ErrNoGoods,
	freight.ErrInvalidGood,
	freight.ErrNegativeValue,
	ticket.ErrEmptyPassenger,
	ticket.ErrEmptyAddress,
	ticket.ErrEmptyPhone,
	ticket.ErrEmptyCPF,
	ticket.ErrEmptyRG,
	ticket.ErrEmptyVessel,
	ticket.ErrEmptyRoute,
	ticket.ErrEmptyDeparture,
	ticket.ErrInvalidAccommodation,
	ticket.ErrSuiteNumberRequired,
	ticket.ErrInvalidVessel,
	ticket.ErrNegativeValue,
	ticket.ErrNegativeLuggageAmount,
	user.ErrEmptyUsername,
	user.ErrEmptyName,
	user.ErrShortPassword,
	user.ErrInvalidRole,
	report.ErrUnknownKind,
	report.ErrInvalidFilter,
	export.ErrUnsupportedFormat,
}

// transições recusadas pelas regras de negócio
var ruleErrors = []error{
	billing.ErrPaidToPending,
	billing.ErrAlreadyCanceled,
	user.ErrSelfDeactivate,
	user.ErrAlreadyInactive,
}

var notFoundErrors = []error{
	repository.ErrNoteNotFound,
	repository.ErrTicketNotFound,
	repository.ErrUserNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor classifica o erro no código HTTP correspondente
func statusFor(err error) (int, string) {
	switch {
	case isAny(err, validationErrors):
		return http.StatusBadRequest, "Requisição inválida"
	case isAny(err, ruleErrors):
		return http.StatusUnprocessableEntity, "Operação não permitida"
	case isAny(err, notFoundErrors):
		return http.StatusNotFound, "Registro não encontrado"
	case errors.Is(err, repository.ErrUserDuplicateUsername):
		return http.StatusConflict, "Usuário já existe"
	case errors.Is(err, export.ErrTimeout):
		return http.StatusGatewayTimeout, "Tempo limite excedido"
	case errors.Is(err, repository.ErrDatabase), errors.Is(err, report.ErrFetchFailed):
		return http.StatusServiceUnavailable, "Banco de dados indisponível"
	default:
		return http.StatusInternalServerError, "Erro interno"
	}
}

// respondError escreve a resposta de erro e registra falhas de infraestrutura
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	code, message := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Error(message, "path", ctx.FullPath(), "error", err)
	}
	ctx.JSON(code, dto.NewErrorResponse(code, message, err.Error()))
}

// badRequest responde erros de decodificação da requisição
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
}
