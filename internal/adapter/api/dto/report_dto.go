package dto

import (
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
)

// ReportQuery representa os filtros aceitos por todos os relatórios
type ReportQuery struct {
	Period        string `form:"period"`
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	PaymentStatus string `form:"paymentStatus"`
	PaymentMethod string `form:"paymentMethod"`
	Vessel        string `form:"vessel"`
}

// ToFilter converte a consulta no filtro do montador de relatórios
func (q ReportQuery) ToFilter() report.Filter {
	return report.Filter{
		Period:        q.Period,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		PaymentStatus: billing.PaymentStatus(q.PaymentStatus),
		PaymentMethod: billing.PaymentMethod(q.PaymentMethod),
		Vessel:        q.Vessel,
	}
}

// ExportQuery acrescenta o formato aos filtros do relatório
type ExportQuery struct {
	ReportQuery
	Format string `form:"format" binding:"required"`
}
