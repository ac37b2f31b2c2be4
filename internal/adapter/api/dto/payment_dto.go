package dto

import (
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
)

// PaymentRequest representa a alteração de pagamento de uma nota ou bilhete
type PaymentRequest struct {
	PaymentStatus string  `json:"paymentStatus" binding:"required"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentDate   *string `json:"paymentDate"`
}

// ToUpdate converte a requisição na alteração de domínio
func (r PaymentRequest) ToUpdate(loc *time.Location) (billing.PaymentUpdate, error) {
	date, err := parseOptional(r.PaymentDate, loc)
	if err != nil {
		return billing.PaymentUpdate{}, err
	}
	return billing.PaymentUpdate{
		Status: billing.PaymentStatus(r.PaymentStatus),
		Method: billing.PaymentMethod(r.PaymentMethod),
		Date:   date,
	}, nil
}

// PaymentResponse é o subestado de pagamento e cancelamento exposto nas respostas
type PaymentResponse struct {
	PaymentStatus string     `json:"paymentStatus"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	Status        string     `json:"status"`
	CanceledAt    *time.Time `json:"canceledAt,omitempty"`
}

func toPaymentResponse(p billing.Payment, l billing.Lifecycle) PaymentResponse {
	return PaymentResponse{
		PaymentStatus: string(p.Status),
		PaymentMethod: string(p.Method),
		PaymentDate:   p.Date,
		Status:        string(l.Status),
		CanceledAt:    l.CanceledAt,
	}
}
