package billing

import (
	"errors"
	"strings"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
)

// ErrAlreadyCanceled indica tentativa de cancelar um registro já cancelado
var ErrAlreadyCanceled = errors.New("registro já está cancelado")

// Status representa a situação do registro, independente do pagamento
type Status string

const (
	StatusActive   Status = "ativo"
	StatusCanceled Status = "cancelado"
)

// Lifecycle é o subestado de cancelamento comum a notas e bilhetes
type Lifecycle struct {
	Status     Status     `json:"status"`               // Situação
	CanceledAt *time.Time `json:"canceledAt,omitempty"` // Preenchido somente quando cancelado
}

// NewLifecycle cria um registro ativo
func NewLifecycle() Lifecycle {
	return Lifecycle{Status: StatusActive}
}

// IsCanceled indica se o registro foi cancelado
func (l Lifecycle) IsCanceled() bool {
	return l.Status == StatusCanceled
}

// Cancel marca o registro como cancelado
func (l *Lifecycle) Cancel(now time.Time) error {
	if l.IsCanceled() {
		return ErrAlreadyCanceled
	}
	l.Status = StatusCanceled
	l.CanceledAt = &now
	return nil
}

// Filter é o filtro comum de consulta de notas e bilhetes.
// O mesmo valor deve ser usado para as duas consultas de um relatório.
type Filter struct {
	Period        daterange.Range // Intervalo sobre a data de emissão
	PaymentStatus PaymentStatus   // Vazio para qualquer status
	PaymentMethod PaymentMethod   // Vazio para qualquer forma
	Vessel        string          // Trecho do nome da embarcação, sem diferenciar maiúsculas
}

// Matches aplica o filtro em memória com a mesma semântica da consulta no banco
func (f Filter) Matches(issueDate time.Time, p Payment, vesselName string) bool {
	if !f.Period.Contains(issueDate) {
		return false
	}
	if f.PaymentStatus != "" && p.Status != f.PaymentStatus {
		return false
	}
	if f.PaymentMethod != "" && p.Method != f.PaymentMethod {
		return false
	}
	if f.Vessel != "" && !strings.Contains(strings.ToLower(vesselName), strings.ToLower(f.Vessel)) {
		return false
	}
	return true
}
