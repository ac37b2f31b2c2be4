package billing

import (
	"errors"
	"time"
)

// Erros de domínio do pagamento
var (
	ErrInvalidPaymentStatus = errors.New("status de pagamento inválido")
	ErrInvalidPaymentMethod = errors.New("forma de pagamento inválida")
	ErrMethodRequired       = errors.New("forma de pagamento é obrigatória para pagamentos aprovados")
	ErrPaidToPending        = errors.New("pagamentos já aprovados não podem ser alterados para pendente")
)

// PaymentStatus representa a situação do pagamento
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pendente"
	PaymentPaid    PaymentStatus = "pago"
)

// IsValid verifica se o status é conhecido
func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// PaymentMethod representa a forma de pagamento
type PaymentMethod string

const (
	MethodPix  PaymentMethod = "pix"
	MethodCash PaymentMethod = "dinheiro"
	MethodCard PaymentMethod = "cartao"
)

// Methods lista as formas de pagamento na ordem de exibição
var Methods = []PaymentMethod{MethodPix, MethodCash, MethodCard}

// IsValid verifica se a forma é conhecida
func (m PaymentMethod) IsValid() bool {
	return m == MethodPix || m == MethodCash || m == MethodCard
}

// Label retorna o nome de exibição
func (m PaymentMethod) Label() string {
	switch m {
	case MethodPix:
		return "PIX"
	case MethodCash:
		return "Dinheiro"
	case MethodCard:
		return "Cartão"
	default:
		return string(m)
	}
}

// Payment é o subestado de pagamento comum a notas e bilhetes
type Payment struct {
	Status PaymentStatus `json:"paymentStatus"`           // Situação
	Method PaymentMethod `json:"paymentMethod,omitempty"` // Forma, presente apenas quando pago
	Date   *time.Time    `json:"paymentDate,omitempty"`   // Data, presente apenas quando pago
}

// PaymentUpdate é a alteração solicitada no pagamento
type PaymentUpdate struct {
	Status PaymentStatus
	Method PaymentMethod
	Date   *time.Time
}

// NewPayment cria o subestado inicial, validando as mesmas regras da atualização
func NewPayment(u PaymentUpdate, now time.Time) (Payment, error) {
	p := Payment{Status: PaymentPending}
	if u.Status == "" {
		return p, nil
	}
	if err := p.Apply(u, now); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// IsPaid indica se o pagamento foi aprovado
func (p Payment) IsPaid() bool {
	return p.Status == PaymentPaid
}

// Apply aplica a atualização. Em caso de erro o pagamento permanece inalterado.
func (p *Payment) Apply(u PaymentUpdate, now time.Time) error {
	if !u.Status.IsValid() {
		return ErrInvalidPaymentStatus
	}

	if p.Status == PaymentPaid && u.Status == PaymentPending {
		return ErrPaidToPending
	}

	if u.Status == PaymentPending {
		p.Status = PaymentPending
		p.Method = ""
		p.Date = nil
		return nil
	}

	if u.Method == "" {
		return ErrMethodRequired
	}
	if !u.Method.IsValid() {
		return ErrInvalidPaymentMethod
	}

	date := now
	if u.Date != nil {
		date = *u.Date
	}

	p.Status = PaymentPaid
	p.Method = u.Method
	p.Date = &date
	return nil
}
