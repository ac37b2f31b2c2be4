package ticket

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/shopspring/decimal"
)

// Erros de domínio
var (
	ErrEmptyPassenger        = errors.New("nome do passageiro não pode ser vazio")
	ErrEmptyAddress          = errors.New("endereço não pode ser vazio")
	ErrEmptyPhone            = errors.New("telefone não pode ser vazio")
	ErrEmptyCPF              = errors.New("CPF não pode ser vazio")
	ErrEmptyRG               = errors.New("RG não pode ser vazio")
	ErrEmptyVessel           = errors.New("embarcação é obrigatória")
	ErrEmptyRoute            = errors.New("rota não pode ser vazia")
	ErrEmptyDeparture        = errors.New("data e hora de saída são obrigatórias")
	ErrInvalidAccommodation  = errors.New("tipo de acomodação inválido")
	ErrSuiteNumberRequired   = errors.New("número da suíte é obrigatório para suíte e camarote")
	ErrInvalidVessel         = errors.New("embarcação inválida")
	ErrNegativeValue         = errors.New("valores do bilhete não podem ser negativos")
	ErrNegativeLuggageAmount = errors.New("quantidade de bagagens não pode ser negativa")
)

// Accommodation representa o tipo de acomodação
type Accommodation string

const (
	FirstClass  Accommodation = "1ª Classe"
	SecondClass Accommodation = "2ª Classe"
	HalfFare    Accommodation = "½ passageiro" // Meia passagem
	Suite       Accommodation = "suíte"
	Cabin       Accommodation = "camarote"
)

// IsValid verifica se o tipo é conhecido
func (a Accommodation) IsValid() bool {
	switch a {
	case FirstClass, SecondClass, HalfFare, Suite, Cabin:
		return true
	}
	return false
}

// NeedsSuiteNumber indica se a acomodação exige número da suíte
func (a Accommodation) NeedsSuiteNumber() bool {
	return a == Suite || a == Cabin
}

// Ticket representa um bilhete de passagem
type Ticket struct {
	ID                string          `json:"id"`                    // Identificador único
	TicketNumber      int             `json:"ticketNumber"`          // Número sequencial
	IssueDate         time.Time       `json:"issueDate"`             // Data de emissão
	PassengerName     string          `json:"passengerName"`         // Passageiro
	Address           string          `json:"address"`               // Endereço
	Phone             string          `json:"phone"`                 // Telefone
	CPF               string          `json:"cpf"`                   // CPF
	RG                string          `json:"rg"`                    // RG
	Route             string          `json:"route"`                 // Rota no formato "origem - destino"
	DepartureDateTime time.Time       `json:"departureDateTime"`     // Saída
	Accommodation     Accommodation   `json:"accommodationType"`     // Acomodação
	SuiteNumber       string          `json:"suiteNumber,omitempty"` // Suíte ou camarote
	LuggageQuantity   int             `json:"luggageQuantity"`       // Volumes de bagagem
	Discount          decimal.Decimal `json:"discount"`              // Desconto já aplicado
	Total             decimal.Decimal `json:"total"`                 // Valor final
	VesselName        vessel.Name     `json:"vesselName"`            // Embarcação
	DigitalSignature  string          `json:"digitalSignature"`      // Assinatura digitalizada
	billing.Payment
	billing.Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft agrupa os dados informados na emissão
type Draft struct {
	IssueDate         *time.Time
	PassengerName     string
	Address           string
	Phone             string
	CPF               string
	RG                string
	Route             string
	DepartureDateTime time.Time
	Accommodation     Accommodation
	SuiteNumber       string
	LuggageQuantity   int
	Discount          decimal.Decimal
	Total             decimal.Decimal
	VesselName        vessel.Name
	DigitalSignature  string
	Payment           billing.PaymentUpdate
}

// NewTicket cria um bilhete validado. O número é atribuído pelo repositório.
func NewTicket(d Draft, now time.Time) (*Ticket, error) {
	switch {
	case strings.TrimSpace(d.PassengerName) == "":
		return nil, ErrEmptyPassenger
	case strings.TrimSpace(d.Address) == "":
		return nil, ErrEmptyAddress
	case strings.TrimSpace(d.Phone) == "":
		return nil, ErrEmptyPhone
	case strings.TrimSpace(d.CPF) == "":
		return nil, ErrEmptyCPF
	case strings.TrimSpace(d.RG) == "":
		return nil, ErrEmptyRG
	case strings.TrimSpace(d.Route) == "":
		return nil, ErrEmptyRoute
	case d.DepartureDateTime.IsZero():
		return nil, ErrEmptyDeparture
	case !d.Accommodation.IsValid():
		return nil, ErrInvalidAccommodation
	case d.Accommodation.NeedsSuiteNumber() && strings.TrimSpace(d.SuiteNumber) == "":
		return nil, ErrSuiteNumberRequired
	case d.VesselName == "":
		return nil, ErrEmptyVessel
	case !d.VesselName.IsValid():
		return nil, ErrInvalidVessel
	case d.Total.IsNegative() || d.Discount.IsNegative():
		return nil, ErrNegativeValue
	case d.LuggageQuantity < 0:
		return nil, ErrNegativeLuggageAmount
	}

	payment, err := billing.NewPayment(d.Payment, now)
	if err != nil {
		return nil, err
	}

	issue := now
	if d.IssueDate != nil {
		issue = *d.IssueDate
	}

	suite := d.SuiteNumber
	if !d.Accommodation.NeedsSuiteNumber() {
		suite = ""
	}

	return &Ticket{
		ID:                uuid.New().String(),
		IssueDate:         issue,
		PassengerName:     strings.TrimSpace(d.PassengerName),
		Address:           d.Address,
		Phone:             d.Phone,
		CPF:               d.CPF,
		RG:                d.RG,
		Route:             d.Route,
		DepartureDateTime: d.DepartureDateTime,
		Accommodation:     d.Accommodation,
		SuiteNumber:       suite,
		LuggageQuantity:   d.LuggageQuantity,
		Discount:          d.Discount,
		Total:             d.Total,
		VesselName:        d.VesselName,
		DigitalSignature:  d.DigitalSignature,
		Payment:           payment,
		Lifecycle:         billing.NewLifecycle(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// NetValue é o total do bilhete, que já considera o desconto
func (t *Ticket) NetValue() decimal.Decimal {
	return t.Total
}

// Destination extrai o destino da rota "origem - destino".
// O hífen sem espaços só separa quando a rota não usa " - ", como em "Manaus-Parintins".
func (t *Ticket) Destination() string {
	if i := strings.LastIndex(t.Route, " - "); i >= 0 {
		return strings.TrimSpace(t.Route[i+3:])
	}
	i := strings.LastIndex(t.Route, "-")
	if i < 0 {
		return strings.TrimSpace(t.Route)
	}
	return strings.TrimSpace(t.Route[i+1:])
}

// UpdatePayment aplica a alteração de pagamento
func (t *Ticket) UpdatePayment(u billing.PaymentUpdate, now time.Time) error {
	if err := t.Payment.Apply(u, now); err != nil {
		return err
	}
	t.UpdatedAt = now
	return nil
}

// Cancel cancela o bilhete mantendo o pagamento
func (t *Ticket) Cancel(now time.Time) error {
	if err := t.Lifecycle.Cancel(now); err != nil {
		return err
	}
	t.UpdatedAt = now
	return nil
}
