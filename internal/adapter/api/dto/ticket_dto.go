package dto

import (
	"fmt"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// TicketRequest representa os dados de emissão de um bilhete
type TicketRequest struct {
	IssueDate         *string          `json:"issueDate"`
	PassengerName     string           `json:"passengerName" binding:"required"`
	Address           string           `json:"address"`
	Phone             string           `json:"phone"`
	CPF               string           `json:"cpf"`
	RG                string           `json:"rg"`
	Route             string           `json:"route" binding:"required"`
	DepartureDateTime string           `json:"departureDateTime" binding:"required"`
	AccommodationType string           `json:"accommodationType" binding:"required"`
	SuiteNumber       string           `json:"suiteNumber"`
	LuggageQuantity   int              `json:"luggageQuantity"`
	Discount          *decimal.Decimal `json:"discount" swaggertype:"number"`
	Total             decimal.Decimal  `json:"total" swaggertype:"number"`
	VesselName        string           `json:"vesselName"`
	DigitalSignature  string           `json:"digitalSignature"`
	PaymentStatus     string           `json:"paymentStatus"`
	PaymentMethod     string           `json:"paymentMethod"`
	PaymentDate       *string          `json:"paymentDate"`
}

// ToDraft converte a requisição nos dados de domínio.
// A embarcação padrão é usada quando a requisição não informa nenhuma.
func (r TicketRequest) ToDraft(loc *time.Location, defaultVessel vessel.Name) (ticket.Draft, error) {
	issue, err := parseOptional(r.IssueDate, loc)
	if err != nil {
		return ticket.Draft{}, err
	}
	departure, err := ParseDateTime(r.DepartureDateTime, loc)
	if err != nil {
		return ticket.Draft{}, fmt.Errorf("departureDateTime: %w", err)
	}
	payment, err := PaymentRequest{
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		PaymentDate:   r.PaymentDate,
	}.ToUpdate(loc)
	if err != nil {
		return ticket.Draft{}, err
	}

	discount := decimal.Zero
	if r.Discount != nil {
		discount = *r.Discount
	}
	vesselName := vessel.Name(r.VesselName)
	if vesselName == "" {
		vesselName = defaultVessel
	}

	return ticket.Draft{
		IssueDate:         issue,
		PassengerName:     r.PassengerName,
		Address:           r.Address,
		Phone:             r.Phone,
		CPF:               r.CPF,
		RG:                r.RG,
		Route:             r.Route,
		DepartureDateTime: departure,
		Accommodation:     ticket.Accommodation(r.AccommodationType),
		SuiteNumber:       r.SuiteNumber,
		LuggageQuantity:   r.LuggageQuantity,
		Discount:          discount,
		Total:             r.Total,
		VesselName:        vesselName,
		DigitalSignature:  r.DigitalSignature,
		Payment:           payment,
	}, nil
}

// TicketResponse representa a resposta com dados de um bilhete
type TicketResponse struct {
	ID                string       `json:"id"`
	TicketNumber      int          `json:"ticketNumber"`
	IssueDate         time.Time    `json:"issueDate"`
	PassengerName     string       `json:"passengerName"`
	Address           string       `json:"address,omitempty"`
	Phone             string       `json:"phone,omitempty"`
	CPF               string       `json:"cpf,omitempty"`
	RG                string       `json:"rg,omitempty"`
	Route             string       `json:"route"`
	Destination       string       `json:"destination"`
	DepartureDateTime time.Time    `json:"departureDateTime"`
	AccommodationType string       `json:"accommodationType"`
	SuiteNumber       string       `json:"suiteNumber,omitempty"`
	LuggageQuantity   int          `json:"luggageQuantity"`
	Discount          money.Amount `json:"discount"`
	Total             money.Amount `json:"total"`
	VesselName        string       `json:"vesselName"`
	DigitalSignature  string       `json:"digitalSignature,omitempty"`
	PaymentResponse
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TicketListResponse representa a lista de bilhetes
type TicketListResponse struct {
	Data       []TicketResponse `json:"data"`
	TotalCount int              `json:"totalCount"`
}

// ToTicketResponse converte um bilhete do domínio para DTO de resposta
func ToTicketResponse(t *ticket.Ticket) TicketResponse {
	return TicketResponse{
		ID:                t.ID,
		TicketNumber:      t.TicketNumber,
		IssueDate:         t.IssueDate,
		PassengerName:     t.PassengerName,
		Address:           t.Address,
		Phone:             t.Phone,
		CPF:               t.CPF,
		RG:                t.RG,
		Route:             t.Route,
		Destination:       t.Destination(),
		DepartureDateTime: t.DepartureDateTime,
		AccommodationType: string(t.Accommodation),
		SuiteNumber:       t.SuiteNumber,
		LuggageQuantity:   t.LuggageQuantity,
		Discount:          money.FromDecimal(t.Discount),
		Total:             money.FromDecimal(t.Total),
		VesselName:        string(t.VesselName),
		DigitalSignature:  t.DigitalSignature,
		PaymentResponse:   toPaymentResponse(t.Payment, t.Lifecycle),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// ToTicketListResponse converte a lista de bilhetes do domínio
func ToTicketListResponse(tickets []*ticket.Ticket) TicketListResponse {
	data := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		data[i] = ToTicketResponse(t)
	}
	return TicketListResponse{Data: data, TotalCount: len(data)}
}
