package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// FreightNoteRequest representa os dados de emissão de uma nota de frete
type FreightNoteRequest struct {
	IssueDate        *string        `json:"issueDate"`
	Recipient        string         `json:"recipient" binding:"required"`
	Address          string         `json:"address" binding:"required"`
	City             string         `json:"city" binding:"required"`
	Phone            string         `json:"phone" binding:"required"`
	IDNumber         string         `json:"idNumber" binding:"required"`
	VesselName       string         `json:"vesselName" binding:"required"`
	Goods            []GoodRequest  `json:"goods" binding:"required,min=1"`
	DigitalSignature string         `json:"digitalSignature"`
	PaymentStatus    string         `json:"paymentStatus"`
	PaymentMethod    string         `json:"paymentMethod"`
	PaymentDate      *string        `json:"paymentDate"`
}

// GoodRequest representa uma mercadoria enviada pelo cliente.
// Ao contrário de freight.Good, números ausentes ou malformados são rejeitados.
type GoodRequest struct {
	Quantity      int             `json:"quantity" swaggertype:"integer"`
	Description   string          `json:"description"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Value         decimal.Decimal `json:"value" swaggertype:"number"`
	Weight        decimal.Decimal `json:"weight" swaggertype:"number"`
	Discount      decimal.Decimal `json:"discount" swaggertype:"number"`
}

// UnmarshalJSON exige quantity, value e weight numéricos. Texto numérico, como "200", é aceito.
func (g *GoodRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Quantity      json.RawMessage `json:"quantity"`
		Description   string          `json:"description"`
		InvoiceNumber string          `json:"invoiceNumber"`
		Value         json.RawMessage `json:"value"`
		Weight        json.RawMessage `json:"weight"`
		Discount      json.RawMessage `json:"discount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", freight.ErrInvalidGood, err)
	}

	quantity, err := strictDecimal(raw.Quantity, "quantity", true)
	if err != nil {
		return err
	}
	if !quantity.IsInteger() {
		return fmt.Errorf("%w: quantity deve ser inteiro", freight.ErrInvalidGood)
	}
	value, err := strictDecimal(raw.Value, "value", true)
	if err != nil {
		return err
	}
	weight, err := strictDecimal(raw.Weight, "weight", true)
	if err != nil {
		return err
	}
	discount, err := strictDecimal(raw.Discount, "discount", false)
	if err != nil {
		return err
	}

	*g = GoodRequest{
		Quantity:      int(quantity.IntPart()),
		Description:   raw.Description,
		InvoiceNumber: raw.InvoiceNumber,
		Value:         value,
		Weight:        weight,
		Discount:      discount,
	}
	return nil
}

func strictDecimal(raw json.RawMessage, field string, required bool) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		if required {
			return decimal.Zero, fmt.Errorf("%w: %s é obrigatório", freight.ErrInvalidGood, field)
		}
		return decimal.Zero, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON([]byte(s)); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s deve ser numérico", freight.ErrInvalidGood, field)
	}
	return d, nil
}

// ToGood converte para a mercadoria de domínio
func (g GoodRequest) ToGood() freight.Good {
	return freight.Good{
		Quantity:      g.Quantity,
		Description:   g.Description,
		InvoiceNumber: g.InvoiceNumber,
		Value:         g.Value,
		Weight:        g.Weight,
		Discount:      g.Discount,
	}
}

// ToDraft converte a requisição nos dados de domínio
func (r FreightNoteRequest) ToDraft(loc *time.Location) (freight.Draft, error) {
	issue, err := parseOptional(r.IssueDate, loc)
	if err != nil {
		return freight.Draft{}, err
	}
	payment, err := PaymentRequest{
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		PaymentDate:   r.PaymentDate,
	}.ToUpdate(loc)
	if err != nil {
		return freight.Draft{}, err
	}

	goods := make([]freight.Good, len(r.Goods))
	for i, g := range r.Goods {
		goods[i] = g.ToGood()
	}

	return freight.Draft{
		IssueDate:        issue,
		Recipient:        r.Recipient,
		Address:          r.Address,
		City:             r.City,
		Phone:            r.Phone,
		IDNumber:         r.IDNumber,
		VesselName:       vessel.Name(r.VesselName),
		Goods:            goods,
		DigitalSignature: r.DigitalSignature,
		Payment:          payment,
	}, nil
}

// FreightNoteResponse representa a resposta com dados de uma nota de frete
type FreightNoteResponse struct {
	ID               string         `json:"id"`
	NoteNumber       int            `json:"noteNumber"`
	IssueDate        time.Time      `json:"issueDate"`
	Recipient        string         `json:"recipient"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	Phone            string         `json:"phone"`
	IDNumber         string         `json:"idNumber"`
	VesselName       string         `json:"vesselName"`
	Goods            []freight.Good `json:"goods"`
	DigitalSignature string         `json:"digitalSignature,omitempty"`
	PaymentResponse
	NetValue      money.Amount `json:"netValue"`
	TotalWeight   money.Amount `json:"totalWeight"`
	TotalQuantity int          `json:"totalQuantity"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// FreightNoteListResponse representa a lista de notas de frete
type FreightNoteListResponse struct {
	Data       []FreightNoteResponse `json:"data"`
	TotalCount int                   `json:"totalCount"`
}

// ToFreightNoteResponse converte uma nota do domínio para DTO de resposta
func ToFreightNoteResponse(n *freight.Note) FreightNoteResponse {
	goods := n.Goods
	if goods == nil {
		goods = []freight.Good{}
	}
	return FreightNoteResponse{
		ID:               n.ID,
		NoteNumber:       n.NoteNumber,
		IssueDate:        n.IssueDate,
		Recipient:        n.Recipient,
		Address:          n.Address,
		City:             n.City,
		Phone:            n.Phone,
		IDNumber:         n.IDNumber,
		VesselName:       string(n.VesselName),
		Goods:            goods,
		DigitalSignature: n.DigitalSignature,
		PaymentResponse:  toPaymentResponse(n.Payment, n.Lifecycle),
		NetValue:         money.FromDecimal(n.NetValue()),
		TotalWeight:      money.FromDecimal(n.TotalWeight()),
		TotalQuantity:    n.TotalQuantity(),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

// ToFreightNoteListResponse converte a lista de notas do domínio
func ToFreightNoteListResponse(notes []*freight.Note) FreightNoteListResponse {
	data := make([]FreightNoteResponse, len(notes))
	for i, n := range notes {
		data[i] = ToFreightNoteResponse(n)
	}
	return FreightNoteListResponse{Data: data, TotalCount: len(data)}
}

// RecordListQuery representa os filtros aceitos nas listagens de notas e bilhetes
type RecordListQuery struct {
	VesselName    string `form:"vesselName"`
	PaymentStatus string `form:"paymentStatus"`
	PaymentMethod string `form:"paymentMethod"`
}

// ToFilter converte a consulta no filtro de domínio
func (q RecordListQuery) ToFilter() (billing.Filter, error) {
	f := billing.Filter{
		PaymentStatus: billing.PaymentStatus(q.PaymentStatus),
		PaymentMethod: billing.PaymentMethod(q.PaymentMethod),
		Vessel:        q.VesselName,
	}
	if f.PaymentStatus != "" && !f.PaymentStatus.IsValid() {
		return billing.Filter{}, billing.ErrInvalidPaymentStatus
	}
	if f.PaymentMethod != "" && !f.PaymentMethod.IsValid() {
		return billing.Filter{}, billing.ErrInvalidPaymentMethod
	}
	return f, nil
}
