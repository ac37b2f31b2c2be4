package freight

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// Erros de domínio
var (
	ErrEmptyRecipient = errors.New("destinatário não pode ser vazio")
	ErrEmptyAddress   = errors.New("endereço não pode ser vazio")
	ErrEmptyCity      = errors.New("cidade não pode ser vazia")
	ErrEmptyPhone     = errors.New("telefone não pode ser vazio")
	ErrEmptyIDNumber  = errors.New("documento do destinatário não pode ser vazio")
	ErrInvalidVessel  = errors.New("embarcação inválida")
	ErrNoGoods        = errors.New("a nota deve ter ao menos uma mercadoria")
	ErrInvalidGood    = errors.New("mercadoria inválida")
	ErrNegativeValue  = errors.New("valores da mercadoria não podem ser negativos")
)

// Good representa uma mercadoria da nota de frete
type Good struct {
	Quantity      int             `json:"quantity"`      // Quantidade de volumes
	Description   string          `json:"description"`   // Descrição
	InvoiceNumber string          `json:"invoiceNumber"` // Nota fiscal da mercadoria
	Value         decimal.Decimal `json:"value"`         // Valor do frete
	Weight        decimal.Decimal `json:"weight"`        // Peso em kg
	Discount      decimal.Decimal `json:"discount"`      // Desconto
}

// UnmarshalJSON decodifica tolerando campos numéricos ausentes ou malformados, que valem zero
func (g *Good) UnmarshalJSON(data []byte) error {
	var raw struct {
		Quantity      any    `json:"quantity"`
		Description   string `json:"description"`
		InvoiceNumber string `json:"invoiceNumber"`
		Value         any    `json:"value"`
		Weight        any    `json:"weight"`
		Discount      any    `json:"discount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Good{
		Quantity:      money.LenientInt(raw.Quantity),
		Description:   raw.Description,
		InvoiceNumber: raw.InvoiceNumber,
		Value:         money.Lenient(raw.Value),
		Weight:        money.Lenient(raw.Weight),
		Discount:      money.Lenient(raw.Discount),
	}
	return nil
}

// MarshalJSON grava os valores como números, não como texto
func (g Good) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Quantity      int         `json:"quantity"`
		Description   string      `json:"description"`
		InvoiceNumber string      `json:"invoiceNumber"`
		Value         json.Number `json:"value"`
		Weight        json.Number `json:"weight"`
		Discount      json.Number `json:"discount"`
	}{
		Quantity:      g.Quantity,
		Description:   g.Description,
		InvoiceNumber: g.InvoiceNumber,
		Value:         json.Number(g.Value.String()),
		Weight:        json.Number(g.Weight.String()),
		Discount:      json.Number(g.Discount.String()),
	})
}

// Net retorna o valor da mercadoria descontado
func (g Good) Net() decimal.Decimal {
	return g.Value.Sub(g.Discount)
}

func (g Good) validate() error {
	if strings.TrimSpace(g.Description) == "" || g.Quantity <= 0 {
		return ErrInvalidGood
	}
	if g.Value.IsNegative() || g.Weight.IsNegative() || g.Discount.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

// Note representa uma nota de frete
type Note struct {
	ID               string      `json:"id"`               // Identificador único
	NoteNumber       int         `json:"noteNumber"`       // Número sequencial
	IssueDate        time.Time   `json:"issueDate"`        // Data de emissão
	Recipient        string      `json:"recipient"`        // Destinatário
	Address          string      `json:"address"`          // Endereço
	City             string      `json:"city"`             // Cidade de destino
	Phone            string      `json:"phone"`            // Telefone
	IDNumber         string      `json:"idNumber"`         // CPF/CNPJ do destinatário
	VesselName       vessel.Name `json:"vesselName"`       // Embarcação
	Goods            []Good      `json:"goods"`            // Mercadorias
	DigitalSignature string      `json:"digitalSignature"` // Assinatura digitalizada
	billing.Payment
	billing.Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft agrupa os dados informados na emissão
type Draft struct {
	IssueDate        *time.Time
	Recipient        string
	Address          string
	City             string
	Phone            string
	IDNumber         string
	VesselName       vessel.Name
	Goods            []Good
	DigitalSignature string
	Payment          billing.PaymentUpdate
}

// NewNote cria uma nota validada. O número é atribuído pelo repositório.
func NewNote(d Draft, now time.Time) (*Note, error) {
	switch {
	case strings.TrimSpace(d.Recipient) == "":
		return nil, ErrEmptyRecipient
	case strings.TrimSpace(d.Address) == "":
		return nil, ErrEmptyAddress
	case strings.TrimSpace(d.City) == "":
		return nil, ErrEmptyCity
	case strings.TrimSpace(d.Phone) == "":
		return nil, ErrEmptyPhone
	case strings.TrimSpace(d.IDNumber) == "":
		return nil, ErrEmptyIDNumber
	case !d.VesselName.IsValid():
		return nil, ErrInvalidVessel
	case len(d.Goods) == 0:
		return nil, ErrNoGoods
	}

	for _, g := range d.Goods {
		if err := g.validate(); err != nil {
			return nil, err
		}
	}

	payment, err := billing.NewPayment(d.Payment, now)
	if err != nil {
		return nil, err
	}

	issue := now
	if d.IssueDate != nil {
		issue = *d.IssueDate
	}

	return &Note{
		ID:               uuid.New().String(),
		IssueDate:        issue,
		Recipient:        strings.TrimSpace(d.Recipient),
		Address:          d.Address,
		City:             d.City,
		Phone:            d.Phone,
		IDNumber:         d.IDNumber,
		VesselName:       d.VesselName,
		Goods:            d.Goods,
		DigitalSignature: d.DigitalSignature,
		Payment:          payment,
		Lifecycle:        billing.NewLifecycle(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// NetValue soma o valor descontado de todas as mercadorias. Nunca é persistido.
func (n *Note) NetValue() decimal.Decimal {
	total := decimal.Zero
	for _, g := range n.Goods {
		total = total.Add(g.Net())
	}
	return total
}

// TotalWeight soma o peso das mercadorias
func (n *Note) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, g := range n.Goods {
		total = total.Add(g.Weight)
	}
	return total
}

// TotalQuantity soma a quantidade de volumes
func (n *Note) TotalQuantity() int {
	total := 0
	for _, g := range n.Goods {
		total += g.Quantity
	}
	return total
}

// UpdatePayment aplica a alteração de pagamento
func (n *Note) UpdatePayment(u billing.PaymentUpdate, now time.Time) error {
	if err := n.Payment.Apply(u, now); err != nil {
		return err
	}
	n.UpdatedAt = now
	return nil
}

// Cancel cancela a nota mantendo o pagamento
func (n *Note) Cancel(now time.Time) error {
	if err := n.Lifecycle.Cancel(now); err != nil {
		return err
	}
	n.UpdatedAt = now
	return nil
}
