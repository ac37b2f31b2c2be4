package freight

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func good(value, discount string) Good {
	return Good{
		Quantity:    1,
		Description: "caixa",
		Value:       decimal.RequireFromString(value),
		Discount:    decimal.RequireFromString(discount),
	}
}

func validDraft() Draft {
	return Draft{
		Recipient:  "Ana Silva",
		Address:    "Rua das Flores, 10",
		City:       "Parintins",
		Phone:      "92 99999-0000",
		IDNumber:   "123.456.789-00",
		VesselName: vessel.AlmiranteOliveiraV,
		Goods:      []Good{good("100", "10")},
	}
}

func TestNetValueIsOrderIndependent(t *testing.T) {
	goods := []Good{good("100.10", "0"), good("50", "5.05"), good("0.33", "0.01")}
	reversed := []Good{goods[2], goods[1], goods[0]}

	a := (&Note{Goods: goods}).NetValue()
	b := (&Note{Goods: reversed}).NetValue()

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(decimal.RequireFromString("145.37")))
}

func TestNetValueEmptyGoods(t *testing.T) {
	assert.True(t, (&Note{}).NetValue().IsZero())
}

func TestGoodUnmarshalToleratesMalformedNumbers(t *testing.T) {
	var goods []Good
	err := json.Unmarshal([]byte(`[
		{"quantity": "3", "description": "saco", "value": "abc", "weight": null, "discount": "2"},
		{"quantity": true, "description": "caixa", "value": 40.5, "weight": "12,5"},
		{"description": "sem números"}
	]`), &goods)
	require.NoError(t, err)
	require.Len(t, goods, 3)

	assert.Equal(t, 3, goods[0].Quantity)
	assert.True(t, goods[0].Value.IsZero())
	assert.True(t, goods[0].Weight.IsZero())
	assert.True(t, goods[0].Discount.Equal(decimal.NewFromInt(2)))

	assert.Equal(t, 0, goods[1].Quantity)
	assert.True(t, goods[1].Weight.Equal(decimal.RequireFromString("12.5")))

	n := &Note{Goods: goods}
	assert.True(t, n.NetValue().Equal(decimal.RequireFromString("38.5")))
	assert.Equal(t, 3, n.TotalQuantity())
}

func TestGoodMarshalWritesNumbers(t *testing.T) {
	b, err := json.Marshal(good("12.5", "0"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity":1,"description":"caixa","invoiceNumber":"","value":12.5,"weight":0,"discount":0}`, string(b))
}

func TestNewNote(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	n, err := NewNote(validDraft(), now)
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, now, n.IssueDate)
	assert.Equal(t, billing.PaymentPending, n.Payment.Status)
	assert.Equal(t, billing.StatusActive, n.Lifecycle.Status)

	tests := []struct {
		name   string
		modify func(*Draft)
		want   error
	}{
		{"sem destinatário", func(d *Draft) { d.Recipient = " " }, ErrEmptyRecipient},
		{"sem cidade", func(d *Draft) { d.City = "" }, ErrEmptyCity},
		{"embarcação desconhecida", func(d *Draft) { d.VesselName = "Canoa" }, ErrInvalidVessel},
		{"sem mercadorias", func(d *Draft) { d.Goods = nil }, ErrNoGoods},
		{"mercadoria sem quantidade", func(d *Draft) { d.Goods = []Good{{Description: "x"}} }, ErrInvalidGood},
		{"valor negativo", func(d *Draft) { d.Goods = []Good{good("-1", "0")} }, ErrNegativeValue},
		{"pago sem forma", func(d *Draft) { d.Payment.Status = billing.PaymentPaid }, billing.ErrMethodRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.modify(&d)
			_, err := NewNote(d, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCancelKeepsPayment(t *testing.T) {
	now := time.Now()
	d := validDraft()
	d.Payment = billing.PaymentUpdate{Status: billing.PaymentPaid, Method: billing.MethodPix}

	n, err := NewNote(d, now)
	require.NoError(t, err)
	require.NoError(t, n.Cancel(now))

	assert.True(t, n.IsCanceled())
	assert.True(t, n.IsPaid())
	assert.ErrorIs(t, n.Cancel(now), billing.ErrAlreadyCanceled)
}
