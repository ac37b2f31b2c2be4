package repository

import (
	"testing"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/stretchr/testify/assert"
)

func TestBuildRecordWhereEmpty(t *testing.T) {
	where, args := buildRecordWhere(billing.Filter{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildRecordWhereAllFilters(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, daterange.FixedZone(-4))
	to := daterange.EndOfDay(from)

	where, args := buildRecordWhere(billing.Filter{
		Period:        daterange.Range{From: &from, To: &to},
		PaymentStatus: billing.PaymentPaid,
		PaymentMethod: billing.MethodPix,
		Vessel:        "almirante",
	})

	assert.Equal(t,
		` WHERE issue_date >= $1 AND issue_date <= $2 AND payment_status = $3 AND payment_method = $4 AND vessel_name ILIKE $5 ESCAPE '\'`,
		where)
	assert.Equal(t, []any{from, to, "pago", "pix", "%almirante%"}, args)
}

func TestBuildRecordWhereOneSidedRange(t *testing.T) {
	to := time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)

	where, args := buildRecordWhere(billing.Filter{Period: daterange.Range{To: &to}})

	assert.Equal(t, " WHERE issue_date <= $1", where)
	assert.Equal(t, []any{to}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `B\_M`, escapeLike("B_M"))
}

func TestDecodeGoodsTolerant(t *testing.T) {
	goods := decodeGoods([]byte(`[{"quantity":"2","description":"caixa","value":"abc","weight":10}]`))
	if assert.Len(t, goods, 1) {
		assert.Equal(t, 2, goods[0].Quantity)
		assert.True(t, goods[0].Value.IsZero())
		assert.Equal(t, "10", goods[0].Weight.String())
	}

	assert.Empty(t, decodeGoods([]byte(`{não é json`)))
	assert.Empty(t, decodeGoods(nil))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "pix", nullable("pix"))
}
