package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	pkgvessel "github.com/oliveira-navegacao/erp-fluvial/pkg/vessel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freightRouter(repo *memFreight) *gin.Engine {
	c := NewFreightController(repo, testDates(), logger.NewNop())
	r := newRouter(asUser(adminUser), pkgvessel.VesselMiddleware())
	r.POST("/freight-notes", c.Create)
	r.GET("/freight-notes", c.List)
	r.GET("/freight-notes/:id", c.GetByID)
	r.PATCH("/freight-notes/:id/payment", c.UpdatePayment)
	r.PATCH("/freight-notes/:id/cancel", c.Cancel)
	return r
}

func noteBody() map[string]any {
	return map[string]any{
		"recipient":  "Comercial Ribeiro",
		"address":    "Rua da Praia, 10",
		"city":       "Parintins",
		"phone":      "92 99999-0000",
		"idNumber":   "12.345.678/0001-90",
		"vesselName": string(vessel.AlmiranteOliveiraV),
		"goods": []map[string]any{
			{"quantity": 3, "description": "caixa de peixe", "value": 150.5, "weight": 30, "discount": 0.5},
			{"quantity": 1, "description": "motor de popa", "value": "200", "weight": 45},
		},
	}
}

// seedPaidNote grava a nota 12 paga via pix
func seedPaidNote(t *testing.T, repo *memFreight) *freight.Note {
	t.Helper()
	paidAt := fixedNow.AddDate(0, 0, -1)
	n, err := freight.NewNote(freight.Draft{
		Recipient:  "Comercial Ribeiro",
		Address:    "Rua da Praia, 10",
		City:       "Parintins",
		Phone:      "92 99999-0000",
		IDNumber:   "123",
		VesselName: vessel.AlmiranteOliveiraV,
		Goods:      []freight.Good{{Quantity: 1, Description: "caixa", Value: decimal.NewFromInt(100)}},
		Payment:    billing.PaymentUpdate{Status: billing.PaymentPaid, Method: billing.MethodPix, Date: &paidAt},
	}, fixedNow)
	require.NoError(t, err)

	repo.next = 12
	require.NoError(t, repo.Create(context.Background(), n))
	require.Equal(t, 12, n.NoteNumber)
	return n
}

func TestFreightCreate(t *testing.T) {
	repo := newMemFreight()
	r := freightRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/freight-notes", noteBody())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[dto.FreightNoteResponse](t, w)
	assert.Equal(t, 1, res.NoteNumber)
	assert.Equal(t, "pendente", res.PaymentStatus)
	assert.Equal(t, "ativo", res.Status)
	assert.Equal(t, "350", res.NetValue.Decimal().String())
	assert.Equal(t, 4, res.TotalQuantity)

	w = doJSON(t, r, http.MethodPost, "/freight-notes", noteBody())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, decode[dto.FreightNoteResponse](t, w).NoteNumber)
}

func TestFreightCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"embarcação desconhecida", func(b map[string]any) { b["vesselName"] = "Navio Fantasma" }},
		{"sem mercadorias", func(b map[string]any) { b["goods"] = []map[string]any{} }},
		{"mercadoria sem descrição", func(b map[string]any) {
			b["goods"] = []map[string]any{{"quantity": 1, "value": 10, "weight": 1}}
		}},
		{"valor e peso não numéricos", func(b map[string]any) {
			b["goods"] = []map[string]any{{"quantity": 1, "description": "caixa", "value": "abc", "weight": "xyz"}}
		}},
		{"mercadoria sem peso", func(b map[string]any) {
			b["goods"] = []map[string]any{{"quantity": 1, "description": "caixa", "value": 10}}
		}},
		{"quantidade não numérica", func(b map[string]any) {
			b["goods"] = []map[string]any{{"quantity": "duas", "description": "caixa", "value": 10, "weight": 1}}
		}},
		{"pago sem forma", func(b map[string]any) { b["paymentStatus"] = "pago" }},
		{"data inválida", func(b map[string]any) { b["issueDate"] = "20/05/2024" }},
		{"sem destinatário", func(b map[string]any) { delete(b, "recipient") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemFreight()
			body := noteBody()
			tt.mutate(body)

			w := doJSON(t, freightRouter(repo), http.MethodPost, "/freight-notes", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Empty(t, repo.notes)
		})
	}
}

func TestFreightCreateRejectsMalformedGoodValue(t *testing.T) {
	repo := newMemFreight()
	body := noteBody()
	body["goods"] = []map[string]any{{"quantity": 1, "description": "caixa", "value": "abc", "weight": "xyz"}}

	w := doJSON(t, freightRouter(repo), http.MethodPost, "/freight-notes", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decode[dto.ErrorResponse](t, w)
	assert.Contains(t, res.Message+" "+res.Details, freight.ErrInvalidGood.Error())
	assert.Empty(t, repo.notes)
}

func TestFreightPaidToPendingIsRejectedAndRecordUnchanged(t *testing.T) {
	repo := newMemFreight()
	n := seedPaidNote(t, repo)
	r := freightRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/freight-notes/"+n.ID+"/payment", map[string]any{"paymentStatus": "pendente"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodGet, "/freight-notes/"+n.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.FreightNoteResponse](t, w)
	assert.Equal(t, 12, res.NoteNumber)
	assert.Equal(t, "pago", res.PaymentStatus)
	assert.Equal(t, "pix", res.PaymentMethod)
}

func TestFreightPayAndCorrectMethod(t *testing.T) {
	repo := newMemFreight()
	r := freightRouter(repo)
	w := doJSON(t, r, http.MethodPost, "/freight-notes", noteBody())
	id := decode[dto.FreightNoteResponse](t, w).ID

	w = doJSON(t, r, http.MethodPatch, "/freight-notes/"+id+"/payment", map[string]any{"paymentStatus": "pago", "paymentMethod": "dinheiro"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.FreightNoteResponse](t, w)
	assert.Equal(t, "dinheiro", res.PaymentMethod)
	require.NotNil(t, res.PaymentDate)
	assert.True(t, fixedNow.Equal(*res.PaymentDate))

	w = doJSON(t, r, http.MethodPatch, "/freight-notes/"+id+"/payment", map[string]any{"paymentStatus": "pago", "paymentMethod": "cartao", "paymentDate": "2024-05-18"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cartao", decode[dto.FreightNoteResponse](t, w).PaymentMethod)
}

func TestFreightCancel(t *testing.T) {
	repo := newMemFreight()
	n := seedPaidNote(t, repo)
	r := freightRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/freight-notes/"+n.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.FreightNoteResponse](t, w)
	assert.Equal(t, "cancelado", res.Status)
	assert.Equal(t, "pago", res.PaymentStatus)
	assert.NotNil(t, res.CanceledAt)

	w = doJSON(t, r, http.MethodPatch, "/freight-notes/"+n.ID+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFreightNotFound(t *testing.T) {
	r := freightRouter(newMemFreight())

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/freight-notes/nao-existe", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPatch, "/freight-notes/nao-existe/cancel", nil).Code)
}

func TestFreightListFilters(t *testing.T) {
	repo := newMemFreight()
	r := freightRouter(repo)
	doJSON(t, r, http.MethodPost, "/freight-notes", noteBody())
	other := noteBody()
	other["vesselName"] = string(vessel.ComandanteOliveiraII)
	doJSON(t, r, http.MethodPost, "/freight-notes", other)

	w := doJSON(t, r, http.MethodGet, "/freight-notes?vesselName=almirante", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dto.FreightNoteListResponse](t, w)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, string(vessel.AlmiranteOliveiraV), res.Data[0].VesselName)

	w = doJSON(t, r, http.MethodGet, "/freight-notes", nil, pkgvessel.Header, string(vessel.ComandanteOliveiraII))
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[dto.FreightNoteListResponse](t, w)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, string(vessel.ComandanteOliveiraII), res.Data[0].VesselName)

	w = doJSON(t, r, http.MethodGet, "/freight-notes?paymentStatus=atrasado", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreightStoreFailure(t *testing.T) {
	repo := newMemFreight()
	repo.err = repositoryFailure()

	w := doJSON(t, freightRouter(repo), http.MethodGet, "/freight-notes", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
