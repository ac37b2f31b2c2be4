package aggregate

import (
	"sort"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// Revenue separa quantidades e valores por status de pagamento
type Revenue struct {
	PaidCount      int
	PaidRevenue    decimal.Decimal
	PendingCount   int
	PendingRevenue decimal.Decimal
}

// Total soma pagos e pendentes
func (r Revenue) Total() decimal.Decimal {
	return r.PaidRevenue.Add(r.PendingRevenue)
}

// Count soma as quantidades
func (r Revenue) Count() int {
	return r.PaidCount + r.PendingCount
}

// Add combina dois totais
func (r Revenue) Add(o Revenue) Revenue {
	return Revenue{
		PaidCount:      r.PaidCount + o.PaidCount,
		PaidRevenue:    r.PaidRevenue.Add(o.PaidRevenue),
		PendingCount:   r.PendingCount + o.PendingCount,
		PendingRevenue: r.PendingRevenue.Add(o.PendingRevenue),
	}
}

// RevenueTotals separa os registros entre pagos e pendentes. Cada registro entra em um único grupo.
func RevenueTotals(entries []Entry) Revenue {
	r := Revenue{PaidRevenue: decimal.Zero, PendingRevenue: decimal.Zero}
	for _, e := range entries {
		if e.IsPaid() {
			r.PaidCount++
			r.PaidRevenue = r.PaidRevenue.Add(e.Net)
			continue
		}
		r.PendingCount++
		r.PendingRevenue = r.PendingRevenue.Add(e.Net)
	}
	return r
}

// MethodShare é a participação de uma forma de pagamento na receita paga
type MethodShare struct {
	Method     billing.PaymentMethod `json:"method"`
	Label      string                `json:"label"`
	Count      int                   `json:"count"`
	Revenue    money.Amount          `json:"revenue"`
	Percentage money.Percent         `json:"percentage"`
}

// PaymentMethodBreakdown agrupa os registros pagos por forma de pagamento.
// O percentual usa o denominador informado pelo chamador e vale zero quando ele é zero.
// Registros pagos sem forma registrada não entram em nenhum grupo.
// Sem eles, os percentuais são distribuídos em duas casas e somam exatamente 100.
func PaymentMethodBreakdown(entries []Entry, denominator decimal.Decimal) []MethodShare {
	counts := map[billing.PaymentMethod]int{}
	sums := map[billing.PaymentMethod]decimal.Decimal{}

	for _, e := range entries {
		if !e.IsPaid() || e.Payment.Method == "" {
			continue
		}
		m := e.Payment.Method
		counts[m]++
		sums[m] = sums[m].Add(e.Net)
	}

	methods := make([]billing.PaymentMethod, 0, len(counts))
	for _, m := range billing.Methods {
		if _, ok := counts[m]; ok {
			methods = append(methods, m)
		}
	}
	var extra []billing.PaymentMethod
	for m := range counts {
		if !m.IsValid() {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	methods = append(methods, extra...)

	// Quando todo registro pago tem forma, os grupos cobrem o denominador e somam 100%
	parts := make([]decimal.Decimal, len(methods))
	covered := decimal.Zero
	for i, m := range methods {
		parts[i] = sums[m]
		covered = covered.Add(sums[m])
	}
	whole := !denominator.IsZero() && covered.Equal(denominator)
	shares := money.SharesOfWhole(parts)

	out := make([]MethodShare, 0, len(methods))
	for i, m := range methods {
		pct := money.PercentOf(sums[m], denominator)
		if whole {
			pct = shares[i]
		}
		out = append(out, MethodShare{
			Method:     m,
			Label:      m.Label(),
			Count:      counts[m],
			Revenue:    money.FromDecimal(sums[m]),
			Percentage: pct,
		})
	}
	return out
}

// Classification classifica o cliente pelos tipos de registro em que aparece
type Classification string

const (
	FreightCustomer Classification = "freight-customer"
	Passenger       Classification = "passenger"
	MixedCustomer   Classification = "mixed"
)

// Customer é o agrupamento por nome de cliente.
// A chave é o nome exato, portanto homônimos se fundem e grafias diferentes não.
type Customer struct {
	Name              string         `json:"name"`
	Type              Classification `json:"type"`
	City              string         `json:"city"`
	Phone             string         `json:"phone"`
	Document          string         `json:"idNumber"`
	TotalNotes        int            `json:"totalNotes"`
	TotalTickets      int            `json:"totalTickets"`
	TotalTransactions int            `json:"totalTransactions"`
	TotalValue        money.Amount   `json:"totalValue"`
	PaidValue         money.Amount   `json:"paidValue"`
	PendingValue      money.Amount   `json:"pendingValue"`
	LastTransaction   time.Time      `json:"lastTransaction"`
}

type customerAcc struct {
	Customer
	total, paid, pending decimal.Decimal
}

// CustomerRollup agrupa notas pelo destinatário e bilhetes pelo passageiro em um único mapa.
// O resultado é ordenado pelo valor total decrescente.
func CustomerRollup(notes, tickets []Entry) []Customer {
	acc := map[string]*customerAcc{}
	var order []string

	add := func(e Entry) {
		c, ok := acc[e.Customer]
		if !ok {
			c = &customerAcc{
				Customer: Customer{Name: e.Customer, City: e.City, Phone: e.Phone, Document: e.Document},
				total:    decimal.Zero,
				paid:     decimal.Zero,
				pending:  decimal.Zero,
			}
			acc[e.Customer] = c
			order = append(order, e.Customer)
		}

		if e.Type == TypeNote {
			c.TotalNotes++
		} else {
			c.TotalTickets++
		}
		c.TotalTransactions++
		c.total = c.total.Add(e.Net)
		if e.IsPaid() {
			c.paid = c.paid.Add(e.Net)
		} else {
			c.pending = c.pending.Add(e.Net)
		}
		if e.IssueDate.After(c.LastTransaction) {
			c.LastTransaction = e.IssueDate
		}
		if c.City == "" {
			c.City = e.City
		}
		if c.Phone == "" {
			c.Phone = e.Phone
		}
		if c.Document == "" {
			c.Document = e.Document
		}
	}

	for _, e := range notes {
		add(e)
	}
	for _, e := range tickets {
		add(e)
	}

	out := make([]Customer, 0, len(order))
	for _, name := range order {
		c := acc[name]
		switch {
		case c.TotalNotes > 0 && c.TotalTickets > 0:
			c.Type = MixedCustomer
		case c.TotalNotes > 0:
			c.Type = FreightCustomer
		default:
			c.Type = Passenger
		}
		c.TotalValue = money.FromDecimal(c.total)
		c.PaidValue = money.FromDecimal(c.paid)
		c.PendingValue = money.FromDecimal(c.pending)
		out = append(out, c.Customer)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue.Decimal().GreaterThan(out[j].TotalValue.Decimal())
	})
	return out
}

// VesselStat é o desempenho de uma embarcação
type VesselStat struct {
	Vessel           vessel.Name   `json:"vessel"`
	Notes            int           `json:"notes"`
	Tickets          int           `json:"tickets"`
	FreightRevenue   money.Amount  `json:"freightRevenue"`
	PassengerRevenue money.Amount  `json:"passengerRevenue"`
	Total            money.Amount  `json:"total"`
	Participation    money.Percent `json:"participation"`
}

// VesselRollup agrupa por embarcação. Registros sem embarcação entram no grupo "Não Informado".
// A participação é o total da embarcação sobre o total geral. O resultado vem ordenado pelo total.
func VesselRollup(notes, tickets []Entry) []VesselStat {
	type acc struct {
		notes, tickets   int
		freight, passage decimal.Decimal
	}
	groups := map[vessel.Name]*acc{}
	grand := decimal.Zero

	get := func(name vessel.Name) *acc {
		name = name.OrPlaceholder()
		a, ok := groups[name]
		if !ok {
			a = &acc{freight: decimal.Zero, passage: decimal.Zero}
			groups[name] = a
		}
		return a
	}

	for _, e := range notes {
		a := get(e.Vessel)
		a.notes++
		a.freight = a.freight.Add(e.Net)
		grand = grand.Add(e.Net)
	}
	for _, e := range tickets {
		a := get(e.Vessel)
		a.tickets++
		a.passage = a.passage.Add(e.Net)
		grand = grand.Add(e.Net)
	}

	out := make([]VesselStat, 0, len(groups))
	for name, a := range groups {
		total := a.freight.Add(a.passage)
		out = append(out, VesselStat{
			Vessel:           name,
			Notes:            a.notes,
			Tickets:          a.tickets,
			FreightRevenue:   money.FromDecimal(a.freight),
			PassengerRevenue: money.FromDecimal(a.passage),
			Total:            money.FromDecimal(total),
			Participation:    money.PercentOf(total, grand),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Total.Decimal(), out[j].Total.Decimal()
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return out[i].Vessel < out[j].Vessel
	})
	return out
}

// Cancellation conta registros ativos e cancelados, independente do pagamento
type Cancellation struct {
	Active   int
	Canceled int
}

// Cancellations conta os registros por situação
func Cancellations(entries []Entry) Cancellation {
	var c Cancellation
	for _, e := range entries {
		if e.IsCanceled() {
			c.Canceled++
		} else {
			c.Active++
		}
	}
	return c
}

// Volume soma as medidas operacionais
type Volume struct {
	Weight     decimal.Decimal
	Goods      int
	Passengers int
}

// Volumes soma peso, volumes de carga e passageiros
func Volumes(entries []Entry) Volume {
	v := Volume{Weight: decimal.Zero}
	for _, e := range entries {
		v.Weight = v.Weight.Add(e.Weight)
		v.Goods += e.Quantity
		v.Passengers += e.Passengers
	}
	return v
}
