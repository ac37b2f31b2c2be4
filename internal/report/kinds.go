package report

import (
	"sort"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/aggregate"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// Limites de itens recentes no painel
const (
	RecentNotesLimit   = 10
	RecentTicketsLimit = 5
)

var builders = map[Kind]func(*Dataset) any{
	KindDashboard:   func(ds *Dataset) any { return BuildDashboard(ds) },
	KindFinancial:   func(ds *Dataset) any { return BuildFinancial(ds) },
	KindOperational: func(ds *Dataset) any { return BuildOperational(ds) },
	KindPayments:    func(ds *Dataset) any { return BuildPayments(ds) },
	KindCustomers:   func(ds *Dataset) any { return BuildCustomers(ds) },
}

// Report é a resposta dos relatórios combinados
type Report[S any, D any] struct {
	Kind    Kind `json:"kind"`
	Summary S    `json:"summary"`
	Data    []D  `json:"data"`
}

// Row é uma linha da lista combinada. Notas e bilhetes só se distinguem pelo campo type.
type Row struct {
	ID            string                `json:"id"`
	Type          aggregate.RecordType  `json:"type"`
	NoteNumber    *int                  `json:"noteNumber"`
	TicketNumber  *int                  `json:"ticketNumber"`
	Recipient     string                `json:"recipient,omitempty"`
	PassengerName string                `json:"passengerName,omitempty"`
	Vessel        vessel.Name           `json:"vessel"`
	City          string                `json:"city"`
	Route         string                `json:"route,omitempty"`
	TotalValue    money.Amount          `json:"totalValue"`
	TotalWeight   money.Amount          `json:"totalWeight"`
	TotalItems    int                   `json:"totalItems"`
	Passengers    int                   `json:"passengers"`
	PaymentStatus billing.PaymentStatus `json:"paymentStatus"`
	PaymentMethod billing.PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time            `json:"paymentDate,omitempty"`
	Status        billing.Status        `json:"status"`
	IssueDate     time.Time             `json:"issueDate"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// NewRow converte uma entrada normalizada em linha de resposta
func NewRow(e aggregate.Entry) Row {
	number := e.Number
	row := Row{
		ID:            e.ID,
		Type:          e.Type,
		Vessel:        e.Vessel,
		City:          e.City,
		Route:         e.Route,
		TotalValue:    money.FromDecimal(e.Net),
		TotalWeight:   money.FromDecimal(e.Weight),
		TotalItems:    e.Quantity,
		Passengers:    e.Passengers,
		PaymentStatus: e.Payment.Status,
		PaymentMethod: e.Payment.Method,
		PaymentDate:   e.Payment.Date,
		Status:        e.Status,
		IssueDate:     e.IssueDate,
		CreatedAt:     e.CreatedAt,
	}
	if e.Type == aggregate.TypeNote {
		row.NoteNumber = &number
		row.Recipient = e.Customer
	} else {
		row.TicketNumber = &number
		row.PassengerName = e.Customer
		row.TotalItems = 1
	}
	return row
}

func rows(entries []aggregate.Entry) []Row {
	out := make([]Row, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewRow(e))
	}
	return out
}

// MethodTotal é o formato antigo do agrupamento por forma de pagamento
type MethodTotal struct {
	Count int          `json:"count"`
	Total money.Amount `json:"total"`
}

// MethodBreakdown é o formato com percentual do agrupamento por forma de pagamento
type MethodBreakdown struct {
	Count      int           `json:"count"`
	Revenue    money.Amount  `json:"revenue"`
	Percentage money.Percent `json:"percentage"`
}

func legacyMethods(shares []aggregate.MethodShare) map[billing.PaymentMethod]MethodTotal {
	out := make(map[billing.PaymentMethod]MethodTotal, len(shares))
	for _, s := range shares {
		out[s.Method] = MethodTotal{Count: s.Count, Total: s.Revenue}
	}
	return out
}

func breakdownMap(shares []aggregate.MethodShare) map[billing.PaymentMethod]MethodBreakdown {
	out := make(map[billing.PaymentMethod]MethodBreakdown, len(shares))
	for _, s := range shares {
		out[s.Method] = MethodBreakdown{Count: s.Count, Revenue: s.Revenue, Percentage: s.Percentage}
	}
	return out
}

// RecentNote é uma nota no painel
type RecentNote struct {
	ID            string                `json:"id"`
	NoteNumber    int                   `json:"noteNumber"`
	Recipient     string                `json:"recipient"`
	PaymentStatus billing.PaymentStatus `json:"paymentStatus"`
	Status        billing.Status        `json:"status"`
	TotalValue    money.Amount          `json:"totalValue"`
	IssueDate     time.Time             `json:"issueDate"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// RecentTicket é um bilhete no painel
type RecentTicket struct {
	ID            string                `json:"id"`
	TicketNumber  int                   `json:"ticketNumber"`
	PassengerName string                `json:"passengerName"`
	Route         string                `json:"route"`
	PaymentStatus billing.PaymentStatus `json:"paymentStatus"`
	Status        billing.Status        `json:"status"`
	Total         money.Amount          `json:"total"`
	IssueDate     time.Time             `json:"issueDate"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// Dashboard é o resumo do painel inicial
type Dashboard struct {
	Kind            Kind                                  `json:"kind"`
	TotalNotes      int                                   `json:"totalNotes"`
	TotalTickets    int                                   `json:"totalTickets"`
	TotalRevenue    money.Amount                          `json:"totalRevenue"`
	FreightRevenue  money.Amount                          `json:"freightRevenue"`
	TicketRevenue   money.Amount                          `json:"ticketRevenue"`
	PendingPayments int                                   `json:"pendingPayments"`
	PaidPayments    int                                   `json:"paidPayments"`
	PendingTickets  int                                   `json:"pendingTickets"`
	PaidTickets     int                                   `json:"paidTickets"`
	CanceledNotes   int                                   `json:"canceledNotes"`
	CanceledTickets int                                   `json:"canceledTickets"`
	PaymentMethods  map[billing.PaymentMethod]MethodTotal `json:"paymentMethods"`
	RecentNotes     []RecentNote                          `json:"recentNotes"`
	RecentTickets   []RecentTicket                        `json:"recentTickets"`
}

// BuildDashboard monta o painel. As listas recentes são reordenadas pela emissão
// antes do corte, independente da ordem vinda da consulta.
func BuildDashboard(ds *Dataset) *Dashboard {
	notes := aggregate.RevenueTotals(ds.Notes)
	tickets := aggregate.RevenueTotals(ds.Tickets)
	paidTotal := notes.PaidRevenue.Add(tickets.PaidRevenue)

	// Formas de pagamento sobre notas e bilhetes juntos
	all := append(append([]aggregate.Entry{}, ds.Notes...), ds.Tickets...)
	shares := aggregate.PaymentMethodBreakdown(all, paidTotal)

	d := &Dashboard{
		Kind:            KindDashboard,
		TotalNotes:      len(ds.Notes),
		TotalTickets:    len(ds.Tickets),
		TotalRevenue:    money.FromDecimal(paidTotal),
		FreightRevenue:  money.FromDecimal(notes.PaidRevenue),
		TicketRevenue:   money.FromDecimal(tickets.PaidRevenue),
		PendingPayments: notes.PendingCount,
		PaidPayments:    notes.PaidCount,
		PendingTickets:  tickets.PendingCount,
		PaidTickets:     tickets.PaidCount,
		CanceledNotes:   aggregate.Cancellations(ds.Notes).Canceled,
		CanceledTickets: aggregate.Cancellations(ds.Tickets).Canceled,
		PaymentMethods:  legacyMethods(shares),
		RecentNotes:     []RecentNote{},
		RecentTickets:   []RecentTicket{},
	}

	// Registros mais recentes
	for _, e := range recent(ds.Notes, RecentNotesLimit) {
		d.RecentNotes = append(d.RecentNotes, RecentNote{
			ID:            e.ID,
			NoteNumber:    e.Number,
			Recipient:     e.Customer,
			PaymentStatus: e.Payment.Status,
			Status:        e.Status,
			TotalValue:    money.FromDecimal(e.Net),
			IssueDate:     e.IssueDate,
			CreatedAt:     e.CreatedAt,
		})
	}
	for _, e := range recent(ds.Tickets, RecentTicketsLimit) {
		d.RecentTickets = append(d.RecentTickets, RecentTicket{
			ID:            e.ID,
			TicketNumber:  e.Number,
			PassengerName: e.Customer,
			Route:         e.Route,
			PaymentStatus: e.Payment.Status,
			Status:        e.Status,
			Total:         money.FromDecimal(e.Net),
			IssueDate:     e.IssueDate,
			CreatedAt:     e.CreatedAt,
		})
	}

	return d
}

func recent(entries []aggregate.Entry, limit int) []aggregate.Entry {
	out := append([]aggregate.Entry{}, entries...)
	aggregate.SortByIssueDateDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FinancialSummary é o resumo do relatório financeiro
type FinancialSummary struct {
	TotalNotes      int                    `json:"totalNotes"`
	TotalTickets    int                    `json:"totalTickets"`
	TotalItems      int                    `json:"totalItems"`
	TotalRevenue    money.Amount           `json:"totalRevenue"`
	PendingPayments int                    `json:"pendingPayments"`
	PendingValue    money.Amount           `json:"pendingValue"`
	AverageTicket   money.Amount           `json:"averageTicket"`
	Vessels         []aggregate.VesselStat `json:"vessels"`
}

// BuildFinancial monta o relatório financeiro. A média divide a receita paga pela
// quantidade de itens pagos, usando 1 quando não há nenhum.
func BuildFinancial(ds *Dataset) *Report[FinancialSummary, Row] {
	all := ds.All()
	rev := aggregate.RevenueTotals(all)

	paidCount := rev.PaidCount
	if paidCount == 0 {
		paidCount = 1
	}

	return &Report[FinancialSummary, Row]{
		Kind: KindFinancial,
		Summary: FinancialSummary{
			TotalNotes:      len(ds.Notes),
			TotalTickets:    len(ds.Tickets),
			TotalItems:      len(all),
			TotalRevenue:    money.FromDecimal(rev.PaidRevenue),
			PendingPayments: rev.PendingCount,
			PendingValue:    money.FromDecimal(rev.PendingRevenue),
			AverageTicket:   money.FromDecimal(rev.PaidRevenue.Div(decimal.NewFromInt(int64(paidCount)))),
			Vessels:         aggregate.VesselRollup(ds.Notes, ds.Tickets),
		},
		Data: rows(all),
	}
}

// OperationalSummary é o resumo do relatório operacional
type OperationalSummary struct {
	TotalNotes      int          `json:"totalNotes"`
	TotalTickets    int          `json:"totalTickets"`
	TotalItems      int          `json:"totalItems"`
	TotalWeight     money.Amount `json:"totalWeight"`
	TotalGoods      int          `json:"totalGoods"`
	TotalPassengers int          `json:"totalPassengers"`
	ActiveNotes     int          `json:"activeNotes"`
	CanceledNotes   int          `json:"canceledNotes"`
	ActiveTickets   int          `json:"activeTickets"`
	CanceledTickets int          `json:"canceledTickets"`
}

// BuildOperational monta o relatório operacional
func BuildOperational(ds *Dataset) *Report[OperationalSummary, Row] {
	all := ds.All()
	vol := aggregate.Volumes(all)
	notes := aggregate.Cancellations(ds.Notes)
	tickets := aggregate.Cancellations(ds.Tickets)

	return &Report[OperationalSummary, Row]{
		Kind: KindOperational,
		Summary: OperationalSummary{
			TotalNotes:      len(ds.Notes),
			TotalTickets:    len(ds.Tickets),
			TotalItems:      len(all),
			TotalWeight:     money.FromDecimal(vol.Weight),
			TotalGoods:      vol.Goods,
			TotalPassengers: vol.Passengers,
			ActiveNotes:     notes.Active,
			CanceledNotes:   notes.Canceled,
			ActiveTickets:   tickets.Active,
			CanceledTickets: tickets.Canceled,
		},
		Data: rows(all),
	}
}

// PaymentsSummary é o resumo do relatório de pagamentos.
// PaymentMethods mantém o formato antigo e PaymentMethodBreakdown traz os percentuais.
type PaymentsSummary struct {
	TotalNotes             int                                       `json:"totalNotes"`
	TotalTickets           int                                       `json:"totalTickets"`
	TotalItems             int                                       `json:"totalItems"`
	TotalRevenue           money.Amount                              `json:"totalRevenue"`
	PendingPayments        int                                       `json:"pendingPayments"`
	TotalPaid              int                                       `json:"totalPaid"`
	PendingValue           money.Amount                              `json:"pendingValue"`
	PaymentMethods         map[billing.PaymentMethod]MethodTotal     `json:"paymentMethods"`
	PaymentMethodBreakdown map[billing.PaymentMethod]MethodBreakdown `json:"paymentMethodBreakdown"`
}

// BuildPayments monta o relatório de pagamentos
func BuildPayments(ds *Dataset) *Report[PaymentsSummary, Row] {
	all := ds.All()
	rev := aggregate.RevenueTotals(all)
	shares := aggregate.PaymentMethodBreakdown(all, rev.PaidRevenue)

	return &Report[PaymentsSummary, Row]{
		Kind: KindPayments,
		Summary: PaymentsSummary{
			TotalNotes:             len(ds.Notes),
			TotalTickets:           len(ds.Tickets),
			TotalItems:             len(all),
			TotalRevenue:           money.FromDecimal(rev.PaidRevenue),
			PendingPayments:        rev.PendingCount,
			TotalPaid:              rev.PaidCount,
			PendingValue:           money.FromDecimal(rev.PendingRevenue),
			PaymentMethods:         legacyMethods(shares),
			PaymentMethodBreakdown: breakdownMap(shares),
		},
		Data: rows(all),
	}
}

// CustomersSummary é o resumo do relatório de clientes
type CustomersSummary struct {
	TotalCustomers       int          `json:"totalCustomers"`
	FreightCustomers     int          `json:"freightCustomers"`
	Passengers           int          `json:"passengers"`
	MixedCustomers       int          `json:"mixedCustomers"`
	TotalRevenue         money.Amount `json:"totalRevenue"`
	AverageCustomerValue money.Amount `json:"averageCustomerValue"`
}

// BuildCustomers monta o relatório de clientes.
// FreightCustomers e Passengers contam clientes com ao menos uma nota ou um bilhete, incluindo os mistos.
func BuildCustomers(ds *Dataset) *Report[CustomersSummary, aggregate.Customer] {
	customers := aggregate.CustomerRollup(ds.Notes, ds.Tickets)
	return &Report[CustomersSummary, aggregate.Customer]{
		Kind:    KindCustomers,
		Summary: summarizeCustomers(customers),
		Data:    customers,
	}
}

func summarizeCustomers(customers []aggregate.Customer) CustomersSummary {
	var s CustomersSummary
	total := decimal.Zero

	for _, c := range customers {
		if c.TotalNotes > 0 {
			s.FreightCustomers++
		}
		if c.TotalTickets > 0 {
			s.Passengers++
		}
		if c.Type == aggregate.MixedCustomer {
			s.MixedCustomers++
		}
		total = total.Add(c.TotalValue.Decimal())
	}

	s.TotalCustomers = len(customers)
	s.TotalRevenue = money.FromDecimal(total)
	if len(customers) > 0 {
		s.AverageCustomerValue = money.FromDecimal(total.Div(decimal.NewFromInt(int64(len(customers)))))
	} else {
		s.AverageCustomerValue = money.Zero
	}
	return s
}

// topCustomers retorna os n clientes de maior valor
func topCustomers(customers []aggregate.Customer, n int) []aggregate.Customer {
	out := append([]aggregate.Customer{}, customers...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue.Decimal().GreaterThan(out[j].TotalValue.Decimal())
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
