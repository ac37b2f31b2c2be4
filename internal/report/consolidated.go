package report

import (
	"context"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/report/aggregate"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/shopspring/decimal"
)

// Parâmetros do documento consolidado
const (
	TopCustomers = 10
	TopVessels   = 10

	// Capacidade de passageiros estimada por viagem, usada na taxa de ocupação
	SeatsPerTrip = 300
)

// FinancialSection é o resumo financeiro do documento consolidado
type FinancialSection struct {
	TotalNotes     int
	TotalTickets   int
	TotalRevenue   money.Amount // Pagos e pendentes
	PaidRevenue    money.Amount
	PendingRevenue money.Amount
	PaidPercent    money.Percent
	PendingPercent money.Percent
	FreightRevenue money.Amount
	TicketRevenue  money.Amount
	FreightPercent money.Percent
	TicketPercent  money.Percent
}

// CustomerSection é a análise de clientes do documento consolidado
type CustomerSection struct {
	Summary CustomersSummary
	Top     []aggregate.Customer
}

// ExecutiveSection traz os indicadores do resumo executivo
type ExecutiveSection struct {
	TotalRecords   int
	CollectionRate money.Percent // Recebido sobre o total
	AverageValue   money.Amount  // Valor médio por registro
	OccupancyRate  money.Percent // Bilhetes sobre a capacidade estimada
	EstimatedTrips int
}

// Consolidated é o conjunto de dados consumido pelos renderizadores de exportação
type Consolidated struct {
	Kind        Kind
	GeneratedAt time.Time
	Location    *time.Location
	Range       daterange.Range
	Empty       bool
	Financial   FinancialSection
	Payments    []aggregate.MethodShare
	Customers   CustomerSection
	Vessels     []aggregate.VesselStat
	Executive   ExecutiveSection
}

// Consolidated consulta os registros e monta o documento consolidado
func (s *Service) Consolidated(ctx context.Context, kind Kind, f Filter) (*Consolidated, error) {
	if _, ok := builders[kind]; !ok {
		return nil, ErrUnknownKind
	}

	ds, err := s.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	return BuildConsolidated(kind, ds, s.dates.Now()), nil
}

// BuildConsolidated monta as cinco seções do documento a partir de um conjunto já consultado
func BuildConsolidated(kind Kind, ds *Dataset, now time.Time) *Consolidated {
	c := &Consolidated{
		Kind:        kind,
		GeneratedAt: now,
		Location:    now.Location(),
		Range:       ds.Range,
		Empty:       ds.IsEmpty(),
	}
	if c.Empty {
		return c
	}

	all := ds.All()
	rev := aggregate.RevenueTotals(all)
	freight := aggregate.RevenueTotals(ds.Notes).Total()
	tickets := aggregate.RevenueTotals(ds.Tickets).Total()
	total := rev.Total()

	c.Financial = FinancialSection{
		TotalNotes:     len(ds.Notes),
		TotalTickets:   len(ds.Tickets),
		TotalRevenue:   money.FromDecimal(total),
		PaidRevenue:    money.FromDecimal(rev.PaidRevenue),
		PendingRevenue: money.FromDecimal(rev.PendingRevenue),
		PaidPercent:    money.PercentOf(rev.PaidRevenue, total),
		PendingPercent: money.PercentOf(rev.PendingRevenue, total),
		FreightRevenue: money.FromDecimal(freight),
		TicketRevenue:  money.FromDecimal(tickets),
		FreightPercent: money.PercentOf(freight, total),
		TicketPercent:  money.PercentOf(tickets, total),
	}

	c.Payments = aggregate.PaymentMethodBreakdown(all, rev.PaidRevenue)

	customers := aggregate.CustomerRollup(ds.Notes, ds.Tickets)
	c.Customers = CustomerSection{
		Summary: summarizeCustomers(customers),
		Top:     topCustomers(customers, TopCustomers),
	}

	c.Vessels = aggregate.VesselRollup(ds.Notes, ds.Tickets)
	if len(c.Vessels) > TopVessels {
		c.Vessels = c.Vessels[:TopVessels]
	}

	c.Executive = executive(len(all), len(ds.Tickets), rev.PaidRevenue, total)
	return c
}

func executive(records, tickets int, paid, total decimal.Decimal) ExecutiveSection {
	e := ExecutiveSection{
		TotalRecords:   records,
		CollectionRate: money.PercentOf(paid, total),
		AverageValue:   money.Zero,
		OccupancyRate:  money.PercentOf(decimal.Zero, decimal.Zero),
	}
	if records > 0 {
		e.AverageValue = money.FromDecimal(total.Div(decimal.NewFromInt(int64(records))))
	}
	if tickets > 0 {
		e.EstimatedTrips = (tickets + SeatsPerTrip - 1) / SeatsPerTrip
		capacity := decimal.NewFromInt(int64(e.EstimatedTrips * SeatsPerTrip))
		e.OccupancyRate = money.PercentOf(decimal.NewFromInt(int64(tickets)), capacity)
	}
	return e
}
