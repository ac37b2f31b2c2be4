package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/aggregate"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotes struct{ mock.Mock }

func (m *mockNotes) Find(ctx context.Context, f billing.Filter) ([]*freight.Note, error) {
	args := m.Called(ctx, f)
	notes, _ := args.Get(0).([]*freight.Note)
	return notes, args.Error(1)
}

type mockTickets struct{ mock.Mock }

func (m *mockTickets) Find(ctx context.Context, f billing.Filter) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, f)
	tickets, _ := args.Get(0).([]*ticket.Ticket)
	return tickets, args.Error(1)
}

var manaus = daterange.FixedZone(-4)

func day(d int) time.Time {
	return time.Date(2024, 5, d, 10, 0, 0, 0, manaus)
}

func paidWith(m billing.PaymentMethod, at time.Time) billing.Payment {
	return billing.Payment{Status: billing.PaymentPaid, Method: m, Date: &at}
}

func note(number int, recipient, value string, p billing.Payment, issued time.Time) *freight.Note {
	return &freight.Note{
		ID:         recipient + "-note",
		NoteNumber: number,
		Recipient:  recipient,
		City:       "Parintins",
		VesselName: vessel.AlmiranteOliveiraV,
		IssueDate:  issued,
		Goods: []freight.Good{{
			Quantity: 2, Description: "caixa",
			Value: decimal.RequireFromString(value), Weight: decimal.NewFromInt(10),
		}},
		Payment:   p,
		Lifecycle: billing.NewLifecycle(),
	}
}

func tkt(number int, passenger, total string, p billing.Payment, issued time.Time) *ticket.Ticket {
	return &ticket.Ticket{
		ID:            passenger + "-ticket",
		TicketNumber:  number,
		PassengerName: passenger,
		Route:         "Manaus - Maués",
		VesselName:    vessel.ComandanteOliveiraII,
		IssueDate:     issued,
		Total:         decimal.RequireFromString(total),
		Payment:       p,
		Lifecycle:     billing.NewLifecycle(),
	}
}

func fixture() ([]*freight.Note, []*ticket.Ticket) {
	notes := []*freight.Note{
		note(12, "Ana Silva", "100", paidWith(billing.MethodPix, day(3)), day(3)),
		note(11, "Comercial Boa Vista", "400", billing.Payment{Status: billing.PaymentPending}, day(2)),
	}
	tickets := []*ticket.Ticket{
		tkt(7, "Ana Silva", "50", billing.Payment{Status: billing.PaymentPending}, day(4)),
		tkt(6, "Pedro", "200", paidWith(billing.MethodCard, day(1)), day(1)),
	}
	return notes, tickets
}

func newService(n *mockNotes, t *mockTickets) *Service {
	dates := daterange.NewBuilder(daterange.Config{
		UTCOffsetHours: -4,
		Now:            func() time.Time { return day(15) },
	})
	return NewService(n, t, dates, logger.NewNop())
}

func TestFetchUsesIdenticalFilterForBothKinds(t *testing.T) {
	notes, tickets := fixture()
	n, tk := new(mockNotes), new(mockTickets)

	var seenNotes, seenTickets billing.Filter
	n.On("Find", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seenNotes = args.Get(1).(billing.Filter)
	}).Return(notes, nil)
	tk.On("Find", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seenTickets = args.Get(1).(billing.Filter)
	}).Return(tickets, nil)

	svc := newService(n, tk)
	ds, err := svc.Fetch(context.Background(), Filter{
		StartDate: "2024-05-01", EndDate: "2024-05-31",
		PaymentStatus: billing.PaymentPaid, Vessel: "oliveira",
	})
	require.NoError(t, err)

	assert.Equal(t, seenNotes, seenTickets)
	require.NotNil(t, seenNotes.Period.To)
	assert.Equal(t, 31, seenNotes.Period.To.Day())
	assert.Equal(t, "oliveira", seenNotes.Vessel)
	assert.Len(t, ds.Notes, 2)
	assert.Len(t, ds.Tickets, 2)
}

func TestFetchFailureEmitsNothing(t *testing.T) {
	notes, _ := fixture()
	n, tk := new(mockNotes), new(mockTickets)
	n.On("Find", mock.Anything, mock.Anything).Return(notes, nil)
	tk.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("conexão recusada"))

	svc := newService(n, tk)
	got, err := svc.Generate(context.Background(), KindFinancial, Filter{})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Nil(t, got)
}

func TestGenerateRejectsUnknownKindBeforeFetching(t *testing.T) {
	n, tk := new(mockNotes), new(mockTickets)
	svc := newService(n, tk)

	_, err := svc.Generate(context.Background(), Kind("inventory"), Filter{})
	assert.ErrorIs(t, err, ErrUnknownKind)
	n.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestGenerateRejectsInvalidFilter(t *testing.T) {
	svc := newService(new(mockNotes), new(mockTickets))

	_, err := svc.Generate(context.Background(), KindPayments, Filter{PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = svc.Generate(context.Background(), KindPayments, Filter{StartDate: "ontem"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("customers")
	require.NoError(t, err)
	assert.Equal(t, KindCustomers, k)

	_, err = ParseKind("estoque")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func dataset() *Dataset {
	notes, tickets := fixture()
	return &Dataset{Notes: aggregate.FromNotes(notes), Tickets: aggregate.FromTickets(tickets)}
}

func TestCombinedRowsFilteredByTypeMatchFreightOnly(t *testing.T) {
	ds := dataset()
	r := BuildFinancial(ds)

	var noteRows []Row
	for _, row := range r.Data {
		if row.Type == aggregate.TypeNote {
			noteRows = append(noteRows, row)
		}
	}

	freightOnly := aggregate.RevenueTotals(ds.Notes)
	paid, pending := decimal.Zero, decimal.Zero
	paidCount := 0
	for _, row := range noteRows {
		require.NotNil(t, row.NoteNumber)
		assert.Nil(t, row.TicketNumber)
		if row.PaymentStatus == billing.PaymentPaid {
			paid = paid.Add(row.TotalValue.Decimal())
			paidCount++
		} else {
			pending = pending.Add(row.TotalValue.Decimal())
		}
	}

	assert.Len(t, noteRows, len(ds.Notes))
	assert.Equal(t, freightOnly.PaidCount, paidCount)
	assert.True(t, freightOnly.PaidRevenue.Equal(paid))
	assert.True(t, freightOnly.PendingRevenue.Equal(pending))
}

func TestCombinedRowsSortedByIssueDate(t *testing.T) {
	r := BuildOperational(dataset())
	require.Len(t, r.Data, 4)

	for i := 1; i < len(r.Data); i++ {
		assert.False(t, r.Data[i].IssueDate.After(r.Data[i-1].IssueDate))
	}
	assert.Equal(t, aggregate.TypeTicket, r.Data[0].Type)
	assert.Equal(t, "Maués", r.Data[0].City)
}

func TestBuildFinancial(t *testing.T) {
	r := BuildFinancial(dataset())

	assert.Equal(t, 2, r.Summary.TotalNotes)
	assert.Equal(t, 2, r.Summary.TotalTickets)
	assert.Equal(t, 4, r.Summary.TotalItems)
	assert.True(t, r.Summary.TotalRevenue.Decimal().Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, r.Summary.PendingPayments)
	assert.True(t, r.Summary.AverageTicket.Decimal().Equal(decimal.NewFromInt(150)))
	assert.Len(t, r.Summary.Vessels, 2)
}

func TestBuildFinancialWithoutPaidItems(t *testing.T) {
	ds := &Dataset{Notes: aggregate.FromNotes([]*freight.Note{
		note(1, "X", "80", billing.Payment{Status: billing.PaymentPending}, day(1)),
	})}

	r := BuildFinancial(ds)
	assert.True(t, r.Summary.AverageTicket.Decimal().IsZero())
}

func TestBuildOperational(t *testing.T) {
	ds := dataset()
	ds.Tickets[0].Status = billing.StatusCanceled

	r := BuildOperational(ds)
	assert.True(t, r.Summary.TotalWeight.Decimal().Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 4, r.Summary.TotalGoods)
	assert.Equal(t, 2, r.Summary.TotalPassengers)
	assert.Equal(t, 2, r.Summary.ActiveNotes)
	assert.Equal(t, 1, r.Summary.CanceledTickets)
	assert.Equal(t, 1, r.Summary.ActiveTickets)
}

func TestBuildPayments(t *testing.T) {
	r := BuildPayments(dataset())
	s := r.Summary

	assert.True(t, s.TotalRevenue.Decimal().Equal(decimal.NewFromInt(300)))
	assert.True(t, s.PendingValue.Decimal().Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 2, s.TotalPaid)

	require.Contains(t, s.PaymentMethods, billing.MethodPix)
	assert.Equal(t, 1, s.PaymentMethods[billing.MethodPix].Count)

	card := s.PaymentMethodBreakdown[billing.MethodCard]
	assert.True(t, card.Revenue.Decimal().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "66.67", card.Percentage.Decimal().StringFixed(2))
}

func TestBuildCustomers(t *testing.T) {
	r := BuildCustomers(dataset())

	require.Len(t, r.Data, 3)
	assert.Equal(t, "Comercial Boa Vista", r.Data[0].Name)

	s := r.Summary
	assert.Equal(t, 3, s.TotalCustomers)
	assert.Equal(t, 2, s.FreightCustomers)
	assert.Equal(t, 2, s.Passengers)
	assert.Equal(t, 1, s.MixedCustomers)
	assert.True(t, s.TotalRevenue.Decimal().Equal(decimal.NewFromInt(750)))
	assert.True(t, s.AverageCustomerValue.Decimal().Equal(decimal.NewFromInt(250)))
}

func TestBuildDashboardRecentLimits(t *testing.T) {
	var notes []*freight.Note
	for i := 1; i <= 14; i++ {
		notes = append(notes, note(i, "C", "10", billing.Payment{Status: billing.PaymentPending}, day(i)))
	}
	var tickets []*ticket.Ticket
	for i := 1; i <= 8; i++ {
		tickets = append(tickets, tkt(i, "P", "5", paidWith(billing.MethodCash, day(i)), day(i)))
	}
	ds := &Dataset{Notes: aggregate.FromNotes(notes), Tickets: aggregate.FromTickets(tickets)}

	d := BuildDashboard(ds)
	require.Len(t, d.RecentNotes, RecentNotesLimit)
	require.Len(t, d.RecentTickets, RecentTicketsLimit)
	assert.Equal(t, 14, d.RecentNotes[0].NoteNumber)
	assert.Equal(t, 5, d.RecentNotes[9].NoteNumber)
	assert.Equal(t, 8, d.RecentTickets[0].TicketNumber)

	assert.Equal(t, 14, d.PendingPayments)
	assert.Equal(t, 8, d.PaidTickets)
	assert.True(t, d.TotalRevenue.Decimal().Equal(decimal.NewFromInt(40)))
	assert.True(t, d.TicketRevenue.Decimal().Equal(decimal.NewFromInt(40)))
}

func TestBuildConsolidated(t *testing.T) {
	c := BuildConsolidated(KindFinancial, dataset(), day(15))

	require.False(t, c.Empty)
	assert.True(t, c.Financial.TotalRevenue.Decimal().Equal(decimal.NewFromInt(750)))
	assert.True(t, c.Financial.PaidPercent.Decimal().Equal(decimal.NewFromInt(40)))
	assert.True(t, c.Financial.FreightPercent.Decimal().Add(c.Financial.TicketPercent.Decimal()).Equal(decimal.NewFromInt(100)))
	assert.Len(t, c.Payments, 2)
	assert.Len(t, c.Customers.Top, 3)
	assert.Len(t, c.Vessels, 2)
	assert.Equal(t, 1, c.Executive.EstimatedTrips)
	assert.Equal(t, "0.67", c.Executive.OccupancyRate.Decimal().StringFixed(2))

	empty := BuildConsolidated(KindFinancial, &Dataset{}, day(15))
	assert.True(t, empty.Empty)
}

func TestFilenameFor(t *testing.T) {
	assert.Equal(t, "relatorio_payments_2024-05-15.pdf", FilenameFor(KindPayments, day(15), "pdf"))
}
