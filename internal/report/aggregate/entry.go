package aggregate

import (
	"sort"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/shopspring/decimal"
)

// RecordType discrimina notas e bilhetes nas listas combinadas
type RecordType string

const (
	TypeNote   RecordType = "note"
	TypeTicket RecordType = "ticket"
)

// Entry é a visão normalizada de uma nota ou bilhete usada por todos os agrupamentos
type Entry struct {
	Type       RecordType
	ID         string
	Number     int
	Customer   string // Destinatário da nota ou passageiro do bilhete
	City       string // Cidade da nota ou destino do bilhete
	Route      string
	Phone      string
	Document   string
	Vessel     vessel.Name
	IssueDate  time.Time
	CreatedAt  time.Time
	Net        decimal.Decimal
	Weight     decimal.Decimal
	Quantity   int
	Passengers int
	Payment    billing.Payment
	Status     billing.Status
}

// IsPaid indica se o pagamento foi aprovado
func (e Entry) IsPaid() bool {
	return e.Payment.IsPaid()
}

// IsCanceled indica se o registro foi cancelado
func (e Entry) IsCanceled() bool {
	return e.Status == billing.StatusCanceled
}

// FromNote normaliza uma nota de frete
func FromNote(n *freight.Note) Entry {
	return Entry{
		Type:      TypeNote,
		ID:        n.ID,
		Number:    n.NoteNumber,
		Customer:  n.Recipient,
		City:      n.City,
		Phone:     n.Phone,
		Document:  n.IDNumber,
		Vessel:    n.VesselName,
		IssueDate: n.IssueDate,
		CreatedAt: n.CreatedAt,
		Net:       n.NetValue(),
		Weight:    n.TotalWeight(),
		Quantity:  n.TotalQuantity(),
		Payment:   n.Payment,
		Status:    n.Lifecycle.Status,
	}
}

// FromTicket normaliza um bilhete
func FromTicket(t *ticket.Ticket) Entry {
	return Entry{
		Type:       TypeTicket,
		ID:         t.ID,
		Number:     t.TicketNumber,
		Customer:   t.PassengerName,
		City:       t.Destination(),
		Route:      t.Route,
		Phone:      t.Phone,
		Document:   t.CPF,
		Vessel:     t.VesselName,
		IssueDate:  t.IssueDate,
		CreatedAt:  t.CreatedAt,
		Net:        t.NetValue(),
		Weight:     decimal.Zero,
		Passengers: 1,
		Payment:    t.Payment,
		Status:     t.Lifecycle.Status,
	}
}

// FromNotes normaliza uma lista de notas
func FromNotes(notes []*freight.Note) []Entry {
	out := make([]Entry, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromNote(n))
	}
	return out
}

// FromTickets normaliza uma lista de bilhetes
func FromTickets(tickets []*ticket.Ticket) []Entry {
	out := make([]Entry, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t))
	}
	return out
}

// Merge junta as duas listas e ordena da emissão mais recente para a mais antiga
func Merge(notes, tickets []Entry) []Entry {
	out := make([]Entry, 0, len(notes)+len(tickets))
	out = append(out, notes...)
	out = append(out, tickets...)
	SortByIssueDateDesc(out)
	return out
}

// SortByIssueDateDesc ordena pela emissão decrescente com desempate determinístico
func SortByIssueDateDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.After(b.IssueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Number > b.Number
	})
}

// OfType seleciona as entradas de um tipo
func OfType(entries []Entry, t RecordType) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
