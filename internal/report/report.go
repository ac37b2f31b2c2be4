package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/aggregate"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Erros do montador de relatórios
var (
	ErrUnknownKind   = errors.New("tipo de relatório desconhecido")
	ErrInvalidFilter = errors.New("filtro de relatório inválido")
	ErrFetchFailed   = errors.New("falha ao consultar registros")
)

// Kind identifica o tipo de relatório
type Kind string

const (
	KindDashboard   Kind = "dashboard"
	KindFinancial   Kind = "financial"
	KindOperational Kind = "operational"
	KindPayments    Kind = "payments"
	KindCustomers   Kind = "customers"
)

// Kinds lista os tipos aceitos
var Kinds = []Kind{KindDashboard, KindFinancial, KindOperational, KindPayments, KindCustomers}

// ParseKind valida o tipo informado na URL
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Filter agrupa os parâmetros de consulta aceitos por todos os relatórios
type Filter struct {
	Period        string
	StartDate     string
	EndDate       string
	PaymentStatus billing.PaymentStatus
	PaymentMethod billing.PaymentMethod
	Vessel        string
}

// FreightSource fornece as notas de frete filtradas
type FreightSource interface {
	Find(ctx context.Context, filter billing.Filter) ([]*freight.Note, error)
}

// TicketSource fornece os bilhetes filtrados
type TicketSource interface {
	Find(ctx context.Context, filter billing.Filter) ([]*ticket.Ticket, error)
}

// Dataset é o resultado das duas consultas de um relatório, já normalizado
type Dataset struct {
	Range   daterange.Range
	Notes   []aggregate.Entry
	Tickets []aggregate.Entry
}

// IsEmpty indica se nenhuma das consultas retornou registros
func (d *Dataset) IsEmpty() bool {
	return len(d.Notes) == 0 && len(d.Tickets) == 0
}

// All retorna notas e bilhetes combinados, da emissão mais recente para a mais antiga
func (d *Dataset) All() []aggregate.Entry {
	return aggregate.Merge(d.Notes, d.Tickets)
}

// Service monta os relatórios a partir das duas fontes de registros
type Service struct {
	notes   FreightSource
	tickets TicketSource
	dates   *daterange.Builder
	logger  logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(notes FreightSource, tickets TicketSource, dates *daterange.Builder, log logger.Logger) *Service {
	return &Service{
		notes:   notes,
		tickets: tickets,
		dates:   dates,
		logger:  log,
	}
}

// Dates retorna o construtor de intervalos em uso
func (s *Service) Dates() *daterange.Builder {
	return s.dates
}

// Generate monta o relatório do tipo pedido
func (s *Service) Generate(ctx context.Context, kind Kind, f Filter) (any, error) {
	build, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	ds, err := s.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	return build(ds), nil
}

// Fetch consulta notas e bilhetes em paralelo com o mesmo filtro.
// Se qualquer consulta falhar nenhum dado é retornado.
func (s *Service) Fetch(ctx context.Context, f Filter) (*Dataset, error) {
	query, err := s.storeFilter(f)
	if err != nil {
		return nil, err
	}

	var (
		notes   []*freight.Note
		tickets []*ticket.Ticket
	)

	// Buscar notas e bilhetes em paralelo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.notes.Find(gctx, query)
		if err != nil {
			return fmt.Errorf("notas de frete: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tickets, err = s.tickets.Find(gctx, query)
		if err != nil {
			return fmt.Errorf("bilhetes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Erro ao consultar registros do relatório", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	// Normalizar para a agregação
	return &Dataset{
		Range:   query.Period,
		Notes:   aggregate.FromNotes(notes),
		Tickets: aggregate.FromTickets(tickets),
	}, nil
}

func (s *Service) storeFilter(f Filter) (billing.Filter, error) {
	if f.PaymentStatus != "" && !f.PaymentStatus.IsValid() {
		return billing.Filter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, billing.ErrInvalidPaymentStatus)
	}
	if f.PaymentMethod != "" && !f.PaymentMethod.IsValid() {
		return billing.Filter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, billing.ErrInvalidPaymentMethod)
	}

	// Resolver o período no fuso do negócio
	r, err := s.dates.Resolve(f.Period, f.StartDate, f.EndDate)
	if err != nil {
		return billing.Filter{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return billing.Filter{
		Period:        r,
		PaymentStatus: f.PaymentStatus,
		PaymentMethod: f.PaymentMethod,
		Vessel:        f.Vessel,
	}, nil
}

// Filename monta o nome do arquivo exportado com a data do fuso do negócio
func (s *Service) Filename(kind Kind, ext string) string {
	return FilenameFor(kind, s.dates.Now(), ext)
}

// FilenameFor monta relatorio_<tipo>_<AAAA-MM-DD>.<ext>
func FilenameFor(kind Kind, now time.Time, ext string) string {
	return fmt.Sprintf("relatorio_%s_%s.%s", kind, now.Format(daterange.DateLayout), ext)
}
