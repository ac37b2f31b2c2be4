package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/sequence"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/internal/infrastructure/database"
)

const ticketColumns = `
	id, ticket_number, issue_date, passenger_name, address, phone, cpf, rg, route,
	departure_date_time, accommodation_type, suite_number, luggage_quantity, discount, total,
	vessel_name, digital_signature, payment_status, payment_method, payment_date, status,
	canceled_at, created_at, updated_at
`

// TicketRepository implementa a interface ticket.Repository usando PostgreSQL
type TicketRepository struct {
	db  *database.PostgresDB
	seq sequencer
}

// NewTicketRepository cria uma nova instância de TicketRepository
func NewTicketRepository(db *database.PostgresDB, seq *SequenceRepository) ticket.Repository {
	return &TicketRepository{db: db, seq: seq}
}

// Create implementa ticket.Repository.Create
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Gerar o próximo número
		number, err := r.seq.Next(ctx, tx, sequence.Ticket)
		if err != nil {
			return err
		}

		// Inserir o registro
		query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)`
		_, err = tx.Exec(ctx, query,
			t.ID,
			number,
			t.IssueDate,
			t.PassengerName,
			t.Address,
			t.Phone,
			t.CPF,
			t.RG,
			t.Route,
			t.DepartureDateTime,
			string(t.Accommodation),
			t.SuiteNumber,
			t.LuggageQuantity,
			t.Discount,
			t.Total,
			string(t.VesselName),
			t.DigitalSignature,
			string(t.Payment.Status),
			nullable(string(t.Payment.Method)),
			t.Payment.Date,
			string(t.Lifecycle.Status),
			t.Lifecycle.CanceledAt,
			t.CreatedAt,
			t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: falha ao inserir bilhete: %w", ErrDatabase, err)
		}

		t.TicketNumber = number
		return nil
	})
}

// FindByID implementa ticket.Repository.FindByID
func (r *TicketRepository) FindByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	row := r.db.Pool().QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%w: falha ao buscar bilhete: %w", ErrDatabase, err)
	}
	return t, nil
}

// Find implementa ticket.Repository.Find
func (r *TicketRepository) Find(ctx context.Context, filter billing.Filter) ([]*ticket.Ticket, error) {
	where, args := buildRecordWhere(filter)
	query := `SELECT ` + ticketColumns + ` FROM tickets` + where + ` ORDER BY issue_date DESC, created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: falha ao listar bilhetes: %w", ErrDatabase, err)
	}
	defer rows.Close()

	tickets := make([]*ticket.Ticket, 0)
	// Processar resultados
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: falha ao ler bilhete: %w", ErrDatabase, err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: falha ao iterar bilhetes: %w", ErrDatabase, err)
	}
	return tickets, nil
}

// Update implementa ticket.Repository.Update
func (r *TicketRepository) Update(ctx context.Context, id string, mutate func(*ticket.Ticket) error) (*ticket.Ticket, error) {
	var updated *ticket.Ticket

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Bloquear a linha para atualização
		row := tx.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1 FOR UPDATE`, id)
		t, err := scanTicket(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("%w: falha ao bloquear bilhete: %w", ErrDatabase, err)
		}

		if err := mutate(t); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE tickets SET
				payment_status = $1,
				payment_method = $2,
				payment_date = $3,
				status = $4,
				canceled_at = $5,
				updated_at = $6
			WHERE id = $7
		`,
			string(t.Payment.Status),
			nullable(string(t.Payment.Method)),
			t.Payment.Date,
			string(t.Lifecycle.Status),
			t.Lifecycle.CanceledAt,
			t.UpdatedAt,
			t.ID,
		)
		if err != nil {
			return fmt.Errorf("%w: falha ao atualizar bilhete: %w", ErrDatabase, err)
		}

		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implementa ticket.Repository.Delete
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: falha ao excluir bilhete: %w", ErrDatabase, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func scanTicket(row pgx.Row) (*ticket.Ticket, error) {
	var (
		t             ticket.Ticket
		accommodation string
		vesselName    string
		payStatus     string
		method        *string
		paymentDate   *time.Time
		status        string
		canceledAt    *time.Time
	)

	err := row.Scan(
		&t.ID,
		&t.TicketNumber,
		&t.IssueDate,
		&t.PassengerName,
		&t.Address,
		&t.Phone,
		&t.CPF,
		&t.RG,
		&t.Route,
		&t.DepartureDateTime,
		&accommodation,
		&t.SuiteNumber,
		&t.LuggageQuantity,
		&t.Discount,
		&t.Total,
		&vesselName,
		&t.DigitalSignature,
		&payStatus,
		&method,
		&paymentDate,
		&status,
		&canceledAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Accommodation = ticket.Accommodation(accommodation)
	t.VesselName = vessel.Name(vesselName)
	t.Payment = billing.Payment{Status: billing.PaymentStatus(payStatus), Date: paymentDate}
	if method != nil {
		t.Payment.Method = billing.PaymentMethod(*method)
	}
	t.Lifecycle = billing.Lifecycle{Status: billing.Status(status), CanceledAt: canceledAt}
	return &t, nil
}
