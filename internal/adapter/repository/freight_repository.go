package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/sequence"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/oliveira-navegacao/erp-fluvial/internal/infrastructure/database"
)

const freightColumns = `
	id, note_number, issue_date, recipient, address, city, phone, id_number, vessel_name,
	goods, digital_signature, payment_status, payment_method, payment_date, status, canceled_at,
	created_at, updated_at
`

// FreightRepository implementa a interface freight.Repository usando PostgreSQL
type FreightRepository struct {
	db  *database.PostgresDB
	seq sequencer
}

// NewFreightRepository cria uma nova instância de FreightRepository
func NewFreightRepository(db *database.PostgresDB, seq *SequenceRepository) freight.Repository {
	return &FreightRepository{db: db, seq: seq}
}

// Create implementa freight.Repository.Create.
// O número é gerado na mesma transação do insert.
func (r *FreightRepository) Create(ctx context.Context, n *freight.Note) error {
	goods, err := json.Marshal(n.Goods)
	if err != nil {
		return fmt.Errorf("falha ao serializar mercadorias: %w", err)
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Gerar o próximo número
		number, err := r.seq.Next(ctx, tx, sequence.FreightNote)
		if err != nil {
			return err
		}

		// Inserir o registro
		query := `INSERT INTO freight_notes (` + freightColumns + `) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)`
		_, err = tx.Exec(ctx, query,
			n.ID,
			number,
			n.IssueDate,
			n.Recipient,
			n.Address,
			n.City,
			n.Phone,
			n.IDNumber,
			string(n.VesselName),
			goods,
			n.DigitalSignature,
			string(n.Payment.Status),
			nullable(string(n.Payment.Method)),
			n.Payment.Date,
			string(n.Lifecycle.Status),
			n.Lifecycle.CanceledAt,
			n.CreatedAt,
			n.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: falha ao inserir nota de frete: %w", ErrDatabase, err)
		}

		n.NoteNumber = number
		return nil
	})
}

// FindByID implementa freight.Repository.FindByID
func (r *FreightRepository) FindByID(ctx context.Context, id string) (*freight.Note, error) {
	row := r.db.Pool().QueryRow(ctx, `SELECT `+freightColumns+` FROM freight_notes WHERE id = $1`, id)
	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("%w: falha ao buscar nota de frete: %w", ErrDatabase, err)
	}
	return n, nil
}

// Find implementa freight.Repository.Find
func (r *FreightRepository) Find(ctx context.Context, filter billing.Filter) ([]*freight.Note, error) {
	where, args := buildRecordWhere(filter)
	query := `SELECT ` + freightColumns + ` FROM freight_notes` + where + ` ORDER BY issue_date DESC, created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: falha ao listar notas de frete: %w", ErrDatabase, err)
	}
	defer rows.Close()

	notes := make([]*freight.Note, 0)
	// Processar resultados
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: falha ao ler nota de frete: %w", ErrDatabase, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: falha ao iterar notas de frete: %w", ErrDatabase, err)
	}
	return notes, nil
}

// Update implementa freight.Repository.Update.
// A linha fica bloqueada até o fim da transação; se mutate falhar nada é gravado.
func (r *FreightRepository) Update(ctx context.Context, id string, mutate func(*freight.Note) error) (*freight.Note, error) {
	var updated *freight.Note

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		// Bloquear a linha para atualização
		row := tx.QueryRow(ctx, `SELECT `+freightColumns+` FROM freight_notes WHERE id = $1 FOR UPDATE`, id)
		n, err := scanNote(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNoteNotFound
			}
			return fmt.Errorf("%w: falha ao bloquear nota de frete: %w", ErrDatabase, err)
		}

		if err := mutate(n); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE freight_notes SET
				payment_status = $1,
				payment_method = $2,
				payment_date = $3,
				status = $4,
				canceled_at = $5,
				updated_at = $6
			WHERE id = $7
		`,
			string(n.Payment.Status),
			nullable(string(n.Payment.Method)),
			n.Payment.Date,
			string(n.Lifecycle.Status),
			n.Lifecycle.CanceledAt,
			n.UpdatedAt,
			n.ID,
		)
		if err != nil {
			return fmt.Errorf("%w: falha ao atualizar nota de frete: %w", ErrDatabase, err)
		}

		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanNote(row pgx.Row) (*freight.Note, error) {
	var (
		n           freight.Note
		vesselName  string
		goods       []byte
		status      string
		method      *string
		payStatus   string
		paymentDate *time.Time
		canceledAt  *time.Time
	)

	err := row.Scan(
		&n.ID,
		&n.NoteNumber,
		&n.IssueDate,
		&n.Recipient,
		&n.Address,
		&n.City,
		&n.Phone,
		&n.IDNumber,
		&vesselName,
		&goods,
		&n.DigitalSignature,
		&payStatus,
		&method,
		&paymentDate,
		&status,
		&canceledAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.VesselName = vessel.Name(vesselName)
	n.Goods = decodeGoods(goods)
	n.Payment = billing.Payment{Status: billing.PaymentStatus(payStatus), Date: paymentDate}
	if method != nil {
		n.Payment.Method = billing.PaymentMethod(*method)
	}
	n.Lifecycle = billing.Lifecycle{Status: billing.Status(status), CanceledAt: canceledAt}
	return &n, nil
}

// decodeGoods trata um documento ilegível como nota sem mercadorias, para que
// um registro antigo corrompido não derrube a listagem nem os relatórios
func decodeGoods(raw []byte) []freight.Good {
	var goods []freight.Good
	if len(raw) == 0 || json.Unmarshal(raw, &goods) != nil {
		return []freight.Good{}
	}
	return goods
}
