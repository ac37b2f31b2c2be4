package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/sequence"
)

const nextSequenceQuery = `
	INSERT INTO sequences (name, value) VALUES ($1, 1)
	ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
	RETURNING value
`

// querier é satisfeito tanto pelo pool quanto por uma transação
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// sequencer gera o próximo número dentro da transação de quem chama
type sequencer interface {
	Next(ctx context.Context, q querier, kind sequence.Kind) (int, error)
}

// SequenceRepository gera números sequenciais com upsert atômico no PostgreSQL
type SequenceRepository struct{}

// NewSequenceRepository cria uma nova instância de SequenceRepository
func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{}
}

// Next incrementa o contador de kind usando q. Dentro de uma transação o bloqueio
// da linha dura até o commit, então dois inserts concorrentes nunca recebem o mesmo número.
func (s *SequenceRepository) Next(ctx context.Context, q querier, kind sequence.Kind) (int, error) {
	var value int
	if err := q.QueryRow(ctx, nextSequenceQuery, string(kind)).Scan(&value); err != nil {
		return 0, fmt.Errorf("%w: falha ao gerar número %s: %w", ErrDatabase, kind, err)
	}
	return value, nil
}
