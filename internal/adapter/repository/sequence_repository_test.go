package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(sql, args)
	return called.Get(0).(pgx.Row)
}

// stubRow devolve um valor fixo ou um erro no Scan
type stubRow struct {
	value int
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.value
	return nil
}

func TestSequenceNextUsesUpsertIncrement(t *testing.T) {
	q := new(mockQuerier)
	q.On("QueryRow", nextSequenceQuery, []any{"freight_note"}).Return(stubRow{value: 42}).Once()

	value, err := NewSequenceRepository().Next(context.Background(), q, sequence.FreightNote)

	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Contains(t, nextSequenceQuery, "ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1")
	assert.Contains(t, nextSequenceQuery, "RETURNING value")
	q.AssertExpectations(t)
}

func TestSequenceNextSeparatesKinds(t *testing.T) {
	q := new(mockQuerier)
	q.On("QueryRow", nextSequenceQuery, []any{"ticket"}).Return(stubRow{value: 7}).Once()

	value, err := NewSequenceRepository().Next(context.Background(), q, sequence.Ticket)

	require.NoError(t, err)
	assert.Equal(t, 7, value)
	q.AssertExpectations(t)
}

func TestSequenceNextWrapsScanError(t *testing.T) {
	cause := errors.New("conexão encerrada")
	q := new(mockQuerier)
	q.On("QueryRow", nextSequenceQuery, []any{"ticket"}).Return(stubRow{err: cause})

	value, err := NewSequenceRepository().Next(context.Background(), q, sequence.Ticket)

	assert.Zero(t, value)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ticket")
}
