package ticket

import (
	"context"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
)

// Repository define as operações de persistência dos bilhetes
type Repository interface {
	// Create grava o bilhete atribuindo o próximo número da sequência
	Create(ctx context.Context, t *Ticket) error

	// FindByID busca um bilhete pelo ID
	FindByID(ctx context.Context, id string) (*Ticket, error)

	// Find lista os bilhetes que atendem ao filtro, da emissão mais recente para a mais antiga
	Find(ctx context.Context, filter billing.Filter) ([]*Ticket, error)

	// Update carrega o bilhete com bloqueio, aplica a função e grava o resultado
	Update(ctx context.Context, id string, mutate func(*Ticket) error) (*Ticket, error)

	// Delete remove o bilhete definitivamente
	Delete(ctx context.Context, id string) error
}
