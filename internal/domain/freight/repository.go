package freight

import (
	"context"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
)

// Repository define as operações de persistência das notas de frete
type Repository interface {
	// Create grava a nota atribuindo o próximo número da sequência
	Create(ctx context.Context, note *Note) error

	// FindByID busca uma nota pelo ID
	FindByID(ctx context.Context, id string) (*Note, error)

	// Find lista as notas que atendem ao filtro, da emissão mais recente para a mais antiga
	Find(ctx context.Context, filter billing.Filter) ([]*Note, error)

	// Update carrega a nota com bloqueio, aplica a função e grava o resultado.
	// Se a função retornar erro nada é gravado.
	Update(ctx context.Context, id string, mutate func(*Note) error) (*Note, error)
}
