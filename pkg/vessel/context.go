package vessel

import (
	"context"

	fleet "github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
)

// vesselKey é a chave usada para armazenar a embarcação selecionada no contexto
type vesselKey struct{}

const ginKey = "vessel_name"

// SetContext define a embarcação selecionada no contexto
func SetContext(ctx context.Context, name fleet.Name) context.Context {
	return context.WithValue(ctx, vesselKey{}, name)
}

// FromContext recupera a embarcação selecionada, se existir
func FromContext(ctx context.Context) fleet.Name {
	if name, ok := ctx.Value(vesselKey{}).(fleet.Name); ok {
		return name
	}
	return ""
}
