package vessel

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/api/dto"
	fleet "github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
)

// Header é o cabeçalho com a embarcação em que o operador está trabalhando
const Header = "vessel-name"

// ErrUnknownVessel ocorre quando o cabeçalho traz uma embarcação fora da frota
var ErrUnknownVessel = errors.New("embarcação desconhecida")

// VesselMiddleware captura o cabeçalho vessel-name. O cabeçalho é opcional,
// mas quando presente precisa ser uma embarcação da frota.
func VesselMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(Header))
		if raw == "" {
			c.Next()
			return
		}

		name := fleet.Name(raw)
		if !name.IsValid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Embarcação inválida",
				ErrUnknownVessel.Error()+": "+raw,
			))
			return
		}

		c.Set(ginKey, name)
		c.Request = c.Request.WithContext(SetContext(c.Request.Context(), name))
		c.Next()
	}
}

// GetVessel obtém a embarcação selecionada de um contexto do gin
func GetVessel(c *gin.Context) fleet.Name {
	if v, ok := c.Get(ginKey); ok {
		if name, ok := v.(fleet.Name); ok {
			return name
		}
	}
	return FromContext(c.Request.Context())
}
