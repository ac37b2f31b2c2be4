package vessel

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	fleet "github.com/oliveira-navegacao/erp-fluvial/internal/domain/vessel"
	"github.com/stretchr/testify/assert"
)

func TestVesselMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen fleet.Name
	r := gin.New()
	r.Use(VesselMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = GetVessel(c)
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		code   int
		want   fleet.Name
	}{
		{"sem cabeçalho", "", http.StatusOK, ""},
		{"embarcação da frota", string(fleet.ComandanteOliveiraII), http.StatusOK, fleet.ComandanteOliveiraII},
		{"embarcação desconhecida", "Navio Fantasma", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.want, seen)
		})
	}
}
