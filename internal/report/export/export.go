package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
)

// Erros de exportação
var (
	ErrUnsupportedFormat = errors.New("formato não suportado")
	ErrTimeout           = errors.New("tempo limite da exportação excedido")
	ErrRender            = errors.New("falha ao gerar o arquivo")
)

// Format identifica o formato de exportação
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Renderer converte o documento consolidado em bytes.
// O arquivo é gerado inteiro em memória, então uma falha nunca produz um arquivo truncado.
type Renderer interface {
	Format() Format
	ContentType() string
	Extension() string
	Render(kind report.Kind, data *report.Consolidated, geo Geometry) ([]byte, error)
}

// Source fornece os dados consolidados e o nome do arquivo
type Source interface {
	Consolidated(ctx context.Context, kind report.Kind, f report.Filter) (*report.Consolidated, error)
	Filename(kind report.Kind, ext string) string
}

// File é o resultado de uma exportação
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Exporter coordena consulta e renderização com tempo limite
type Exporter struct {
	source    Source
	renderers map[Format]Renderer
	geometry  Geometry
	timeout   time.Duration
	logger    logger.Logger
}

// NewExporter cria uma nova instância de Exporter
func NewExporter(source Source, geo Geometry, timeout time.Duration, log logger.Logger, renderers ...Renderer) *Exporter {
	byFormat := make(map[Format]Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &Exporter{
		source:    source,
		renderers: byFormat,
		geometry:  geo,
		timeout:   timeout,
		logger:    log,
	}
}

// Renderer retorna o renderizador do formato pedido
func (e *Exporter) Renderer(format string) (Renderer, error) {
	r, ok := e.renderers[Format(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return r, nil
}

// Export valida o formato, consulta os dados e gera o arquivo dentro do tempo limite
func (e *Exporter) Export(ctx context.Context, kind report.Kind, format string, f report.Filter) (*File, error) {
	renderer, err := e.Renderer(format)
	if err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	data, err := e.source.Consolidated(ctx, kind, f)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, err
	}

	type result struct {
		content []byte
		err     error
	}
	done := make(chan result, 1)
	go func() {
		content, err := renderer.Render(kind, data, e.geometry)
		done <- result{content, err}
	}()

	select {
	case <-ctx.Done():
		e.logger.Error("Exportação interrompida", "kind", kind, "format", format, "error", ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	case res := <-done:
		if res.err != nil {
			e.logger.Error("Erro ao gerar exportação", "kind", kind, "format", format, "error", res.err)
			return nil, fmt.Errorf("%w: %w", ErrRender, res.err)
		}
		return &File{
			Name:        e.source.Filename(kind, renderer.Extension()),
			ContentType: renderer.ContentType(),
			Content:     res.content,
		}, nil
	}
}
