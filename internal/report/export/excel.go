package export

import (
	"fmt"

	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/money"
	"github.com/xuri/excelize/v2"
)

// ExcelRenderer gera o relatório consolidado em planilha, uma aba por seção
type ExcelRenderer struct{}

// NewExcelRenderer cria uma nova instância de ExcelRenderer
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

func (r *ExcelRenderer) Format() Format { return FormatExcel }
func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (r *ExcelRenderer) Extension() string { return "xlsx" }

type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// Render grava os valores sem formatação de moeda para que a planilha continue calculável.
// A geometria de página não se aplica a planilhas.
func (r *ExcelRenderer) Render(kind report.Kind, data *report.Consolidated, _ Geometry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := excelSheets(kind, data)

	// Estilo do cabeçalho
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E4078"}},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo: %w", err)
	}

	// Criar uma aba por seção
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("erro ao renomear aba: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("erro ao criar aba %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, h := range s.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
		}
	}

	if len(s.headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
		if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("erro ao aplicar estilo: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.headers))
		if err := f.SetColWidth(s.name, "A", lastCol, 22); err != nil {
			return fmt.Errorf("erro ao ajustar colunas: %w", err)
		}
	}

	for i, row := range s.rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("erro ao escrever célula %s: %w", cell, err)
			}
		}
	}
	return nil
}

func excelSheets(kind report.Kind, data *report.Consolidated) []sheet {
	loc := data.Location
	if loc == nil {
		loc = data.GeneratedAt.Location()
	}

	info := sheet{
		name:    "Relatório",
		headers: []string{"Campo", "Valor"},
		rows: [][]any{
			{"Relatório", "Relatório " + kindLabel(kind)},
			{"Gerado em", daterange.FormatDateTime(data.GeneratedAt, loc)},
		},
	}
	if data.Empty {
		info.rows = append(info.rows, []any{"Situação", "NENHUM DADO ENCONTRADO"})
		return []sheet{info}
	}

	fin := data.Financial
	financial := sheet{
		name:    "Resumo Financeiro",
		headers: []string{"Indicador", "Valor", "Participação (%)"},
		rows: [][]any{
			{"Receita total", amt(fin.TotalRevenue), 100.0},
			{"Receita recebida", amt(fin.PaidRevenue), pct(fin.PaidPercent)},
			{"Receita pendente", amt(fin.PendingRevenue), pct(fin.PendingPercent)},
			{"Fretes", amt(fin.FreightRevenue), pct(fin.FreightPercent)},
			{"Passagens", amt(fin.TicketRevenue), pct(fin.TicketPercent)},
			{"Notas emitidas", fin.TotalNotes, nil},
			{"Bilhetes emitidos", fin.TotalTickets, nil},
		},
	}

	payments := sheet{
		name:    "Pagamentos",
		headers: []string{"Forma", "Quantidade", "Receita", "% do recebido"},
	}
	for _, p := range data.Payments {
		payments.rows = append(payments.rows, []any{
			p.Label, p.Count, amt(p.Revenue), pct(p.Percentage),
		})
	}

	customers := sheet{
		name:    "Clientes",
		headers: []string{"Cliente", "Tipo", "Cidade", "Notas", "Bilhetes", "Total", "Pago", "Pendente", "Última transação"},
	}
	for _, c := range data.Customers.Top {
		customers.rows = append(customers.rows, []any{
			c.Name,
			classificationLabel(c.Type),
			c.City,
			c.TotalNotes,
			c.TotalTickets,
			amt(c.TotalValue),
			amt(c.PaidValue),
			amt(c.PendingValue),
			daterange.FormatDate(c.LastTransaction, loc),
		})
	}

	vessels := sheet{
		name:    "Embarcações",
		headers: []string{"Embarcação", "Notas", "Bilhetes", "Fretes", "Passagens", "Total", "Participação (%)"},
	}
	for _, v := range data.Vessels {
		vessels.rows = append(vessels.rows, []any{
			string(v.Vessel),
			v.Notes,
			v.Tickets,
			amt(v.FreightRevenue),
			amt(v.PassengerRevenue),
			amt(v.Total),
			pct(v.Participation),
		})
	}

	e := data.Executive
	executive := sheet{
		name:    "Resumo Executivo",
		headers: []string{"Indicador", "Valor"},
		rows: [][]any{
			{"Registros no período", e.TotalRecords},
			{"Taxa de recebimento (%)", pct(e.CollectionRate)},
			{"Valor médio por registro", amt(e.AverageValue)},
			{"Viagens estimadas", e.EstimatedTrips},
			{"Taxa de ocupação estimada (%)", pct(e.OccupancyRate)},
		},
	}

	return []sheet{info, financial, payments, customers, vessels, executive}
}

func amt(a money.Amount) float64 {
	return a.Decimal().Round(2).InexactFloat64()
}

func pct(p money.Percent) float64 {
	return p.Decimal().Round(2).InexactFloat64()
}
