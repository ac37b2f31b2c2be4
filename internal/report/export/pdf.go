package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report"
	"github.com/oliveira-navegacao/erp-fluvial/internal/report/aggregate"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
)

// PDFRenderer gera o relatório consolidado em PDF
type PDFRenderer struct{}

// NewPDFRenderer cria uma nova instância de PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Format() Format      { return FormatPDF }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

// Render desenha as cinco seções, ou uma página única quando não há dados
func (r *PDFRenderer) Render(kind report.Kind, data *report.Consolidated, geo Geometry) ([]byte, error) {
	// Configurar o documento
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	pdf.SetMargins(geo.Margin, geo.Margin, geo.Margin)
	pdf.SetAutoPageBreak(false, geo.Margin)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle("Relatório Consolidado", true)

	doc := &pdfDoc{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		geo:  geo,
		data: data,
		kind: kind,
	}
	pdf.SetFooterFunc(doc.footer)

	pdf.AddPage()
	doc.layout = NewLayout(geo, pdf.AddPage)

	// Desenhar as seções
	if data.Empty {
		doc.emptyPage()
	} else {
		doc.header()
		doc.financialSection()
		doc.paymentSection()
		doc.customerSection()
		doc.vesselSection()
		doc.executiveSection()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type column struct {
	title string
	width float64
	align string
}

type pdfDoc struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	geo    Geometry
	layout *Layout
	data   *report.Consolidated
	kind   report.Kind
}

func (d *pdfDoc) contentWidth() float64 {
	return d.geo.Width - 2*d.geo.Margin
}

func (d *pdfDoc) footer() {
	d.pdf.SetY(d.geo.Height - d.geo.Margin + 15)
	d.pdf.SetFont("Helvetica", "", 8)
	d.pdf.SetTextColor(110, 110, 110)
	text := fmt.Sprintf("Relatório Consolidado - Página %d de {nb} - %s",
		d.pdf.PageNo(), daterange.FormatDate(d.data.GeneratedAt, d.location()))
	d.pdf.CellFormat(d.contentWidth(), 12, d.tr(text), "", 0, "C", false, 0, "")
}

func (d *pdfDoc) location() *time.Location {
	if d.data.Location != nil {
		return d.data.Location
	}
	return d.data.GeneratedAt.Location()
}

func (d *pdfDoc) header() {
	d.pdf.SetTextColor(20, 45, 90)
	d.pdf.SetFont("Helvetica", "B", 18)
	d.text(d.geo.Margin, d.layout.Y(), d.contentWidth(), 24, "Relatório Consolidado", "C")
	d.layout.Advance(24)

	d.pdf.SetTextColor(60, 60, 60)
	d.pdf.SetFont("Helvetica", "", 10)
	sub := fmt.Sprintf("Relatório %s - %s", kindLabel(d.kind), d.periodLabel())
	d.text(d.geo.Margin, d.layout.Y(), d.contentWidth(), 16, sub, "C")
	d.layout.Advance(16)

	gen := "Gerado em " + daterange.FormatDateTime(d.data.GeneratedAt, d.location())
	d.text(d.geo.Margin, d.layout.Y(), d.contentWidth(), 14, gen, "C")
	d.layout.Advance(30)
}

func (d *pdfDoc) emptyPage() {
	d.header()
	d.pdf.SetTextColor(150, 30, 30)
	d.pdf.SetFont("Helvetica", "B", 16)
	d.text(d.geo.Margin, d.geo.Height/2-20, d.contentWidth(), 20, "NENHUM DADO ENCONTRADO", "C")
	d.pdf.SetTextColor(80, 80, 80)
	d.pdf.SetFont("Helvetica", "", 10)
	d.text(d.geo.Margin, d.geo.Height/2+6, d.contentWidth(), 14,
		"Não há notas de frete ou bilhetes para os filtros selecionados.", "C")
}

func (d *pdfDoc) periodLabel() string {
	r := d.data.Range
	loc := d.location()
	switch {
	case r.From != nil && r.To != nil:
		return daterange.FormatDate(*r.From, loc) + " a " + daterange.FormatDate(*r.To, loc)
	case r.From != nil:
		return "desde " + daterange.FormatDate(*r.From, loc)
	case r.To != nil:
		return "até " + daterange.FormatDate(*r.To, loc)
	default:
		return "todo o período"
	}
}

func (d *pdfDoc) financialSection() {
	f := d.data.Financial
	rows := [][]string{
		{"Receita total", f.TotalRevenue.BRL(), "100,0%"},
		{"Receita recebida", f.PaidRevenue.BRL(), f.PaidPercent.String()},
		{"Receita pendente", f.PendingRevenue.BRL(), f.PendingPercent.String()},
		{"Fretes (" + strconv.Itoa(f.TotalNotes) + " notas)", f.FreightRevenue.BRL(), f.FreightPercent.String()},
		{"Passagens (" + strconv.Itoa(f.TotalTickets) + " bilhetes)", f.TicketRevenue.BRL(), f.TicketPercent.String()},
	}
	w := d.contentWidth()
	d.section("1. Resumo Financeiro", SectionTitleHeight, []column{
		{"Indicador", w * 0.5, "L"},
		{"Valor", w * 0.3, "R"},
		{"Participação", w * 0.2, "R"},
	}, rows)
}

func (d *pdfDoc) paymentSection() {
	rows := make([][]string, 0, len(d.data.Payments))
	for _, p := range d.data.Payments {
		rows = append(rows, []string{p.Label, strconv.Itoa(p.Count), p.Revenue.BRL(), p.Percentage.String()})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"Nenhum pagamento recebido", "", "", ""})
	}
	w := d.contentWidth()
	d.section("2. Análise de Pagamentos", SectionTitleHeight, []column{
		{"Forma de pagamento", w * 0.4, "L"},
		{"Quantidade", w * 0.15, "R"},
		{"Receita", w * 0.25, "R"},
		{"% do recebido", w * 0.2, "R"},
	}, rows)
}

func (d *pdfDoc) customerSection() {
	s := d.data.Customers.Summary
	w := d.contentWidth()

	d.section("3. Análise de Clientes", SectionTitleHeight, []column{
		{"Indicador", w * 0.6, "L"},
		{"Valor", w * 0.4, "R"},
	}, [][]string{
		{"Total de clientes", strconv.Itoa(s.TotalCustomers)},
		{"Clientes de frete", strconv.Itoa(s.FreightCustomers)},
		{"Passageiros", strconv.Itoa(s.Passengers)},
		{"Clientes mistos", strconv.Itoa(s.MixedCustomers)},
		{"Valor médio por cliente", s.AverageCustomerValue.BRL()},
	})

	rows := make([][]string, 0, len(d.data.Customers.Top))
	for i, c := range d.data.Customers.Top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Name,
			classificationLabel(c.Type),
			strconv.Itoa(c.TotalTransactions),
			c.TotalValue.BRL(),
			c.PendingValue.BRL(),
		})
	}
	d.section("Maiores clientes", SectionTitleHeight, []column{
		{"#", w * 0.06, "C"},
		{"Cliente", w * 0.34, "L"},
		{"Tipo", w * 0.14, "L"},
		{"Transações", w * 0.12, "R"},
		{"Total", w * 0.17, "R"},
		{"Pendente", w * 0.17, "R"},
	}, rows)
}

func (d *pdfDoc) vesselSection() {
	rows := make([][]string, 0, len(d.data.Vessels))
	for _, v := range d.data.Vessels {
		rows = append(rows, []string{
			string(v.Vessel),
			strconv.Itoa(v.Notes),
			strconv.Itoa(v.Tickets),
			v.FreightRevenue.BRL(),
			v.PassengerRevenue.BRL(),
			v.Total.BRL(),
			v.Participation.String(),
		})
	}
	w := d.contentWidth()
	d.section("4. Desempenho por Embarcação", VesselTitleHeight, []column{
		{"Embarcação", w * 0.28, "L"},
		{"Notas", w * 0.08, "R"},
		{"Bilhetes", w * 0.09, "R"},
		{"Fretes", w * 0.15, "R"},
		{"Passagens", w * 0.15, "R"},
		{"Total", w * 0.15, "R"},
		{"Part.", w * 0.10, "R"},
	}, rows)
}

func (d *pdfDoc) executiveSection() {
	e := d.data.Executive
	w := d.contentWidth()
	d.section("5. Resumo Executivo", SectionTitleHeight, []column{
		{"Indicador", w * 0.6, "L"},
		{"Valor", w * 0.4, "R"},
	}, [][]string{
		{"Registros no período", strconv.Itoa(e.TotalRecords)},
		{"Taxa de recebimento", e.CollectionRate.String()},
		{"Valor médio por registro", e.AverageValue.BRL()},
		{"Viagens estimadas", strconv.Itoa(e.EstimatedTrips)},
		{"Taxa de ocupação estimada", e.OccupancyRate.String()},
	})
}

// section desenha título, cabeçalho e linhas. A seção inteira é reservada antes do título,
// e o cabeçalho é repetido quando a tabela continua em outra página.
func (d *pdfDoc) section(title string, titleHeight float64, cols []column, rows [][]string) {
	d.layout.BeginSection(titleHeight, len(rows))

	d.pdf.SetTextColor(20, 45, 90)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.text(d.geo.Margin, d.layout.Y()+titleHeight-22, d.contentWidth(), 18, title, "L")
	d.layout.Advance(titleHeight)

	d.tableHeader(cols)
	for i, row := range rows {
		if d.layout.Remaining() < TableRowHeight {
			d.layout.NewPage()
			d.tableHeader(cols)
		}
		d.tableRow(cols, row, i%2 == 1)
	}
	d.layout.Advance(TableMargins)
}

func (d *pdfDoc) tableHeader(cols []column) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(30, 64, 120)
	d.pdf.SetTextColor(255, 255, 255)
	x := d.geo.Margin
	for _, c := range cols {
		d.pdf.SetXY(x, d.layout.Y())
		d.pdf.CellFormat(c.width, TableHeaderHeight, d.fit(c.title, c.width), "", 0, c.align, true, 0, "")
		x += c.width
	}
	d.layout.Advance(TableHeaderHeight)
}

func (d *pdfDoc) tableRow(cols []column, values []string, shaded bool) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(40, 40, 40)
	d.pdf.SetFillColor(240, 243, 248)
	x := d.geo.Margin
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		d.pdf.SetXY(x, d.layout.Y())
		d.pdf.CellFormat(c.width, TableRowHeight, d.fit(v, c.width), "B", 0, c.align, shaded, 0, "")
		x += c.width
	}
	d.layout.Advance(TableRowHeight)
}

func (d *pdfDoc) text(x, y, w, h float64, s, align string) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, d.tr(s), "", 0, align, false, 0, "")
}

// fit converte para a codificação da fonte e corta o texto que não cabe na coluna
func (d *pdfDoc) fit(s string, width float64) string {
	out := d.tr(s)
	limit := width - 6
	if d.pdf.GetStringWidth(out) <= limit {
		return out
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = d.tr(string(runes) + "...")
		if d.pdf.GetStringWidth(out) <= limit {
			return out
		}
	}
	return ""
}

func kindLabel(k report.Kind) string {
	switch k {
	case report.KindDashboard:
		return "Geral"
	case report.KindFinancial:
		return "Financeiro"
	case report.KindOperational:
		return "Operacional"
	case report.KindPayments:
		return "de Pagamentos"
	case report.KindCustomers:
		return "de Clientes"
	default:
		return string(k)
	}
}

func classificationLabel(c aggregate.Classification) string {
	switch c {
	case aggregate.FreightCustomer:
		return "Frete"
	case aggregate.Passenger:
		return "Passageiro"
	case aggregate.MixedCustomer:
		return "Misto"
	default:
		return string(c)
	}
}
