package export

// Geometry define as dimensões da página em pontos
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
}

// Letter é a página padrão dos relatórios (612 x 792 pt, margem de 50)
func Letter() Geometry {
	return Geometry{Width: 612, Height: 792, Margin: 50}
}

// Medidas das tabelas e títulos de seção
const (
	TableHeaderHeight  = 20
	TableRowHeight     = 18
	TableMargins       = 40
	SectionTitleHeight = 30
	VesselTitleHeight  = 50
)

// SectionHeight calcula a altura total de uma seção com título e tabela de n linhas
func SectionHeight(titleHeight float64, rows int) float64 {
	return titleHeight + TableHeaderHeight + float64(rows)*TableRowHeight + TableMargins
}

// Layout acompanha o cursor vertical e decide as quebras de página.
// Uma seção só começa se couber inteira na página atual; caso contrário vai para a próxima
// antes de desenhar qualquer coisa. Depois de iniciada, a tabela pode continuar em outras páginas,
// sempre quebrando entre linhas.
type Layout struct {
	geo     Geometry
	y       float64
	page    int
	onBreak func()
}

// NewLayout cria o cursor na primeira página. onBreak é chamado a cada nova página.
func NewLayout(geo Geometry, onBreak func()) *Layout {
	if onBreak == nil {
		onBreak = func() {}
	}
	return &Layout{geo: geo, y: geo.Margin, page: 1, onBreak: onBreak}
}

// Y retorna a posição vertical atual
func (l *Layout) Y() float64 { return l.y }

// Page retorna o número da página atual
func (l *Layout) Page() int { return l.page }

// Remaining retorna o espaço vertical livre na página atual
func (l *Layout) Remaining() float64 {
	return l.geo.Height - l.geo.Margin - l.y
}

// AtTop indica se nada foi desenhado na página atual
func (l *Layout) AtTop() bool {
	return l.y <= l.geo.Margin
}

// Reserve garante o espaço pedido, abrindo nova página quando falta espaço.
// Uma página vazia nunca é descartada, mesmo que o pedido seja maior que ela.
func (l *Layout) Reserve(required float64) (newPage bool) {
	if l.Remaining() >= required || l.AtTop() {
		return false
	}
	l.NewPage()
	return true
}

// BeginSection reserva espaço para o título, o cabeçalho e todas as linhas da tabela
func (l *Layout) BeginSection(titleHeight float64, rows int) (newPage bool) {
	return l.Reserve(SectionHeight(titleHeight, rows))
}

// NewPage abre uma nova página e volta o cursor para a margem superior
func (l *Layout) NewPage() {
	l.page++
	l.y = l.geo.Margin
	l.onBreak()
}

// Advance move o cursor para baixo
func (l *Layout) Advance(h float64) {
	l.y += h
}

// MoveTo posiciona o cursor
func (l *Layout) MoveTo(y float64) {
	l.y = y
}
