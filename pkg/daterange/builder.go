package daterange

import (
	"errors"
	"fmt"
	"time"
)

// Formato das datas explícitas recebidas pela API
const DateLayout = "2006-01-02"

// Erros do construtor de intervalos
var (
	ErrInvalidDate  = errors.New("data inválida, use o formato AAAA-MM-DD")
	ErrInvertedDate = errors.New("data inicial posterior à data final")
)

// Period representa uma palavra-chave de período
type Period string

const (
	Today      Period = "today"
	Yesterday  Period = "yesterday"
	ThisWeek   Period = "thisWeek"
	ThisMonth  Period = "thisMonth"
	Last30Days Period = "last30Days"
	ThisYear   Period = "thisYear"
	All        Period = "all"
)

// Range é um intervalo de instantes com limites inclusivos. Limite nulo significa sem restrição.
type Range struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsZero indica se o intervalo não restringe nada
func (r Range) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Contains verifica se o instante está dentro do intervalo
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// Config define o fuso do negócio e a fonte do instante atual
type Config struct {
	UTCOffsetHours int
	Now            func() time.Time
}

// Builder traduz períodos e pares de datas em intervalos no fuso do negócio
type Builder struct {
	loc *time.Location
	now func() time.Time
}

// NewBuilder cria um construtor com deslocamento fixo, independente do fuso do servidor
func NewBuilder(cfg Config) *Builder {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Builder{
		loc: FixedZone(cfg.UTCOffsetHours),
		now: now,
	}
}

// FixedZone cria a localização para um deslocamento inteiro em horas
func FixedZone(offsetHours int) *time.Location {
	sign := "+"
	if offsetHours < 0 {
		sign = "-"
	}
	abs := offsetHours
	if abs < 0 {
		abs = -abs
	}
	return time.FixedZone(fmt.Sprintf("GMT%s%d", sign, abs), offsetHours*3600)
}

// Location retorna o fuso do negócio
func (b *Builder) Location() *time.Location {
	return b.loc
}

// Now retorna o instante atual no fuso do negócio
func (b *Builder) Now() time.Time {
	return b.now().In(b.loc)
}

// ForPeriod resolve uma palavra-chave. Palavras desconhecidas não restringem o intervalo.
func (b *Builder) ForPeriod(p Period) Range {
	now := b.Now()

	switch p {
	case Today:
		return closed(StartOfDay(now), EndOfDay(now))
	case Yesterday:
		y := now.AddDate(0, 0, -1)
		return closed(StartOfDay(y), EndOfDay(y))
	case ThisWeek:
		sunday := now.AddDate(0, 0, -int(now.Weekday()))
		from := StartOfDay(sunday)
		return Range{From: &from}
	case ThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, b.loc)
		last := first.AddDate(0, 1, -1)
		return closed(first, EndOfDay(last))
	case Last30Days:
		from := StartOfDay(now.AddDate(0, 0, -30))
		return Range{From: &from}
	case ThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, b.loc)
		last := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, b.loc)
		return closed(first, EndOfDay(last))
	default:
		return Range{}
	}
}

// ForDates resolve um par explícito de datas. Qualquer um dos lados pode ser vazio.
func (b *Builder) ForDates(start, end string) (Range, error) {
	var r Range

	if start != "" {
		d, err := time.ParseInLocation(DateLayout, start, b.loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidDate, start)
		}
		from := StartOfDay(d)
		r.From = &from
	}

	if end != "" {
		d, err := time.ParseInLocation(DateLayout, end, b.loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q", ErrInvalidDate, end)
		}
		to := EndOfDay(d)
		r.To = &to
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return Range{}, ErrInvertedDate
	}

	return r, nil
}

// Resolve aplica a regra da API: a palavra-chave tem precedência sobre as datas explícitas
func (b *Builder) Resolve(period, start, end string) (Range, error) {
	if period != "" {
		return b.ForPeriod(Period(period)), nil
	}
	return b.ForDates(start, end)
}

// StartOfDay retorna 00:00:00.000 do dia de t, no fuso de t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay retorna 23:59:59.999 do dia de t, no fuso de t
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func closed(from, to time.Time) Range {
	return Range{From: &from, To: &to}
}
