package money

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Amount é um valor monetário acumulado com precisão total.
// O arredondamento para duas casas acontece apenas na serialização.
type Amount decimal.Decimal

// Percent é um percentual com a mesma regra de arredondamento de Amount
type Percent decimal.Decimal

// Zero é o valor nulo
var Zero = Amount(decimal.Zero)

// FromDecimal converte um decimal em Amount
func FromDecimal(d decimal.Decimal) Amount { return Amount(d) }

// Decimal retorna o valor como decimal
func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

// MarshalJSON serializa como número com duas casas
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

// UnmarshalJSON aceita número ou string numérica
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

// BRL formata em Real brasileiro, ex.: R$ 1.234,56
func (a Amount) BRL() string {
	return FormatBRL(decimal.Decimal(a))
}

// PercentOf calcula part / total * 100. Retorna zero quando o total é zero.
func PercentOf(part, total decimal.Decimal) Percent {
	if total.IsZero() {
		return Percent(decimal.Zero)
	}
	return Percent(part.Mul(decimal.NewFromInt(100)).Div(total))
}

// SharesOfWhole distribui 100% entre as partes pelo maior resto, com duas casas.
// A soma do resultado é exatamente 100 quando alguma parte é diferente de zero.
func SharesOfWhole(parts []decimal.Decimal) []Percent {
	out := make([]Percent, len(parts))
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p)
	}
	if total.IsZero() {
		for i := range out {
			out[i] = Percent(decimal.Zero)
		}
		return out
	}

	// Truncar cada parte em duas casas e guardar o resto
	hundred := decimal.NewFromInt(100)
	floors := make([]decimal.Decimal, len(parts))
	remainders := make([]decimal.Decimal, len(parts))
	allocated := decimal.Zero
	for i, p := range parts {
		raw := p.Mul(hundred).Div(total)
		floors[i] = raw.RoundFloor(2)
		remainders[i] = raw.Sub(floors[i])
		allocated = allocated.Add(floors[i])
	}

	// Distribuir os centésimos restantes para os maiores restos
	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})
	cent := decimal.New(1, -2)
	missing := int(hundred.Sub(allocated).Div(cent).Round(0).IntPart())
	for k := 0; k < missing && k < len(order); k++ {
		floors[order[k]] = floors[order[k]].Add(cent)
	}

	for i := range floors {
		out[i] = Percent(floors[i])
	}
	return out
}

// Decimal retorna o percentual como decimal
func (p Percent) Decimal() decimal.Decimal { return decimal.Decimal(p) }

// MarshalJSON serializa como número com duas casas
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).StringFixed(2)), nil
}

// String formata como 12,5%
func (p Percent) String() string {
	return printer.Sprintf("%.1f", decimal.Decimal(p).Round(1).InexactFloat64()) + "%"
}

// FormatBRL formata um decimal em Real brasileiro
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Lenient converte qualquer valor decodificado de JSON em decimal.
// Valores ausentes ou não numéricos resultam em zero.
func Lenient(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return decimal.NewFromFloat(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(n, ",", ".")))
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		return decimal.Zero
	default:
		d, err := decimal.NewFromString(fmt.Sprint(n))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

// LenientInt converte qualquer valor decodificado de JSON em inteiro, truncando frações
func LenientInt(v any) int {
	if s, ok := v.(string); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return int(Lenient(v).IntPart())
}
