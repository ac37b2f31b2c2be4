package repository

import (
	"fmt"
	"strings"

	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
)

// buildRecordWhere monta a cláusula WHERE comum a notas e bilhetes.
// Os argumentos começam em $1 e seguem a ordem das condições.
func buildRecordWhere(f billing.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Period.From != nil {
		add("issue_date >= $%d", *f.Period.From)
	}
	if f.Period.To != nil {
		add("issue_date <= $%d", *f.Period.To)
	}
	if f.PaymentStatus != "" {
		add("payment_status = $%d", string(f.PaymentStatus))
	}
	if f.PaymentMethod != "" {
		add("payment_method = $%d", string(f.PaymentMethod))
	}
	if v := strings.TrimSpace(f.Vessel); v != "" {
		add(`vessel_name ILIKE $%d ESCAPE '\'`, "%"+escapeLike(v)+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullable converte string vazia em NULL
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
