package daterange

import "time"

// FormatDate formata uma data no padrão brasileiro (dd/mm/aaaa)
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006")
}

// FormatDateTime formata data e hora no padrão brasileiro
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006 15:04")
}
