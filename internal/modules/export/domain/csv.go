package domain

import "strings"

// EscapeField quotes a CSV field only when it needs it: a comma, quote,
// or newline anywhere in the value. Interior quotes are doubled.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, "\",\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteField always wraps the value in quotes, doubling interior quotes.
// Used for cells like timestamps whose rendering may contain commas.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// JoinCSV assembles a header row and data rows into LF-separated CSV
// text. Cells are emitted as-is; callers escape them first.
func JoinCSV(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}
