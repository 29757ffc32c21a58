package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDecimal prints d keeping its scale, and always with a fractional
// part so the text reads back as a decimal: 1.50 stays "1.50", 10 is "10.0".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.StringFixed(1)
}

// Quote wraps s in the delimiter q, escaping backslashes, both quote
// characters and the control characters the lexer understands.
func Quote(s string, q byte) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\b':
			sb.WriteString(`\b`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\\':
			sb.WriteString(`\\`)
		case '\'', '"':
			if byte(r) == q {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// QuoteCharacter quotes a single rune with single quotes.
func QuoteCharacter(r rune) string {
	return Quote(string(r), '\'')
}
