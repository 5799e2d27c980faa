// Package format renders prices and dates for templates.
package format

import (
	"strconv"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"AZN": "₼",
}

// FmtCurrency formats a whole-unit amount. Catalog prices carry no minor
// units, so FmtCurrency(1490, "USD", "en") is "$1,490".
func FmtCurrency(amount int64, currency, lang string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := thousandSep(amount, groupSeparator(lang))
	sign := ""
	if neg {
		sign = "-"
	}
	if sym, ok := currencySymbols[currency]; ok {
		if currency == "AZN" {
			return sign + digits + " " + sym
		}
		return sign + sym + digits
	}
	if currency == "" {
		return sign + digits
	}
	return sign + digits + " " + currency
}

func groupSeparator(lang string) string {
	switch strings.ToLower(lang) {
	case "ru", "az":
		return " "
	default:
		return ","
	}
}

func thousandSep(n int64, sep string) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FmtDate formats t in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "ru", "az":
		return t.Format("02.01.2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}
