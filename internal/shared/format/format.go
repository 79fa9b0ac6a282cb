// Package format holds the presentation helpers applied to rows before they are returned to clients.
package format

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	Unknown       = "Unknown"
	NotAvailable  = "N/A"
	NoBiography   = "No Biography."
	listSeparator = ", "
)

// Capitalize upper-cases the first letter and leaves the rest untouched
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CapitalizeAll capitalizes every space-separated word
func CapitalizeAll(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// Currency renders an amount as US dollars, e.g. $1,234.56
func Currency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

var compactSuffix = map[string]string{
	"k": "K",
	"M": "M",
	"G": "B",
	"T": "T",
}

// Compact renders a count in short notation: 950, 1.2K, 3.4M, 2B
func Compact(n int64) string {
	if n > -1000 && n < 1000 {
		return humanize.Comma(n)
	}

	value, prefix := humanize.ComputeSI(float64(n))
	rounded := humanize.FtoaWithDigits(roundTenth(value), 1)

	// 999_999 rounds to "1000K"; promote it to the next unit
	if rounded == "1000" || rounded == "-1000" {
		value, prefix = humanize.ComputeSI(float64(n) * 1.0001)
		rounded = humanize.FtoaWithDigits(roundTenth(value), 1)
	}

	suffix, ok := compactSuffix[prefix]
	if !ok {
		return humanize.Comma(n)
	}
	return rounded + suffix
}

// FtoaWithDigits truncates, so round to one decimal first
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Year returns the four digit year, or fallback when t is nil
func Year(t *time.Time, fallback string) string {
	if t == nil || t.IsZero() {
		return fallback
	}
	return t.Format("2006")
}

// ISODate returns YYYY-MM-DD, or "" when t is nil
func ISODate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// DateOr returns YYYY-MM-DD, or fallback when t is nil
func DateOr(t *time.Time, fallback string) string {
	if s := ISODate(t); s != "" {
		return s
	}
	return fallback
}

// JoinOr joins values with ", " and returns fallback for an empty list
func JoinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, listSeparator)
}

// CapitalizedOr capitalizes *s, or returns fallback when s is nil or blank
func CapitalizedOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return Capitalize(*s)
}
