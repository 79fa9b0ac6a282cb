package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Sapiens", Capitalize("sapiens"))
	assert.Equal(t, "A brief history", Capitalize("a brief history"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Élan", Capitalize("élan"))
}

func TestCapitalizeAll(t *testing.T) {
	assert.Equal(t, "Why Nations Fail", CapitalizeAll("why nations fail"))
	assert.Equal(t, "E. B. White", CapitalizeAll("e. b. white"))
	assert.Equal(t, "Double  Space", CapitalizeAll("double  space"))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"9.5", "$9.50"},
		{"24.99", "$24.99"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{999, "999"},
		{1000, "1K"},
		{1234, "1.2K"},
		{1250, "1.3K"},
		{1999, "2K"},
		{15300, "15.3K"},
		{999999, "1M"},
		{1999999, "2M"},
		{3400000, "3.4M"},
		{2000000000, "2B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compact(tt.in), "Compact(%d)", tt.in)
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2011, time.February, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2011", Year(&d, Unknown))
	assert.Equal(t, Unknown, Year(nil, Unknown))
	assert.Equal(t, "2011-02-10", ISODate(&d))
	assert.Equal(t, "", ISODate(nil))
	assert.Equal(t, NotAvailable, DateOr(nil, NotAvailable))
}

func TestJoinOr(t *testing.T) {
	assert.Equal(t, "History, Economics", JoinOr([]string{"History", "Economics"}, Unknown))
	assert.Equal(t, Unknown, JoinOr(nil, Unknown))
}

func TestCapitalizedOr(t *testing.T) {
	bio := "israeli historian"
	blank := "  "

	assert.Equal(t, "Israeli historian", CapitalizedOr(&bio, NoBiography))
	assert.Equal(t, NoBiography, CapitalizedOr(&blank, NoBiography))
	assert.Equal(t, NotAvailable, CapitalizedOr(nil, NotAvailable))
}
