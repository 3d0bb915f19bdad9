package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// indianUnits are processed largest first.
var indianUnits = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
}

// AmountInWords spells out the whole-rupee part of amount using the Indian
// numbering system (crore, lakh, thousand). Paise are dropped.
func AmountInWords(amount decimal.Decimal) string {
	n := amount.Abs().IntPart()
	if n == 0 {
		return "Zero"
	}

	var parts []string
	for _, u := range indianUnits {
		if n >= u.size {
			parts = append(parts, belowThousand(n/u.size), u.name)
			n %= u.size
		}
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	words := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if amount.IsNegative() {
		return "Minus " + words
	}
	return words
}

// belowThousand spells n; crore counts above 999 recurse.
func belowThousand(n int64) string {
	if n >= 1000 {
		return AmountInWords(decimal.NewFromInt(n))
	}
	var b strings.Builder
	if n >= 100 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}
	switch {
	case n >= 20:
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	case n >= 10:
		b.WriteString(teens[n-10])
		n = 0
	}
	if n > 0 {
		b.WriteString(ones[n])
	}
	return strings.TrimSpace(b.String())
}

// RupeeFormat controls FormatRupee output.
type RupeeFormat struct {
	// SpaceAfterSymbol puts a space between the symbol and the amount.
	SpaceAfterSymbol bool
	// ASCII uses "Rs." instead of the rupee sign, for fonts without it.
	ASCII bool
	// Grouping inserts thousands separators.
	Grouping bool
}

// FormatRupee renders amount with two decimals and a rupee prefix.
func FormatRupee(amount decimal.Decimal, f RupeeFormat) string {
	num := amount.StringFixed(2)
	if f.Grouping {
		num = groupThousands(num)
	}
	symbol := "₹"
	if f.ASCII {
		symbol = "Rs."
	}
	if f.SpaceAfterSymbol {
		return symbol + " " + num
	}
	return symbol + num
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
