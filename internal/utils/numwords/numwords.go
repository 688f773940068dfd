// Package numwords renders decimal amounts as the English legend printed on
// a check, e.g. "One Thousand Two Hundred Thirty Four and 56/100 Dollars".
package numwords

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Short-scale group names for successive groups of three digits. Quintillion
// covers every positive int64, so the group index can never run past the end.
var scales = []string{"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion", "Quintillion"}

// hundredsToWords renders 0 <= n < 1000 as words. Returns "" for zero so
// callers can skip empty groups.
func hundredsToWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}

// IntegerToWords renders a non-negative integer using short-scale grouping.
// Zero renders as "Zero".
func IntegerToWords(n int64) string {
	if n == 0 {
		return ones[0]
	}

	// Split into groups of three digits, least significant first.
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var parts []string
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		words := hundredsToWords(groups[i])
		if i > 0 {
			words += " " + scales[i]
		}
		parts = append(parts, words)
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders a non-negative dollar amount as the check legend:
// whole units in words, then "and NN/100 Dollars" with the cents always two
// digits, zero-padded. The fractional part is rounded to cents first.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	wholeUnits := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(wholeUnits)).Mul(decimal.NewFromInt(100)).IntPart()
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%s and %02d/100 Dollars", IntegerToWords(wholeUnits), cents)
}
