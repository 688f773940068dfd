package numwords_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/trustbooks/trust_ledger_app/internal/utils/numwords"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount   string
		expected string
	}{
		{"1234.56", "One Thousand Two Hundred Thirty Four and 56/100 Dollars"},
		{"100.00", "One Hundred and 00/100 Dollars"},
		{"0", "Zero and 00/100 Dollars"},
		{"0.05", "Zero and 05/100 Dollars"},
		{"50.00", "Fifty and 00/100 Dollars"},
		{"19.99", "Nineteen and 99/100 Dollars"},
		{"21", "Twenty One and 00/100 Dollars"},
		{"115.10", "One Hundred Fifteen and 10/100 Dollars"},
		{"1000000", "One Million and 00/100 Dollars"},
		{"1000001.01", "One Million One and 01/100 Dollars"},
		{"2500000.75", "Two Million Five Hundred Thousand and 75/100 Dollars"},
		{"999999.99", "Nine Hundred Ninety Nine Thousand Nine Hundred Ninety Nine and 99/100 Dollars"},
		{"1000000000000", "One Trillion and 00/100 Dollars"},
		{"999999999999999.9999", "One Quadrillion and 00/100 Dollars"},
	}

	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			amount, err := decimal.NewFromString(tc.amount)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, numwords.AmountInWords(amount))
		})
	}
}

func TestIntegerToWords(t *testing.T) {
	cases := []struct {
		n        int64
		expected string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{305, "Three Hundred Five"},
		{1000, "One Thousand"},
		{10015, "Ten Thousand Fifteen"},
		{1000000000, "One Billion"},
		{1000000000000, "One Trillion"},
		{1000000000000001, "One Quadrillion One"},
		{9223372036854775807, "Nine Quintillion Two Hundred Twenty Three Quadrillion Three Hundred Seventy Two Trillion Thirty Six Billion Eight Hundred Fifty Four Million Seven Hundred Seventy Five Thousand Eight Hundred Seven"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, numwords.IntegerToWords(tc.n))
	}
}
