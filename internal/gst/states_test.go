package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/gst"
)

func TestStateName(t *testing.T) {
	assert.Equal(t, "Maharashtra", gst.StateName("27"))
	assert.Equal(t, "Karnataka", gst.StateName("29"))
	assert.Equal(t, "Ladakh", gst.StateName("38"))
	assert.Equal(t, gst.UnknownState, gst.StateName("99"))
	assert.Equal(t, gst.UnknownState, gst.StateName("7"))
}

func TestIsKnownStateCode(t *testing.T) {
	assert.True(t, gst.IsKnownStateCode("07"))
	assert.False(t, gst.IsKnownStateCode("00"))
	assert.False(t, gst.IsKnownStateCode(""))
}

func TestStates_SortedByCode(t *testing.T) {
	states := gst.States()
	require.NotEmpty(t, states)
	assert.Equal(t, "01", states[0].Code)
	for i := 1; i < len(states); i++ {
		assert.Less(t, states[i-1].Code, states[i].Code)
	}
}

func TestValidateGSTIN(t *testing.T) {
	assert.True(t, gst.ValidateGSTIN("27AAPFU0939F1ZV"))
	assert.True(t, gst.ValidateGSTIN("29ABCDE1234F2Z5"))
	assert.False(t, gst.ValidateGSTIN("27AAPFU0939F1Z"))  // too short
	assert.False(t, gst.ValidateGSTIN("27aapfu0939f1zv")) // lowercase
	assert.False(t, gst.ValidateGSTIN("27AAPFU0939F0ZV")) // entity code 0
	assert.False(t, gst.ValidateGSTIN(""))

	assert.Equal(t, "27", gst.GSTINStateCode("27AAPFU0939F1ZV"))
	assert.Equal(t, "", gst.GSTINStateCode("bogus"))
}

func TestAmountInWords(t *testing.T) {
	cases := map[string]string{
		"0":          "Zero",
		"0.99":       "Zero",
		"7":          "Seven",
		"15":         "Fifteen",
		"40":         "Forty",
		"118":        "One Hundred Eighteen",
		"1180.00":    "One Thousand One Hundred Eighty",
		"100000":     "One Lakh",
		"2512345.50": "Twenty Five Lakh Twelve Thousand Three Hundred Forty Five",
		"10000000":   "One Crore",
		"123456789":  "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
		"-250":       "Minus Two Hundred Fifty",
	}
	for in, want := range cases {
		assert.Equal(t, want, gst.AmountInWords(d(in)), in)
	}
}

func TestFormatRupee(t *testing.T) {
	assert.Equal(t, "₹ 1180.00", gst.FormatRupee(d("1180"), gst.RupeeFormat{SpaceAfterSymbol: true}))
	assert.Equal(t, "₹1,180.00", gst.FormatRupee(d("1180"), gst.RupeeFormat{Grouping: true}))
	assert.Equal(t, "Rs. 1234567.89", gst.FormatRupee(d("1234567.891"), gst.RupeeFormat{SpaceAfterSymbol: true, ASCII: true}))
	assert.Equal(t, "Rs.-1,000.50", gst.FormatRupee(d("-1000.5"), gst.RupeeFormat{ASCII: true, Grouping: true}))
	assert.Equal(t, "₹0.00", gst.FormatRupee(d("0"), gst.RupeeFormat{}))
}

func TestSummarizeByRate(t *testing.T) {
	items := []gst.LineItemCalculation{
		gst.ComputeLineItem(d("1"), d("100"), d("18"), "27", "27"),
		gst.ComputeLineItem(d("2"), d("50"), d("5"), "27", "27"),
		gst.ComputeLineItem(d("1"), d("200"), d("18.00"), "27", "27"),
	}

	summary := gst.SummarizeByRate(items)

	require.Len(t, summary, 2)
	assertDec(t, "5", summary[0].RatePercent)
	assertDec(t, "100.00", summary[0].BaseAmount)
	assertDec(t, "5.00", summary[0].TotalTax)

	assertDec(t, "18", summary[1].RatePercent)
	assertDec(t, "300.00", summary[1].BaseAmount)
	assertDec(t, "27.00", summary[1].CGST)
	assertDec(t, "27.00", summary[1].SGST)
	assertDec(t, "54.00", summary[1].TotalTax)
	assertDec(t, "354.00", summary[1].TotalAmount)
}

func TestSummarizeByRate_Empty(t *testing.T) {
	assert.Empty(t, gst.SummarizeByRate(nil))
}

func TestValidHSNCode(t *testing.T) {
	for _, code := range []string{"7326", "998314", "73269099"} {
		assert.True(t, gst.ValidHSNCode(code), code)
	}
	for _, code := range []string{"", "732", "732690991", "73A6", " 7326"} {
		assert.False(t, gst.ValidHSNCode(code), code)
	}
}
