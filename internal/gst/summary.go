package gst

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RateSummary aggregates the lines of a bill that share one GST rate.
type RateSummary struct {
	RatePercent decimal.Decimal `json:"gst_rate"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	TotalTax    decimal.Decimal `json:"total_gst"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SummarizeByRate groups line items by GST rate, ordered by rate ascending.
// Rates that differ only in trailing zeros (18 and 18.00) share a group.
func SummarizeByRate(items []LineItemCalculation) []RateSummary {
	groups := lo.GroupBy(items, func(it LineItemCalculation) string {
		return it.RatePercent.String()
	})

	out := make([]RateSummary, 0, len(groups))
	for _, lines := range groups {
		s := RateSummary{
			RatePercent: lines[0].RatePercent,
			BaseAmount:  decimal.Zero,
			CGST:        decimal.Zero,
			SGST:        decimal.Zero,
			IGST:        decimal.Zero,
			TotalTax:    decimal.Zero,
			TotalAmount: decimal.Zero,
		}
		for i := range lines {
			s.BaseAmount = s.BaseAmount.Add(lines[i].BaseAmount)
			s.CGST = s.CGST.Add(lines[i].Tax.CGST)
			s.SGST = s.SGST.Add(lines[i].Tax.SGST)
			s.IGST = s.IGST.Add(lines[i].Tax.IGST)
			s.TotalTax = s.TotalTax.Add(lines[i].Tax.Total())
			s.TotalAmount = s.TotalAmount.Add(lines[i].TotalAmount)
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RatePercent.LessThan(out[j].RatePercent)
	})
	return out
}
