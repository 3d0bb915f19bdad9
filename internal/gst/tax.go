// Package gst computes Indian GST splits and bill totals.
//
// Intra-state supplies are taxed as CGST + SGST (two equal halves of the
// total tax), inter-state supplies as IGST. All monetary results are rounded
// to two decimal places, half-up.
package gst

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Round2 rounds a monetary value to paise. decimal.Round rounds half away
// from zero, which is half-up for the non-negative amounts handled here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// TaxBreakdown is the GST split for a single taxable amount.
type TaxBreakdown struct {
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}

// Total returns CGST + SGST + IGST.
func (t TaxBreakdown) Total() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// IsInterState reports whether the breakdown was computed as IGST.
func (t TaxBreakdown) IsInterState() bool {
	return !t.IGST.IsZero()
}

// LineItemCalculation is the computed result for one bill line.
type LineItemCalculation struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	RatePercent decimal.Decimal `json:"gst_rate"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	Tax         TaxBreakdown    `json:"tax"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// BillTotals is the aggregate of a bill's line items after discount.
type BillTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// TotalTax returns the bill-level CGST + SGST + IGST.
func (b BillTotals) TotalTax() decimal.Decimal {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}

// ComputeTaxSplit splits the GST on amount at ratePercent between CGST/SGST
// (same seller and buyer state) or IGST (different states).
//
// The halves of an intra-state split are rounded independently; any residual
// against the rounded total is added to CGST so the parts always sum to the
// total exactly. Non-positive amounts or rates yield a zero breakdown. State
// codes are compared as opaque strings.
func ComputeTaxSplit(amount, ratePercent decimal.Decimal, sellerState, buyerState string) TaxBreakdown {
	if !amount.IsPositive() || !ratePercent.IsPositive() {
		return TaxBreakdown{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}
	}

	total := Round2(amount.Mul(ratePercent).Div(hundred))

	if sellerState != buyerState {
		return TaxBreakdown{CGST: decimal.Zero, SGST: decimal.Zero, IGST: total}
	}

	half := Round2(total.Div(two))
	cgst, sgst := half, half
	if sum := cgst.Add(sgst); !sum.Equal(total) {
		cgst = cgst.Add(total.Sub(sum))
	}
	return TaxBreakdown{CGST: cgst, SGST: sgst, IGST: decimal.Zero}
}

// ComputeLineItem computes the base amount (quantity × rate, rounded) and the
// GST on it for a single line.
func ComputeLineItem(quantity, rate, ratePercent decimal.Decimal, sellerState, buyerState string) LineItemCalculation {
	base := Round2(quantity.Mul(rate))
	tax := ComputeTaxSplit(base, ratePercent, sellerState, buyerState)
	return LineItemCalculation{
		Quantity:    quantity,
		Rate:        rate,
		RatePercent: ratePercent,
		BaseAmount:  base,
		Tax:         tax,
		TotalAmount: base.Add(tax.Total()),
	}
}

// AggregateBillTotals sums line items and applies the discount policy.
//
// Tax components are plain sums of the already-rounded per-line values and
// are not re-rounded at bill level. The discount does not reduce the tax
// base; it is subtracted from the grand total only.
func AggregateBillTotals(items []LineItemCalculation, policy DiscountPolicy) BillTotals {
	subtotal, cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].BaseAmount)
		cgst = cgst.Add(items[i].Tax.CGST)
		sgst = sgst.Add(items[i].Tax.SGST)
		igst = igst.Add(items[i].Tax.IGST)
	}

	discount := policy.Apply(subtotal)

	return BillTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		CGST:           cgst,
		SGST:           sgst,
		IGST:           igst,
		TotalAmount:    subtotal.Sub(discount).Add(cgst).Add(sgst).Add(igst),
	}
}
