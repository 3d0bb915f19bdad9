package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"gstbill/internal/gst"
)

// BillLine is one calculated line of a bill.
type BillLine struct {
	Description string `json:"description"`
	HSNCode     string `json:"hsn_code,omitempty"`
	gst.LineItemCalculation
}

// BillCalculation is the full tax computation of a bill, ready for display or export.
type BillCalculation struct {
	SellerStateCode string             `json:"seller_state_code"`
	SellerStateName string             `json:"seller_state_name"`
	BuyerStateCode  string             `json:"buyer_state_code"`
	BuyerStateName  string             `json:"buyer_state_name"`
	InterState      bool               `json:"inter_state"`
	Discount        gst.DiscountPolicy `json:"discount"`
	Lines           []BillLine         `json:"lines"`
	Totals          gst.BillTotals     `json:"totals"`
	TotalTax        decimal.Decimal    `json:"total_tax"`
	RateSummary     []gst.RateSummary  `json:"rate_summary"`
	AmountInWords   string             `json:"amount_in_words"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}
