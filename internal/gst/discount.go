package gst

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a bill-level discount is derived.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// ParseDiscountType maps a stored or submitted discount type to a
// DiscountType. An empty string means no discount.
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(strings.ToLower(strings.TrimSpace(s))) {
	case "", DiscountNone:
		return DiscountNone, nil
	case DiscountPercentage:
		return DiscountPercentage, nil
	case DiscountAmount:
		return DiscountAmount, nil
	default:
		return "", fmt.Errorf("unknown discount type %q", s)
	}
}

// DiscountPolicy is a bill-level discount rule.
type DiscountPolicy struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// NoDiscount returns a policy that never discounts.
func NoDiscount() DiscountPolicy {
	return DiscountPolicy{Type: DiscountNone, Value: decimal.Zero}
}

// PercentageDiscount discounts p percent of the subtotal.
func PercentageDiscount(p decimal.Decimal) DiscountPolicy {
	return DiscountPolicy{Type: DiscountPercentage, Value: p}
}

// AmountDiscount discounts a fixed amount, capped at the subtotal.
func AmountDiscount(v decimal.Decimal) DiscountPolicy {
	return DiscountPolicy{Type: DiscountAmount, Value: v}
}

// Apply returns the discount amount for subtotal. Non-positive policy values
// discount nothing.
func (p DiscountPolicy) Apply(subtotal decimal.Decimal) decimal.Decimal {
	if !p.Value.IsPositive() {
		return decimal.Zero
	}
	switch p.Type {
	case DiscountPercentage:
		return Round2(subtotal.Mul(p.Value).Div(hundred))
	case DiscountAmount:
		return decimal.Min(p.Value, subtotal)
	default:
		return decimal.Zero
	}
}
