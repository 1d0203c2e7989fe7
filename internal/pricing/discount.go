package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType selects how a discount is expressed.
type DiscountType string

const (
	// DiscountNone applies no discount. Stored values are kept for a later switch back.
	DiscountNone DiscountType = "NONE"
	// DiscountPercentage applies a percentage of the subtotal.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountAmount applies a fixed amount.
	DiscountAmount DiscountType = "AMOUNT"
)

var hundred = decimal.NewFromInt(100)

// ParseDiscountType parses a discount type, accepting any letter case.
// An empty string is DiscountNone.
func ParseDiscountType(s string) (DiscountType, error) {
	switch t := DiscountType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return DiscountNone, nil
	case DiscountNone, DiscountPercentage, DiscountAmount:
		return t, nil
	default:
		return "", fmt.Errorf("unknown discount type %q", s)
	}
}

// Discount holds a line discount.
//
// The field matching Type is authoritative. The other one is the value derived
// when it was last edited, and is only read back when the user switches type.
type Discount struct {
	Type       DiscountType    `json:"type" validate:"omitempty,oneof=NONE PERCENTAGE AMOUNT"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// SetPercentage records a percentage edit, clamped to [0, 100], and derives
// the amount against subtotal.
func (d *Discount) SetPercentage(p, subtotal decimal.Decimal) {
	d.Type = DiscountPercentage
	d.Percentage = clamp(p, decimal.Zero, hundred)
	d.Amount = subtotal.Mul(d.Percentage).Div(hundred)
}

// SetAmount records an amount edit, clamped to [0, subtotal], and derives the
// percentage against subtotal.
func (d *Discount) SetAmount(a, subtotal decimal.Decimal) {
	d.Type = DiscountAmount
	d.Amount = clamp(a, decimal.Zero, decimal.Max(subtotal, decimal.Zero))
	d.Percentage = percentageOf(d.Amount, subtotal)
}

// SetType switches the discount type without touching stored values.
func (d *Discount) SetType(t DiscountType) {
	d.Type = t
}

// Normalize re-applies the clamping rules to values that arrived from outside,
// keeping the authoritative field and re-deriving the other.
func (d *Discount) Normalize(subtotal decimal.Decimal) {
	switch d.Type {
	case DiscountPercentage:
		d.SetPercentage(d.Percentage, subtotal)
	case DiscountAmount:
		d.SetAmount(d.Amount, subtotal)
	case "":
		d.Type = DiscountNone
	}
}

// Effective returns the discount applied against subtotal.
func (d Discount) Effective(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case DiscountPercentage:
		return subtotal.Mul(d.Percentage).Div(hundred)
	case DiscountAmount:
		return d.Amount
	default:
		return decimal.Zero
	}
}

// EffectivePercentage returns the applied discount as a percentage of subtotal.
func (d Discount) EffectivePercentage(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case DiscountPercentage:
		return d.Percentage
	case DiscountAmount:
		return percentageOf(d.Amount, subtotal)
	default:
		return decimal.Zero
	}
}

func percentageOf(amount, subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(subtotal).Mul(hundred)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
