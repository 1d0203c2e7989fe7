package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BillingType is how a product service is charged over the contract period.
type BillingType string

const (
	// BillingOneTime charges the price once.
	BillingOneTime BillingType = "ONE_TIME"
	// BillingWeekly charges the price per whole week.
	BillingWeekly BillingType = "WEEKLY"
	// BillingMonthly charges the price per whole calendar month.
	BillingMonthly BillingType = "MONTHLY"
	// BillingCustom charges the price per billing period of N days, prorated.
	BillingCustom BillingType = "CUSTOM"
)

// ParseBillingType parses a billing type, accepting any letter case.
func ParseBillingType(s string) (BillingType, error) {
	switch t := BillingType(strings.ToUpper(strings.TrimSpace(s))); t {
	case BillingOneTime, BillingWeekly, BillingMonthly, BillingCustom:
		return t, nil
	default:
		return "", fmt.Errorf("unknown billing type %q", s)
	}
}

// Warning codes attached to a quote.
const (
	WarningIncompletePeriod = "incomplete_period"
	WarningNegativeTotal    = "negative_total"
)

// Service is a billable service attached to an order item.
type Service struct {
	ServiceID     string          `json:"service_id"`
	Name          string          `json:"name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Billing       BillingType     `json:"billing_type"`
	BillingPeriod int             `json:"billing_period,omitempty"`
	Discount      Discount        `json:"discount"`
}

// Item is one product line of a contract.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Quantity is the sum of the item's office allocations.
	Quantity int `json:"quantity"`
	// Shipping is the net shipping of the item's allocations.
	Shipping decimal.Decimal `json:"shipping"`
	Discount Discount        `json:"discount"`
	Services []Service       `json:"services,omitempty"`
}

// Input is everything a quote depends on.
type Input struct {
	Period Period `json:"period"`
	Items  []Item `json:"items"`
}

// ServiceQuote is the priced view of a Service.
type ServiceQuote struct {
	ServiceID          string          `json:"service_id"`
	Billing            BillingType     `json:"billing_type"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountType       DiscountType    `json:"discount_type"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Discount           decimal.Decimal `json:"discount"`
	Total              decimal.Decimal `json:"total"`
}

// ItemQuote is the priced view of an Item.
type ItemQuote struct {
	ProductID          string          `json:"product_id"`
	Quantity           int             `json:"quantity"`
	Days               int             `json:"days"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountType       DiscountType    `json:"discount_type"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Discount           decimal.Decimal `json:"discount"`
	Total              decimal.Decimal `json:"total"`
	Shipping           decimal.Decimal `json:"shipping"`
	Services           []ServiceQuote  `json:"services,omitempty"`
}

// Quote holds derived prices for a contract. Shipping is reported on its own
// and is not part of Total.
type Quote struct {
	Items    []ItemQuote     `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Shipping decimal.Decimal `json:"shipping"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Calculator prices contracts.
type Calculator interface {
	Quote(in Input) Quote
}

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// CalculatorService implements Calculator.
type CalculatorService struct {
	roundPlaces int32
	round       bool
}

// NewCalculatorService creates a calculator. Results are exact unless
// WithRounding is given.
func NewCalculatorService(opts ...Option) *CalculatorService {
	s := &CalculatorService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRounding rounds every reported amount to the given decimal places.
// Rounding happens on output only; sums are taken over exact values.
func WithRounding(places int32) Option {
	return func(s *CalculatorService) {
		if places >= 0 {
			s.roundPlaces = places
			s.round = true
		}
	}
}

// ProductSubtotal returns price × quantity × calendar days of the period.
func ProductSubtotal(unitPrice decimal.Decimal, quantity int, period Period) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(int64(period.Days())))
}

// ServiceSubtotal prices a service over the period according to its billing type.
// Weekly and monthly services bill whole units only. Custom services are
// prorated over their billing period. Without both dates only one-time services
// have a price.
func ServiceSubtotal(s Service, period Period) decimal.Decimal {
	if s.Billing == BillingOneTime {
		return s.Price
	}
	if !period.Complete() {
		return decimal.Zero
	}

	switch s.Billing {
	case BillingWeekly:
		return s.Price.Mul(decimal.NewFromInt(int64(period.Weeks())))
	case BillingMonthly:
		return s.Price.Mul(decimal.NewFromInt(int64(period.Months())))
	case BillingCustom:
		if s.BillingPeriod <= 0 {
			return decimal.Zero
		}
		return s.Price.
			Mul(decimal.NewFromInt(int64(period.Days()))).
			Div(decimal.NewFromInt(int64(s.BillingPeriod)))
	default:
		return decimal.Zero
	}
}

// Quote prices every item and service and sums the contract totals.
// Totals are not floored at zero; a negative total is flagged instead.
func (c *CalculatorService) Quote(in Input) Quote {
	q := Quote{
		Items:    make([]ItemQuote, 0, len(in.Items)),
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
	}
	days := in.Period.Days()

	for _, item := range in.Items {
		subtotal := ProductSubtotal(item.UnitPrice, item.Quantity, in.Period)
		discount := item.Discount.Effective(subtotal)

		iq := ItemQuote{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			Days:               days,
			Subtotal:           subtotal,
			DiscountType:       normalizedType(item.Discount.Type),
			DiscountPercentage: item.Discount.EffectivePercentage(subtotal),
			Discount:           discount,
			Total:              subtotal.Sub(discount),
			Shipping:           item.Shipping,
		}
		q.Subtotal = q.Subtotal.Add(subtotal)
		q.Discount = q.Discount.Add(discount)
		q.Shipping = q.Shipping.Add(item.Shipping)

		for _, svc := range item.Services {
			sq := quoteService(svc, in.Period)
			q.Subtotal = q.Subtotal.Add(sq.Subtotal)
			q.Discount = q.Discount.Add(sq.Discount)
			iq.Services = append(iq.Services, sq)
		}
		q.Items = append(q.Items, iq)
	}

	q.Total = q.Subtotal.Sub(q.Discount)

	if !in.Period.Complete() {
		q.Warnings = append(q.Warnings, WarningIncompletePeriod)
	}
	if q.Total.IsNegative() {
		q.Warnings = append(q.Warnings, WarningNegativeTotal)
	}

	if c.round {
		c.roundQuote(&q)
	}
	return q
}

func quoteService(s Service, period Period) ServiceQuote {
	subtotal := ServiceSubtotal(s, period)
	discount := s.Discount.Effective(subtotal)
	return ServiceQuote{
		ServiceID:          s.ServiceID,
		Billing:            s.Billing,
		Subtotal:           subtotal,
		DiscountType:       normalizedType(s.Discount.Type),
		DiscountPercentage: s.Discount.EffectivePercentage(subtotal),
		Discount:           discount,
		Total:              subtotal.Sub(discount),
	}
}

func normalizedType(t DiscountType) DiscountType {
	if t == "" {
		return DiscountNone
	}
	return t
}

func (c *CalculatorService) roundQuote(q *Quote) {
	r := func(d decimal.Decimal) decimal.Decimal { return d.Round(c.roundPlaces) }

	for i := range q.Items {
		it := &q.Items[i]
		it.Subtotal, it.Discount, it.Total = r(it.Subtotal), r(it.Discount), r(it.Total)
		it.DiscountPercentage, it.Shipping = r(it.DiscountPercentage), r(it.Shipping)
		for j := range it.Services {
			s := &it.Services[j]
			s.Subtotal, s.Discount, s.Total = r(s.Subtotal), r(s.Discount), r(s.Total)
			s.DiscountPercentage = r(s.DiscountPercentage)
		}
	}
	q.Subtotal, q.Discount, q.Total, q.Shipping = r(q.Subtotal), r(q.Discount), r(q.Total), r(q.Shipping)
}

// ClampQuantity clamps an allocation quantity into [0, limit].
func ClampQuantity(quantity, limit int) int {
	if limit < 0 {
		limit = 0
	}
	if quantity < 0 {
		return 0
	}
	if quantity > limit {
		return limit
	}
	return quantity
}
