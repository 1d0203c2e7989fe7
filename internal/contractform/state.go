// Package contractform drives the multi-step contract wizard: the form state,
// its validation against office stock, the derived quote and the mutation
// input sent on submit.
package contractform

import (
	"time"

	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/shopspring/decimal"
)

// State is the contract being filled in.
type State struct {
	ClientID       string          `json:"client_id" bson:"client_id" validate:"required"`
	OfficeID       string          `json:"office_id" bson:"office_id" validate:"required"`
	BillingAddress *BillingAddress `json:"billing_address,omitempty" bson:"billing_address,omitempty"`
	Start          *time.Time      `json:"start,omitempty" bson:"start,omitempty" validate:"required"`
	End            *time.Time      `json:"end,omitempty" bson:"end,omitempty" validate:"required"`
	Items          []OrderItem     `json:"items" bson:"items" validate:"required,min=1,dive"`
}

// BillingAddress is the invoicing address captured when the client is picked.
type BillingAddress struct {
	Street     string `json:"street" bson:"street" validate:"required,max=200"`
	LocalityID string `json:"locality_id" bson:"locality_id" validate:"required"`
}

// OrderItem is a product of the contract and the offices it is sourced from.
type OrderItem struct {
	ProductID   string           `json:"product_id" bson:"product_id" validate:"required"`
	Name        string           `json:"name,omitempty" bson:"name,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unit_price" bson:"unit_price"`
	Discount    pricing.Discount `json:"discount" bson:"discount"`
	Allocations []Allocation     `json:"allocations" bson:"allocations" validate:"required,min=1,dive"`
	Services    []ServiceItem    `json:"services,omitempty" bson:"services,omitempty" validate:"dive"`
}

// Allocation is the quantity of an item taken from one office.
type Allocation struct {
	OfficeID         string          `json:"office_id" bson:"office_id" validate:"required"`
	Quantity         int             `json:"quantity" bson:"quantity" validate:"min=1"`
	ShippingCost     decimal.Decimal `json:"shipping_cost" bson:"shipping_cost"`
	ShippingDiscount decimal.Decimal `json:"shipping_discount" bson:"shipping_discount"`
}

// ServiceItem is a product service added to an item.
type ServiceItem struct {
	ServiceID     string              `json:"service_id" bson:"service_id" validate:"required"`
	Name          string              `json:"name,omitempty" bson:"name,omitempty"`
	Price         decimal.Decimal     `json:"price" bson:"price"`
	Billing       pricing.BillingType `json:"billing_type" bson:"billing_type" validate:"required,oneof=ONE_TIME WEEKLY MONTHLY CUSTOM"`
	BillingPeriod int                 `json:"billing_period,omitempty" bson:"billing_period,omitempty" validate:"min=0"`
	Discount      pricing.Discount    `json:"discount" bson:"discount"`
}

// Quantity is the sum of the item's allocations.
func (it OrderItem) Quantity() int {
	n := 0
	for _, a := range it.Allocations {
		n += a.Quantity
	}
	return n
}

// Shipping is the item's shipping cost net of shipping discounts.
func (it OrderItem) Shipping() decimal.Decimal {
	total := decimal.Zero
	for _, a := range it.Allocations {
		total = total.Add(a.ShippingCost.Sub(a.ShippingDiscount))
	}
	return total
}

// Period returns the contract date range.
func (s State) Period() pricing.Period {
	return pricing.Period{Start: s.Start, End: s.End}
}

// StockIndex holds the units available per product and office for the
// contract date range.
type StockIndex map[string]map[string]int

// Set records the stock of a product as returned by the API.
func (x StockIndex) Set(productID string, rows []rental.OfficeStock) {
	offices := make(map[string]int, len(rows))
	for _, r := range rows {
		offices[r.OfficeID] = r.Available
	}
	x[productID] = offices
}

// Available returns the units of a product available at an office. ok is
// false when the product's stock has not been loaded. An office missing from
// a loaded product has nothing available.
func (x StockIndex) Available(productID, officeID string) (available int, ok bool) {
	offices, ok := x[productID]
	if !ok {
		return 0, false
	}
	return offices[officeID], true
}

// Clamp limits every allocation of a loaded product to [0, available].
// It reports whether any quantity changed.
func Clamp(s *State, stock StockIndex) bool {
	changed := false
	for i := range s.Items {
		it := &s.Items[i]
		for j := range it.Allocations {
			a := &it.Allocations[j]
			limit, ok := stock.Available(it.ProductID, a.OfficeID)
			if !ok {
				continue
			}
			if q := pricing.ClampQuantity(a.Quantity, limit); q != a.Quantity {
				a.Quantity = q
				changed = true
			}
		}
	}
	return changed
}
