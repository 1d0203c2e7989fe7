package contractform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
)

// Step is a page of the contract wizard.
type Step string

// Wizard steps, in order.
const (
	StepClient   Step = "client"
	StepSchedule Step = "schedule"
	StepProducts Step = "products"
	StepServices Step = "services"
	StepReview   Step = "review"
)

// Steps lists the wizard steps in order.
var Steps = []Step{StepClient, StepSchedule, StepProducts, StepServices, StepReview}

// ErrUnknownStep is returned for a step name outside Steps.
var ErrUnknownStep = errors.New("contractform: unknown step")

// ErrLastStep is returned when advancing past the review step.
var ErrLastStep = errors.New("contractform: already at the last step")

// ParseStep parses a step name.
func ParseStep(s string) (Step, error) {
	step := Step(strings.ToLower(strings.TrimSpace(s)))
	if step.index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
	return step, nil
}

func (s Step) index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the step after s.
func Next(s Step) (Step, error) {
	i := s.index()
	switch {
	case i < 0:
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
	case i == len(Steps)-1:
		return "", ErrLastStep
	}
	return Steps[i+1], nil
}

// owns reports whether a field path is edited on step s.
func (s Step) owns(field string) bool {
	switch s {
	case StepClient:
		return field == "client_id" || strings.HasPrefix(field, "billing_address")
	case StepSchedule:
		return field == "office_id" || field == "start" || field == "end"
	case StepProducts:
		return strings.HasPrefix(field, "items") && !strings.Contains(field, ".services")
	case StepServices:
		return strings.HasPrefix(field, "items") && strings.Contains(field, ".services")
	case StepReview:
		return true
	}
	return false
}

// ValidateStep checks the fields edited on step and the ones before it, so a
// user cannot move forward over an earlier invalid page.
func ValidateStep(step Step, s State, stock StockIndex) error {
	i := step.index()
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	var out ValidationErrors
	for _, fe := range collect(s, stock) {
		for _, prev := range Steps[:i+1] {
			if prev.owns(fe.Field) {
				out = append(out, fe)
				break
			}
		}
	}
	return out.orNil()
}

// Input converts the form into calculator input. Discounts that arrived from
// outside are normalized against their subtotal first.
func Input(s State) pricing.Input {
	period := s.Period()
	in := pricing.Input{Period: period, Items: make([]pricing.Item, 0, len(s.Items))}
	for _, it := range s.Items {
		qty := it.Quantity()
		discount := it.Discount
		discount.Normalize(pricing.ProductSubtotal(it.UnitPrice, qty, period))

		item := pricing.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  qty,
			Shipping:  it.Shipping(),
			Discount:  discount,
		}
		for _, svc := range it.Services {
			ps := pricing.Service{
				ServiceID:     svc.ServiceID,
				Name:          svc.Name,
				Price:         svc.Price,
				Billing:       svc.Billing,
				BillingPeriod: svc.BillingPeriod,
				Discount:      svc.Discount,
			}
			ps.Discount.Normalize(pricing.ServiceSubtotal(ps, period))
			item.Services = append(item.Services, ps)
		}
		in.Items = append(in.Items, item)
	}
	return in
}

// Quoter prices contract forms.
type Quoter struct {
	calc pricing.Calculator
}

// NewQuoter creates a quoter backed by calc.
func NewQuoter(calc pricing.Calculator) *Quoter {
	return &Quoter{calc: calc}
}

// Quote prices the form as it currently stands.
func (q *Quoter) Quote(s State) pricing.Quote {
	start := time.Now()
	quote := q.calc.Quote(Input(s))
	status := "success"
	if len(quote.Warnings) > 0 {
		status = "warning"
	}
	metrics.RecordContractQuote(time.Since(start), status)
	return quote
}

// BuildContractInput validates the form and converts it into the
// createContract mutation input, with totals from quote.
func BuildContractInput(s State, stock StockIndex, quote pricing.Quote) (rental.CreateContractInput, error) {
	if err := Validate(s, stock); err != nil {
		return rental.CreateContractInput{}, err
	}

	in := rental.CreateContractInput{
		ClientID:      s.ClientID,
		OfficeID:      s.OfficeID,
		ContractStart: s.Start.Format(querycache.DateLayout),
		ContractEnd:   s.End.Format(querycache.DateLayout),
		Items:         make([]rental.ContractItemInput, 0, len(s.Items)),
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		Total:         quote.Total,
	}
	if s.BillingAddress != nil {
		in.BillingAddress = &rental.BillingAddressInput{
			Street:     s.BillingAddress.Street,
			LocalityID: s.BillingAddress.LocalityID,
		}
	}

	priced := Input(s)
	for i, it := range s.Items {
		d := priced.Items[i].Discount
		item := rental.ContractItemInput{
			ProductID:          it.ProductID,
			Quantity:           it.Quantity(),
			Price:              it.UnitPrice,
			DiscountType:       d.Type,
			DiscountPercentage: d.Percentage,
			DiscountAmount:     d.Amount,
			Allocations:        make([]rental.AllocationInput, 0, len(it.Allocations)),
		}
		for _, a := range it.Allocations {
			item.Allocations = append(item.Allocations, rental.AllocationInput{
				OfficeID:         a.OfficeID,
				Quantity:         a.Quantity,
				ShippingCost:     a.ShippingCost,
				ShippingDiscount: a.ShippingDiscount,
			})
		}
		for j, svc := range priced.Items[i].Services {
			item.Services = append(item.Services, rental.ServiceInput{
				ServiceID:          it.Services[j].ServiceID,
				DiscountType:       svc.Discount.Type,
				DiscountPercentage: svc.Discount.Percentage,
				DiscountAmount:     svc.Discount.Amount,
			})
		}
		in.Items = append(in.Items, item)
	}
	return in, nil
}
