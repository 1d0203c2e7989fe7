package contractform

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/rental"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError is a validation failure of one form field. Field is the JSON
// path of the field, e.g. items[0].allocations[1].quantity.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors lists the fields that failed validation.
type ValidationErrors []FieldError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details returns the errors keyed by field, as sent in error responses.
func (e ValidationErrors) Details() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Has reports whether field failed validation.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	sort.SliceStable(e, func(i, j int) bool { return e[i].Field < e[j].Field })
	return e
}

// Cross-field rules.
const (
	RuleStartBeforeEnd  = "start_before_end"
	RuleDuplicateOffice = "unique_office"
	RuleStock           = "stock"
	RuleBillingPeriod   = "billing_period"
	RuleUnique          = "unique"
)

// Validate checks the whole form. stock may be nil, in which case quantities
// are not checked against availability. It returns ValidationErrors or nil.
func Validate(s State, stock StockIndex) error {
	return collect(s, stock).orNil()
}

func collect(s State, stock StockIndex) ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, structErrors(s)...)

	if s.Start != nil && s.End != nil && !s.Start.Before(*s.End) {
		errs = append(errs, FieldError{Field: "end", Rule: RuleStartBeforeEnd, Message: "must be after start"})
	}

	for i, it := range s.Items {
		seen := make(map[string]bool, len(it.Allocations))
		for j, a := range it.Allocations {
			path := fmt.Sprintf("items[%d].allocations[%d]", i, j)
			if a.OfficeID != "" && seen[a.OfficeID] {
				errs = append(errs, FieldError{Field: path + ".office_id", Rule: RuleDuplicateOffice, Message: "office is already allocated for this item"})
			}
			seen[a.OfficeID] = true

			if stock == nil {
				continue
			}
			if limit, ok := stock.Available(it.ProductID, a.OfficeID); ok && a.Quantity > limit {
				errs = append(errs, FieldError{
					Field:   path + ".quantity",
					Rule:    RuleStock,
					Message: fmt.Sprintf("must be at most %d", limit),
				})
			}
		}
		for j, svc := range it.Services {
			if svc.Billing == pricing.BillingCustom && svc.BillingPeriod <= 0 {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("items[%d].services[%d].billing_period", i, j),
					Rule:    RuleBillingPeriod,
					Message: "must be at least 1 for custom billing",
				})
			}
		}
	}
	return errs
}

func structErrors(v any) ValidationErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Rule: fe.Tag(), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name from the error namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "nefield":
		return "must differ from " + fe.Param()
	}
	return "is invalid"
}

// ValidateInput runs the struct rules of an API input such as
// rental.ClientInput. It returns ValidationErrors or nil.
func ValidateInput(v any) error {
	return structErrors(v).orNil()
}

// UniquenessChecker reports whether a client already uses value for field.
type UniquenessChecker func(ctx context.Context, field rental.ClientField, value string) (bool, error)

// ValidateClient checks a client input and then asks check whether its DNI
// and email are taken. When editing, current is the stored client and its
// unchanged values are not checked.
func ValidateClient(ctx context.Context, in rental.ClientInput, current *rental.Client, check UniquenessChecker) error {
	if errs := structErrors(in); len(errs) > 0 {
		return errs.orNil()
	}
	if check == nil {
		return nil
	}

	var errs ValidationErrors
	fields := []struct {
		field rental.ClientField
		value string
		same  bool
	}{
		{rental.ClientDNI, in.DNI, current != nil && current.DNI == in.DNI},
		{rental.ClientEmail, in.Email, current != nil && strings.EqualFold(current.Email, in.Email)},
	}
	for _, f := range fields {
		if f.same {
			continue
		}
		taken, err := check(ctx, f.field, f.value)
		if err != nil {
			return fmt.Errorf("check %s: %w", f.field, err)
		}
		if taken {
			errs = append(errs, FieldError{Field: string(f.field), Rule: RuleUnique, Message: "is already registered"})
		}
	}
	return errs.orNil()
}
