// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/rental"
)

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Credentials exchanged for an API token
// @Example {"email": "user@example.com", "password": "secret"}
type LoginRequest struct {
	// Email is the user's email address.
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	// Password is the user's password.
	Password string `json:"password" binding:"required" example:"secret"`
} // @name LoginRequest

// LoginResponse carries the token to send back as "Authorization: JWT <token>".
type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
} // @name LoginResponse

// MessageResponse is the body of operations that return no resource.
type MessageResponse struct {
	Message string `json:"message" example:"Signed out"`
} // @name MessageResponse

// ClientExistsResponse answers a uniqueness check of a client field.
type ClientExistsResponse struct {
	Field  string `json:"field" example:"dni"`
	Value  string `json:"value" example:"30111222"`
	Exists bool   `json:"exists"`
} // @name ClientExistsResponse

// ReceiveInternalOrderRequest records the quantities received of an internal order.
type ReceiveInternalOrderRequest struct {
	Products []rental.ReceivedLineInput `json:"products" binding:"required,min=1" validate:"required,min=1,dive"`
} // @name ReceiveInternalOrderRequest

// CreateDraftRequest starts a contract wizard, optionally prefilled.
type CreateDraftRequest struct {
	State contractform.State `json:"state"`
} // @name CreateDraftRequest

// UpdateDraftRequest replaces the state of a contract draft.
//
// Version must be the version last read. Step may only move the wizard back.
type UpdateDraftRequest struct {
	Version int                `json:"version" binding:"required,min=1" example:"3"`
	Step    *contractform.Step `json:"step,omitempty" example:"schedule"`
	State   contractform.State `json:"state"`
} // @name UpdateDraftRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidStep is returned when an update names an unknown wizard step.
	ErrInvalidStep = &ValidationError{
		Field:   "step",
		Message: "must be one of: client, schedule, products, services, review",
	}
	// ErrDuplicateProduct is returned when a receipt lists a product twice.
	ErrDuplicateProduct = &ValidationError{
		Field:   "products",
		Message: "must not repeat a product",
	}
)

// Validate checks the step name when one is given.
func (r *UpdateDraftRequest) Validate() error {
	if r.Step == nil {
		return nil
	}
	if _, err := contractform.ParseStep(string(*r.Step)); err != nil {
		return ErrInvalidStep
	}
	return nil
}

// Validate runs the line rules and rejects repeated products.
func (r *ReceiveInternalOrderRequest) Validate() error {
	if err := contractform.ValidateInput(*r); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(r.Products))
	for _, p := range r.Products {
		if _, ok := seen[p.ProductID]; ok {
			return ErrDuplicateProduct
		}
		seen[p.ProductID] = struct{}{}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Details returns the error keyed by field.
func (e *ValidationError) Details() map[string]string {
	return map[string]string{e.Field: e.Message}
}
