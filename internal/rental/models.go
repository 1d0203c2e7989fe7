package rental

import (
	"time"

	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/shopspring/decimal"
)

// Locality is a city or town addresses refer to.
type Locality struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Office is a branch that holds stock.
type Office struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Street   string    `json:"street,omitempty"`
	Locality *Locality `json:"locality,omitempty"`
}

// Client is a customer.
type Client struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"phoneNumber,omitempty"`
	Street    string    `json:"street,omitempty"`
	Locality  *Locality `json:"locality,omitempty"`
}

// Product is an item that can be rented or sold.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
}

// ProductService is an optional add-on offered with a product.
type ProductService struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.Decimal     `json:"price"`
	BillingType   pricing.BillingType `json:"billingType"`
	BillingPeriod int                 `json:"billingPeriod,omitempty"`
}

// OfficeStock is a product's stock at one office for a date range.
type OfficeStock struct {
	OfficeID   string `json:"officeId"`
	OfficeName string `json:"officeName"`
	Available  int    `json:"available"`
}

// Supplier provides products.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phoneNumber,omitempty"`
	Address string `json:"address,omitempty"`
}

// Purchase is a sale to a client.
type Purchase struct {
	ID        string          `json:"id"`
	Client    *Client         `json:"client,omitempty"`
	Office    *Office         `json:"office,omitempty"`
	Total     decimal.Decimal `json:"total"`
	CreatedOn time.Time       `json:"createdOn"`
}

// Contract is a rental contract.
type Contract struct {
	ID            string          `json:"id"`
	Client        *Client         `json:"client,omitempty"`
	Office        *Office         `json:"office,omitempty"`
	ContractStart string          `json:"contractStart"`
	ContractEnd   string          `json:"contractEnd"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedOn     time.Time       `json:"createdOn"`
}

// OrderLine is a product and quantity of an order.
type OrderLine struct {
	Product          *Product        `json:"product,omitempty"`
	Quantity         int             `json:"quantity"`
	QuantityReceived int             `json:"quantityReceived,omitempty"`
	Price            decimal.Decimal `json:"price"`
}

// SupplierOrder is stock bought from a supplier for an office.
type SupplierOrder struct {
	ID          string          `json:"id"`
	Supplier    *Supplier       `json:"supplier,omitempty"`
	OfficeDest  *Office         `json:"officeDestination,omitempty"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Products    []OrderLine     `json:"products"`
	CreatedOn   time.Time       `json:"createdOn"`
	Description string          `json:"note,omitempty"`
}

// Internal order statuses.
const (
	InternalOrderPending    = "PENDING"
	InternalOrderInProgress = "IN_PROGRESS"
	InternalOrderCompleted  = "COMPLETED"
	InternalOrderCanceled   = "CANCELED"
)

// InternalOrder moves stock between offices.
type InternalOrder struct {
	ID           string      `json:"id"`
	OfficeSource *Office     `json:"officeSource,omitempty"`
	OfficeDest   *Office     `json:"officeDestination,omitempty"`
	Status       string      `json:"status"`
	Products     []OrderLine `json:"products"`
	CreatedOn    time.Time   `json:"createdOn"`
}

// ClientInput creates or updates a client.
type ClientInput struct {
	FirstName  string `json:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	DNI        string `json:"dni" validate:"required,numeric,min=7,max=9"`
	Phone      string `json:"phoneNumber" validate:"omitempty,max=30"`
	Street     string `json:"street" validate:"omitempty,max=200"`
	LocalityID string `json:"locality" validate:"required"`
}

// LocalityInput creates a locality.
type LocalityInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=10"`
}

// AllocationInput sources units of a contract item from an office.
type AllocationInput struct {
	OfficeID         string          `json:"office"`
	Quantity         int             `json:"quantity"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
	ShippingDiscount decimal.Decimal `json:"shippingDiscount"`
}

// ServiceInput adds a product service to a contract item.
type ServiceInput struct {
	ServiceID          string               `json:"service"`
	DiscountType       pricing.DiscountType `json:"discountType"`
	DiscountPercentage decimal.Decimal      `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal      `json:"discountAmount"`
}

// ContractItemInput is one product of a new contract.
type ContractItemInput struct {
	ProductID          string               `json:"product"`
	Quantity           int                  `json:"quantity"`
	Price              decimal.Decimal      `json:"price"`
	DiscountType       pricing.DiscountType `json:"productDiscountType"`
	DiscountPercentage decimal.Decimal      `json:"productDiscountPercentage"`
	DiscountAmount     decimal.Decimal      `json:"productDiscountAmount"`
	Allocations        []AllocationInput    `json:"allocations"`
	Services           []ServiceInput       `json:"services"`
}

// BillingAddressInput is where a contract is invoiced.
type BillingAddressInput struct {
	Street     string `json:"street"`
	LocalityID string `json:"locality"`
}

// CreateContractInput creates a rental contract.
type CreateContractInput struct {
	ClientID       string               `json:"client"`
	OfficeID       string               `json:"office"`
	ContractStart  string               `json:"contractStart"`
	ContractEnd    string               `json:"contractEnd"`
	BillingAddress *BillingAddressInput `json:"billingAddress,omitempty"`
	Items          []ContractItemInput  `json:"orders"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
}

// OrderLineInput is a product and quantity of a new order.
type OrderLineInput struct {
	ProductID string          `json:"product" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// SupplierOrderInput creates a supplier order.
type SupplierOrderInput struct {
	SupplierID string           `json:"supplier" validate:"required"`
	OfficeID   string           `json:"officeDestination" validate:"required"`
	Note       string           `json:"note" validate:"omitempty,max=500"`
	Products   []OrderLineInput `json:"products" validate:"required,min=1,dive"`
}

// InternalOrderInput creates an internal order.
type InternalOrderInput struct {
	SourceOfficeID string           `json:"officeSource" validate:"required"`
	DestOfficeID   string           `json:"officeDestination" validate:"required,nefield=SourceOfficeID"`
	Products       []OrderLineInput `json:"products" validate:"required,min=1,dive"`
}

// ReceivedLineInput is the quantity received of an internal order product.
type ReceivedLineInput struct {
	ProductID        string `json:"product" validate:"required"`
	QuantityReceived int    `json:"quantityReceived" validate:"min=0"`
}
