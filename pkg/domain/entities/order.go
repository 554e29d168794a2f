package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidQuantity is returned when a line item asks for zero or fewer units
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrEmptyOrderReference is returned for a sales order without a reference
var ErrEmptyOrderReference = errors.New("order reference cannot be empty")

// Address is the ship-to address carried from the sales order onto every PO
type Address struct {
	Name     string `json:"name,omitempty" yaml:"name"`
	Company  string `json:"company,omitempty" yaml:"company"`
	Address1 string `json:"address1,omitempty" yaml:"address1"`
	Address2 string `json:"address2,omitempty" yaml:"address2"`
	City     string `json:"city,omitempty" yaml:"city"`
	Province string `json:"province,omitempty" yaml:"province"`
	Zip      string `json:"zip,omitempty" yaml:"zip"`
	Country  string `json:"country,omitempty" yaml:"country"`
	Phone    string `json:"phone,omitempty" yaml:"phone"`
}

// OrderLineItem is one requested product on a sales order
type OrderLineItem struct {
	ProductID ProductID `json:"product_id"`
	Title     string    `json:"title,omitempty"`
	Quantity  Quantity  `json:"quantity"`
	VariantID string    `json:"variant_id,omitempty"`
}

// NewOrderLineItem creates a validated OrderLineItem
func NewOrderLineItem(productID ProductID, title string, quantity Quantity, variantID string) (*OrderLineItem, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidQuantity, quantity)
	}

	return &OrderLineItem{
		ProductID: productID,
		Title:     title,
		Quantity:  quantity,
		VariantID: variantID,
	}, nil
}

// SalesOrder is the triggering order received from the order source
type SalesOrder struct {
	Reference       string          `json:"reference"`
	LineItems       []OrderLineItem `json:"line_items"`
	ShippingAddress Address         `json:"shipping_address"`
}

// NewSalesOrder creates a validated SalesOrder
func NewSalesOrder(reference string, lineItems []OrderLineItem, shippingAddress Address) (*SalesOrder, error) {
	order := &SalesOrder{
		Reference:       reference,
		LineItems:       lineItems,
		ShippingAddress: shippingAddress,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate checks the order-level fields. Line quantities are not checked here;
// a bad line is skipped with a warning rather than rejecting the order.
func (o *SalesOrder) Validate() error {
	if o.Reference == "" {
		return ErrEmptyOrderReference
	}
	for i, line := range o.LineItems {
		if line.ProductID == "" {
			return fmt.Errorf("line %d: product id cannot be empty", i)
		}
	}
	return nil
}
