package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SupplierLink connects a product to one supplier that can fulfill it
type SupplierLink struct {
	SupplierID   SupplierID
	SupplierName string
	ProductID    ProductID
	Priority     int // lower value = preferred first
	Price        decimal.Decimal
	StockLevel   Quantity
	LeadTimeDays int
	MinimumOrder Quantity
}

// NewSupplierLink creates a validated SupplierLink
func NewSupplierLink(
	supplierID SupplierID,
	supplierName string,
	productID ProductID,
	priority int,
	price decimal.Decimal,
	stockLevel Quantity,
	leadTimeDays int,
	minimumOrder Quantity,
) (*SupplierLink, error) {
	if string(supplierID) == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}
	if stockLevel < 0 {
		return nil, fmt.Errorf("stock level cannot be negative, got %d", stockLevel)
	}
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("lead time cannot be negative, got %d", leadTimeDays)
	}
	if minimumOrder < 1 {
		return nil, fmt.Errorf("minimum order must be at least 1, got %d", minimumOrder)
	}

	return &SupplierLink{
		SupplierID:   supplierID,
		SupplierName: supplierName,
		ProductID:    productID,
		Priority:     priority,
		Price:        price,
		StockLevel:   stockLevel,
		LeadTimeDays: leadTimeDays,
		MinimumOrder: minimumOrder,
	}, nil
}

// HasStock reports whether the link currently holds any stock
func (l *SupplierLink) HasStock() bool {
	return l.StockLevel > 0
}
