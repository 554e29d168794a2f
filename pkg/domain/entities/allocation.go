package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationEntry is one supplier's share of a single line item
type AllocationEntry struct {
	SupplierID   SupplierID
	SupplierName string
	ProductID    ProductID
	Quantity     Quantity
	Price        decimal.Decimal
	IsBackorder  bool
}

// NewAllocationEntry creates a validated AllocationEntry
func NewAllocationEntry(
	supplierID SupplierID,
	supplierName string,
	productID ProductID,
	quantity Quantity,
	price decimal.Decimal,
	isBackorder bool,
) (*AllocationEntry, error) {
	if string(supplierID) == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidQuantity, quantity)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}

	return &AllocationEntry{
		SupplierID:   supplierID,
		SupplierName: supplierName,
		ProductID:    productID,
		Quantity:     quantity,
		Price:        price,
		IsBackorder:  isBackorder,
	}, nil
}

// TotalQuantity sums the quantity of every entry
func TotalQuantity(entries []AllocationEntry) Quantity {
	var total Quantity
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}
