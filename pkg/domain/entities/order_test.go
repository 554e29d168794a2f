package entities

import (
	"errors"
	"testing"
)

func TestOrderLineItem_Validation(t *testing.T) {
	validItem, err := NewOrderLineItem("BOLT_M12", "M12 hex bolt", 5, "VAR-1")
	if err != nil {
		t.Fatalf("Expected valid line item creation to succeed: %v", err)
	}
	if validItem.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", validItem.Quantity)
	}

	testCases := []struct {
		name        string
		productID   ProductID
		quantity    Quantity
		expectError string
	}{
		{"empty product", "", 5, "product id cannot be empty"},
		{"zero quantity", "BOLT_M12", 0, "quantity must be positive, got 0"},
		{"negative quantity", "BOLT_M12", -4, "quantity must be positive, got -4"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrderLineItem(tc.productID, "title", tc.quantity, "")
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}

	_, err = NewOrderLineItem("BOLT_M12", "", 0, "")
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
}

func TestSalesOrder_Validation(t *testing.T) {
	order, err := NewSalesOrder("1001", []OrderLineItem{{ProductID: "BOLT_M12", Quantity: 1}}, Address{City: "Durban"})
	if err != nil {
		t.Fatalf("Expected valid order creation to succeed: %v", err)
	}
	if order.ShippingAddress.City != "Durban" {
		t.Errorf("Expected shipping city Durban, got %s", order.ShippingAddress.City)
	}

	_, err = NewSalesOrder("", nil, Address{})
	if !errors.Is(err, ErrEmptyOrderReference) {
		t.Errorf("Expected ErrEmptyOrderReference, got %v", err)
	}

	_, err = NewSalesOrder("1002", []OrderLineItem{{ProductID: "BOLT_M12", Quantity: 1}, {Quantity: 2}}, Address{})
	if err == nil || err.Error() != "line 1: product id cannot be empty" {
		t.Errorf("Expected empty product id on line 1 to be rejected, got %v", err)
	}

	// non-positive quantities are left for the builder to report
	invalidQty := &SalesOrder{Reference: "1003", LineItems: []OrderLineItem{{ProductID: "NUT_M12", Quantity: -1}}}
	if err := invalidQty.Validate(); err != nil {
		t.Errorf("Expected order with a bad quantity to validate, got %v", err)
	}
}

func TestAllocationEntry_Validation(t *testing.T) {
	entry, err := NewAllocationEntry("SUP-0001", "Acme", "BOLT_M12", 3, decimalFromString(t, "2.25"), false)
	if err != nil {
		t.Fatalf("Expected valid allocation entry creation to succeed: %v", err)
	}
	if entry.IsBackorder {
		t.Error("Expected non-backorder entry")
	}

	if _, err := NewAllocationEntry("", "", "BOLT_M12", 3, decimalFromString(t, "1"), false); err == nil {
		t.Error("Expected error for empty supplier id")
	}
	if _, err := NewAllocationEntry("SUP-0001", "", "BOLT_M12", 0, decimalFromString(t, "1"), true); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity for zero quantity, got %v", err)
	}
	if _, err := NewAllocationEntry("SUP-0001", "", "BOLT_M12", 1, decimalFromString(t, "-0.01"), false); err == nil {
		t.Error("Expected error for negative price")
	}

	total := TotalQuantity([]AllocationEntry{{Quantity: 8}, {Quantity: 2}})
	if total != 10 {
		t.Errorf("Expected total quantity 10, got %d", total)
	}
}
