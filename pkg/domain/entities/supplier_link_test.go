package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSupplierLink_Validation(t *testing.T) {
	price := decimal.RequireFromString("12.50")

	validLink, err := NewSupplierLink("SUP-0001", "Acme Fasteners", "BOLT_M12", 1, price, 40, 3, 1)
	if err != nil {
		t.Fatalf("Expected valid supplier link creation to succeed: %v", err)
	}
	if validLink.StockLevel != 40 {
		t.Errorf("Expected stock level 40, got %d", validLink.StockLevel)
	}
	if !validLink.Price.Equal(price) {
		t.Errorf("Expected price %s, got %s", price, validLink.Price)
	}
	if !validLink.HasStock() {
		t.Error("Expected link with stock 40 to report stock")
	}

	testCases := []struct {
		name         string
		supplierID   SupplierID
		productID    ProductID
		price        decimal.Decimal
		stockLevel   Quantity
		leadTime     int
		minimumOrder Quantity
		expectError  string
	}{
		{"empty supplier", "", "BOLT_M12", price, 1, 1, 1, "supplier id cannot be empty"},
		{"empty product", "SUP-0001", "", price, 1, 1, 1, "product id cannot be empty"},
		{"negative price", "SUP-0001", "BOLT_M12", decimal.NewFromInt(-1), 1, 1, 1, "price cannot be negative, got -1"},
		{"negative stock", "SUP-0001", "BOLT_M12", price, -3, 1, 1, "stock level cannot be negative, got -3"},
		{"negative lead time", "SUP-0001", "BOLT_M12", price, 1, -2, 1, "lead time cannot be negative, got -2"},
		{"zero minimum order", "SUP-0001", "BOLT_M12", price, 1, 1, 0, "minimum order must be at least 1, got 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSupplierLink(tc.supplierID, "name", tc.productID, 1, tc.price, tc.stockLevel, tc.leadTime, tc.minimumOrder)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestSupplierLink_ZeroStock(t *testing.T) {
	link, err := NewSupplierLink("SUP-0002", "", "WASHER_M12", 2, decimal.Zero, 0, 0, 1)
	if err != nil {
		t.Fatalf("Expected zero stock link to be valid: %v", err)
	}
	if link.HasStock() {
		t.Error("Expected link with zero stock to report no stock")
	}
}
