package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func TestPOItem_LineTotal(t *testing.T) {
	item, err := NewPOItem("BOLT_M12", "M12 hex bolt", "", 8, decimalFromString(t, "1.15"), false)
	if err != nil {
		t.Fatalf("Expected valid PO item: %v", err)
	}
	if !item.LineTotal.Equal(decimalFromString(t, "9.20")) {
		t.Errorf("Expected line total 9.20, got %s", item.LineTotal)
	}
}

func TestPurchaseOrder_Totals(t *testing.T) {
	bolts, _ := NewPOItem("BOLT_M12", "Bolt", "", 8, decimalFromString(t, "1.15"), false)
	nuts, _ := NewPOItem("NUT_M12", "Nut", "", 2, decimalFromString(t, "0.40"), true)
	requiredBy := time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)

	po, err := NewPurchaseOrder("PO-1001-0007", "SUP-0007", "Acme", "1001",
		[]POItem{*bolts, *nuts}, Address{City: "Durban"}, requiredBy, requiredBy)
	if err != nil {
		t.Fatalf("Expected valid purchase order: %v", err)
	}

	if po.ID == uuid.Nil {
		t.Error("Expected purchase order to get an id")
	}
	if po.Status != PendingApproval {
		t.Errorf("Expected status pending_approval, got %s", po.Status)
	}
	if !po.ApprovalRequired {
		t.Error("Expected approval to be required")
	}
	if !po.Subtotal.Equal(decimalFromString(t, "10.00")) {
		t.Errorf("Expected subtotal 10.00, got %s", po.Subtotal)
	}
	if !po.Total.Equal(po.Subtotal) {
		t.Errorf("Expected total to equal subtotal, got %s vs %s", po.Total, po.Subtotal)
	}
	if po.TotalQuantity() != 10 {
		t.Errorf("Expected total quantity 10, got %d", po.TotalQuantity())
	}
	if !po.HasBackorder() {
		t.Error("Expected PO with a backorder item to report it")
	}
}

func TestPurchaseOrder_Validation(t *testing.T) {
	item, _ := NewPOItem("BOLT_M12", "Bolt", "", 1, decimal.NewFromInt(1), false)
	now := time.Now()

	testCases := []struct {
		name        string
		poNumber    string
		supplierID  SupplierID
		orderRef    string
		items       []POItem
		expectError string
	}{
		{"empty po number", "", "SUP-1", "1001", []POItem{*item}, "po number cannot be empty"},
		{"empty supplier", "PO-1001-1", "", "1001", []POItem{*item}, "supplier id cannot be empty"},
		{"empty order reference", "PO-1001-1", "SUP-1", "", []POItem{*item}, "order reference cannot be empty"},
		{"no items", "PO-1001-1", "SUP-1", "1001", nil, "purchase order PO-1001-1 must have at least one item"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPurchaseOrder(tc.poNumber, tc.supplierID, "", tc.orderRef, tc.items, Address{}, now, now)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestPurchaseOrder_StatusTransitions(t *testing.T) {
	item, _ := NewPOItem("BOLT_M12", "Bolt", "", 1, decimal.NewFromInt(1), false)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	po, err := NewPurchaseOrder("PO-1001-1", "SUP-1", "", "1001", []POItem{*item}, Address{}, now, now)
	if err != nil {
		t.Fatalf("Expected valid purchase order: %v", err)
	}

	if err := po.MarkSent(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("Expected sending a pending PO to fail, got %v", err)
	}
	if err := po.Approve("", now); err == nil {
		t.Error("Expected approval without approver to fail")
	}
	if err := po.Approve("buyer@example.com", now); err != nil {
		t.Fatalf("Expected approval to succeed: %v", err)
	}
	if po.ApprovedBy != "buyer@example.com" || po.ApprovedAt == nil || !po.ApprovedAt.Equal(now) {
		t.Errorf("Expected approval to be recorded, got %q at %v", po.ApprovedBy, po.ApprovedAt)
	}
	if err := po.Approve("someone", now); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("Expected double approval to fail, got %v", err)
	}
	if err := po.MarkSent(); err != nil {
		t.Fatalf("Expected send to succeed: %v", err)
	}
	if err := po.Complete(); err != nil {
		t.Fatalf("Expected completion to succeed: %v", err)
	}
	if po.Status != Completed {
		t.Errorf("Expected status completed, got %s", po.Status)
	}

	if _, err := ParsePOStatus("approved"); err != nil {
		t.Errorf("Expected approved to parse: %v", err)
	}
	if _, err := ParsePOStatus("cancelled"); err == nil {
		t.Error("Expected unknown status to fail parsing")
	}
}
