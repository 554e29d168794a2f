package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidStatusTransition is returned when the approval workflow moves a PO out of order
var ErrInvalidStatusTransition = errors.New("invalid purchase order status transition")

// POStatus represents where a purchase order sits in the approval workflow
type POStatus string

const (
	PendingApproval POStatus = "pending_approval"
	Approved        POStatus = "approved"
	Sent            POStatus = "sent"
	Completed       POStatus = "completed"
)

// String method for POStatus enum
func (s POStatus) String() string {
	return string(s)
}

// ParsePOStatus converts a stored status back into a POStatus
func ParsePOStatus(s string) (POStatus, error) {
	switch POStatus(s) {
	case PendingApproval, Approved, Sent, Completed:
		return POStatus(s), nil
	default:
		return "", fmt.Errorf("unknown purchase order status: %q", s)
	}
}

// POItem is one line on a purchase order
type POItem struct {
	ProductID   ProductID       `json:"product_id"`
	Title       string          `json:"title"`
	VariantID   string          `json:"variant_id,omitempty"`
	Quantity    Quantity        `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	IsBackorder bool            `json:"is_backorder"`
}

// NewPOItem creates a validated POItem with its line total computed
func NewPOItem(productID ProductID, title, variantID string, quantity Quantity, price decimal.Decimal, isBackorder bool) (*POItem, error) {
	if string(productID) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidQuantity, quantity)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}

	return &POItem{
		ProductID:   productID,
		Title:       title,
		VariantID:   variantID,
		Quantity:    quantity,
		Price:       price,
		LineTotal:   price.Mul(decimal.NewFromInt(int64(quantity))),
		IsBackorder: isBackorder,
	}, nil
}

// PurchaseOrder is the consolidated request sent to one supplier for one sales order
type PurchaseOrder struct {
	ID               uuid.UUID       `json:"id"`
	PONumber         string          `json:"po_number"`
	SupplierID       SupplierID      `json:"supplier_id"`
	SupplierName     string          `json:"supplier_name"`
	OrderReference   string          `json:"order_reference"`
	Status           POStatus        `json:"status"`
	Items            []POItem        `json:"items"`
	ShippingAddress  Address         `json:"shipping_address"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Total            decimal.Decimal `json:"total"`
	RequiredBy       time.Time       `json:"required_by"`
	ApprovalRequired bool            `json:"approval_required"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewPurchaseOrder creates a validated PurchaseOrder in the pending_approval state.
// Subtotal and total are derived from the items; tax and shipping are not added here.
func NewPurchaseOrder(
	poNumber string,
	supplierID SupplierID,
	supplierName string,
	orderReference string,
	items []POItem,
	shippingAddress Address,
	requiredBy time.Time,
	createdAt time.Time,
) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, fmt.Errorf("po number cannot be empty")
	}
	if string(supplierID) == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if orderReference == "" {
		return nil, fmt.Errorf("order reference cannot be empty")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("purchase order %s must have at least one item", poNumber)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	return &PurchaseOrder{
		ID:               uuid.New(),
		PONumber:         poNumber,
		SupplierID:       supplierID,
		SupplierName:     supplierName,
		OrderReference:   orderReference,
		Status:           PendingApproval,
		Items:            items,
		ShippingAddress:  shippingAddress,
		Subtotal:         subtotal,
		Total:            subtotal,
		RequiredBy:       requiredBy,
		ApprovalRequired: true,
		CreatedAt:        createdAt,
	}, nil
}

// TotalQuantity returns the number of units across all items
func (po *PurchaseOrder) TotalQuantity() Quantity {
	var total Quantity
	for _, item := range po.Items {
		total += item.Quantity
	}
	return total
}

// HasBackorder reports whether any item on the PO is a backorder
func (po *PurchaseOrder) HasBackorder() bool {
	for _, item := range po.Items {
		if item.IsBackorder {
			return true
		}
	}
	return false
}

// Approve moves a pending PO to approved
func (po *PurchaseOrder) Approve(approvedBy string, at time.Time) error {
	if approvedBy == "" {
		return fmt.Errorf("approver cannot be empty")
	}
	if err := po.transition(PendingApproval, Approved); err != nil {
		return err
	}
	po.ApprovedBy = approvedBy
	po.ApprovedAt = &at
	return nil
}

// MarkSent records that an approved PO was sent to the supplier
func (po *PurchaseOrder) MarkSent() error {
	return po.transition(Approved, Sent)
}

// Complete closes a PO the supplier has fulfilled
func (po *PurchaseOrder) Complete() error {
	return po.transition(Sent, Completed)
}

func (po *PurchaseOrder) transition(from, to POStatus) error {
	if po.Status != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, po.Status, to)
	}
	po.Status = to
	return nil
}
