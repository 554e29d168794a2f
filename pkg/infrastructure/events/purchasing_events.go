package events

import (
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

const (
	PurchaseOrderCreatedEvent = "purchase_order.created"

	StockDecrementedEvent     = "stock.decremented"
	StockDecrementFailedEvent = "stock.decrement_failed"

	SupplierNotFoundEvent = "supplier.not_found"
	InvalidQuantityEvent  = "line.invalid_quantity"
	ReorderNeededEvent    = "reorder.needed"
)

// PurchasingEventTypes lists every event the purchasing services emit
var PurchasingEventTypes = []string{
	PurchaseOrderCreatedEvent,
	StockDecrementedEvent,
	StockDecrementFailedEvent,
	SupplierNotFoundEvent,
	InvalidQuantityEvent,
	ReorderNeededEvent,
}

type PurchaseOrderCreated struct {
	PurchaseOrder entities.PurchaseOrder `json:"purchase_order"`
}

type StockDecremented struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	ProductID  entities.ProductID  `json:"product_id"`
	Quantity   entities.Quantity   `json:"quantity"`
	Order      string              `json:"order_reference"`
}

type StockDecrementFailed struct {
	SupplierID entities.SupplierID `json:"supplier_id"`
	ProductID  entities.ProductID  `json:"product_id"`
	Quantity   entities.Quantity   `json:"quantity"`
	Order      string              `json:"order_reference"`
	Reason     string              `json:"reason"`
}

type LineSkipped struct {
	Warning entities.Warning `json:"warning"`
}

type ReorderNeeded struct {
	SupplierID    entities.SupplierID `json:"supplier_id"`
	ProductID     entities.ProductID  `json:"product_id"`
	StockLevel    entities.Quantity   `json:"stock_level"`
	ReorderAmount entities.Quantity   `json:"reorder_amount"`
}

func NewPurchaseOrderCreatedEvent(po entities.PurchaseOrder) Event {
	return NewEvent(PurchaseOrderCreatedEvent, po.OrderReference, PurchaseOrderCreated{PurchaseOrder: po})
}

func NewStockDecrementedEvent(
	orderReference string,
	entry entities.AllocationEntry,
) Event {
	return NewEvent(StockDecrementedEvent, string(entry.SupplierID), StockDecremented{
		SupplierID: entry.SupplierID,
		ProductID:  entry.ProductID,
		Quantity:   entry.Quantity,
		Order:      orderReference,
	})
}

func NewStockDecrementFailedEvent(
	orderReference string,
	entry entities.AllocationEntry,
	reason error,
) Event {
	return NewEvent(StockDecrementFailedEvent, string(entry.SupplierID), StockDecrementFailed{
		SupplierID: entry.SupplierID,
		ProductID:  entry.ProductID,
		Quantity:   entry.Quantity,
		Order:      orderReference,
		Reason:     reason.Error(),
	})
}

// NewLineSkippedEvent maps a warning onto its event type
func NewLineSkippedEvent(warning entities.Warning) Event {
	eventType := SupplierNotFoundEvent
	if warning.Kind == entities.InvalidQuantity {
		eventType = InvalidQuantityEvent
	}
	return NewEvent(eventType, warning.OrderReference, LineSkipped{Warning: warning})
}

func NewReorderNeededEvent(link entities.SupplierLink, amount entities.Quantity) Event {
	return NewEvent(ReorderNeededEvent, string(link.SupplierID), ReorderNeeded{
		SupplierID:    link.SupplierID,
		ProductID:     link.ProductID,
		StockLevel:    link.StockLevel,
		ReorderAmount: amount,
	})
}
