package allocation

import "github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"

// ReorderDecision tells whether a supplier link should be replenished
type ReorderDecision struct {
	NeedsReorder  bool              `json:"needs_reorder"`
	ReorderAmount entities.Quantity `json:"reorder_amount"`
}

// ReorderMonitor flags supplier links whose stock fell to the reorder point
type ReorderMonitor struct {
	ReorderPoint    int
	ReorderQuantity int
}

// NewReorderMonitor creates a monitor with the given threshold and suggested amount
func NewReorderMonitor(reorderPoint, reorderQuantity int) *ReorderMonitor {
	return &ReorderMonitor{
		ReorderPoint:    reorderPoint,
		ReorderQuantity: reorderQuantity,
	}
}

// CheckReorder evaluates a single link against an explicit point and quantity
func CheckReorder(link *entities.SupplierLink, reorderPoint, reorderQuantity int) ReorderDecision {
	return NewReorderMonitor(reorderPoint, reorderQuantity).Check(link)
}

// Check evaluates the link; a nil link never needs reordering
func (m *ReorderMonitor) Check(link *entities.SupplierLink) ReorderDecision {
	if link == nil {
		return ReorderDecision{}
	}
	if link.StockLevel <= entities.Quantity(m.ReorderPoint) {
		return ReorderDecision{
			NeedsReorder:  true,
			ReorderAmount: entities.Quantity(m.ReorderQuantity),
		}
	}
	return ReorderDecision{}
}
