package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

// PurchaseOrderRepository provides in-memory purchase order storage
type PurchaseOrderRepository struct {
	mu       sync.RWMutex
	orders   []*entities.PurchaseOrder
	byNumber map[string]int
}

// NewPurchaseOrderRepository creates a new in-memory purchase order repository
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{
		orders:   []*entities.PurchaseOrder{},
		byNumber: make(map[string]int),
	}
}

// Verify interface compliance
var _ repositories.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// SavePurchaseOrders stores copies of the orders keyed by PO number
func (r *PurchaseOrderRepository) SavePurchaseOrders(_ context.Context, orders []*entities.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, po := range orders {
		stored := clonePurchaseOrder(po)
		if index, exists := r.byNumber[po.PONumber]; exists {
			r.orders[index] = stored
			continue
		}
		r.byNumber[po.PONumber] = len(r.orders)
		r.orders = append(r.orders, stored)
	}
	return nil
}

// GetPurchaseOrder returns the purchase order with the given number
func (r *PurchaseOrderRepository) GetPurchaseOrder(_ context.Context, poNumber string) (*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.byNumber[poNumber]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrPurchaseOrderNotFound, poNumber)
	}
	return clonePurchaseOrder(r.orders[index]), nil
}

// GetPurchaseOrdersByOrder returns every purchase order generated for a sales order
func (r *PurchaseOrderRepository) GetPurchaseOrdersByOrder(_ context.Context, orderReference string) ([]*entities.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entities.PurchaseOrder
	for _, po := range r.orders {
		if po.OrderReference == orderReference {
			orders = append(orders, clonePurchaseOrder(po))
		}
	}
	return orders, nil
}

// Count returns the number of stored purchase orders
func (r *PurchaseOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func clonePurchaseOrder(po *entities.PurchaseOrder) *entities.PurchaseOrder {
	clone := *po
	clone.Items = append([]entities.POItem(nil), po.Items...)
	if po.ApprovedAt != nil {
		approvedAt := *po.ApprovedAt
		clone.ApprovedAt = &approvedAt
	}
	return &clone
}
