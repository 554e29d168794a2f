package repositories

import (
	"context"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// PurchaseOrderRepository is the persistence sink for generated purchase orders
type PurchaseOrderRepository interface {
	// SavePurchaseOrders stores the orders, replacing any with the same PO number
	SavePurchaseOrders(ctx context.Context, orders []*entities.PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, poNumber string) (*entities.PurchaseOrder, error)
	GetPurchaseOrdersByOrder(ctx context.Context, orderReference string) ([]*entities.PurchaseOrder, error)
}
