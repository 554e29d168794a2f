package repositories

import (
	"context"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// OrderSource provides the sales orders that trigger purchasing
type OrderSource interface {
	GetOrders(ctx context.Context) ([]*entities.SalesOrder, error)
}
