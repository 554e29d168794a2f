package repositories

import (
	"context"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// SupplierCatalog provides access to product -> supplier links.
// Returned links are snapshots; callers may sort or read them freely.
type SupplierCatalog interface {
	// GetSupplierLinks returns the links for a product in catalog order.
	// An unknown product yields an empty slice, not an error.
	GetSupplierLinks(ctx context.Context, productID entities.ProductID) ([]*entities.SupplierLink, error)
	GetAllSupplierLinks(ctx context.Context) ([]*entities.SupplierLink, error)
	LoadSupplierLinks(ctx context.Context, links []*entities.SupplierLink) error
}

// StockMutator applies committed allocations to supplier stock.
type StockMutator interface {
	// DecrementStock atomically subtracts quantity when at least quantity is in stock.
	// It returns ErrInsufficientStock when the compare fails and ErrSupplierLinkNotFound
	// when the pair is unknown; stock is left untouched in both cases.
	DecrementStock(ctx context.Context, supplierID entities.SupplierID, productID entities.ProductID, quantity entities.Quantity) error
}

// SupplierStore is a catalog that also owns its stock counters
type SupplierStore interface {
	SupplierCatalog
	StockMutator
}
