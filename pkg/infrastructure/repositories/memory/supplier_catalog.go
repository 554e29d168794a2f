package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

type linkKey struct {
	supplierID entities.SupplierID
	productID  entities.ProductID
}

// SupplierCatalog provides in-memory supplier link storage with atomic stock decrements
type SupplierCatalog struct {
	mu        sync.RWMutex
	links     []entities.SupplierLink
	byKey     map[linkKey]int
	byProduct map[entities.ProductID][]int
}

// NewSupplierCatalog creates a new in-memory supplier catalog
func NewSupplierCatalog(expectedLinks int) *SupplierCatalog {
	return &SupplierCatalog{
		links:     make([]entities.SupplierLink, 0, expectedLinks),
		byKey:     make(map[linkKey]int, expectedLinks),
		byProduct: make(map[entities.ProductID][]int),
	}
}

// Verify interface compliance
var _ repositories.SupplierStore = (*SupplierCatalog)(nil)

// LoadSupplierLinks loads links into the catalog
func (c *SupplierCatalog) LoadSupplierLinks(_ context.Context, links []*entities.SupplierLink) error {
	for _, link := range links {
		if err := c.AddSupplierLink(*link); err != nil {
			return err
		}
	}
	return nil
}

// AddSupplierLink adds a link, replacing an existing one for the same supplier and product
func (c *SupplierCatalog) AddSupplierLink(link entities.SupplierLink) error {
	if link.SupplierID == "" || link.ProductID == "" {
		return fmt.Errorf("supplier link needs supplier and product ids, got %q/%q", link.SupplierID, link.ProductID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := linkKey{link.SupplierID, link.ProductID}
	if index, exists := c.byKey[key]; exists {
		c.links[index] = link
		return nil
	}

	c.byKey[key] = len(c.links)
	c.byProduct[link.ProductID] = append(c.byProduct[link.ProductID], len(c.links))
	c.links = append(c.links, link)
	return nil
}

// GetSupplierLinks returns copies of a product's links in insertion order
func (c *SupplierCatalog) GetSupplierLinks(_ context.Context, productID entities.ProductID) ([]*entities.SupplierLink, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	indexes := c.byProduct[productID]
	links := make([]*entities.SupplierLink, 0, len(indexes))
	for _, index := range indexes {
		link := c.links[index]
		links = append(links, &link)
	}
	return links, nil
}

// GetAllSupplierLinks returns copies of every link in insertion order
func (c *SupplierCatalog) GetAllSupplierLinks(_ context.Context) ([]*entities.SupplierLink, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	links := make([]*entities.SupplierLink, 0, len(c.links))
	for i := range c.links {
		link := c.links[i]
		links = append(links, &link)
	}
	return links, nil
}

// DecrementStock subtracts quantity only if the link still holds at least that much
func (c *SupplierCatalog) DecrementStock(
	_ context.Context,
	supplierID entities.SupplierID,
	productID entities.ProductID,
	quantity entities.Quantity,
) error {
	if quantity <= 0 {
		return fmt.Errorf("%w, got %d", entities.ErrInvalidQuantity, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	index, exists := c.byKey[linkKey{supplierID, productID}]
	if !exists {
		return fmt.Errorf("%w: supplier %s product %s", repositories.ErrSupplierLinkNotFound, supplierID, productID)
	}

	link := &c.links[index]
	if link.StockLevel < quantity {
		return fmt.Errorf("%w: supplier %s product %s has %d, wanted %d",
			repositories.ErrInsufficientStock, supplierID, productID, link.StockLevel, quantity)
	}
	link.StockLevel -= quantity
	return nil
}

// GetStockLevel returns the current stock for a supplier/product pair
func (c *SupplierCatalog) GetStockLevel(supplierID entities.SupplierID, productID entities.ProductID) (entities.Quantity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	index, exists := c.byKey[linkKey{supplierID, productID}]
	if !exists {
		return 0, fmt.Errorf("%w: supplier %s product %s", repositories.ErrSupplierLinkNotFound, supplierID, productID)
	}
	return c.links[index].StockLevel, nil
}
