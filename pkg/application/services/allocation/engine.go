package allocation

import (
	"sort"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// SelectionOptions tunes single-source supplier selection
type SelectionOptions struct {
	PrioritizeStock    bool
	PrioritizeLeadTime bool
	MinStockThreshold  entities.Quantity
}

// DefaultSelectionOptions prefers in-stock suppliers, then the shortest lead time
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		PrioritizeStock:    true,
		PrioritizeLeadTime: true,
		MinStockThreshold:  0,
	}
}

// sortByPriority returns a priority-ordered copy; equal priorities keep catalog order
func sortByPriority(suppliers []*entities.SupplierLink) []*entities.SupplierLink {
	sorted := make([]*entities.SupplierLink, 0, len(suppliers))
	for _, s := range suppliers {
		if s != nil {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}

// DetermineSupplier selects exactly one supplier for a line item without splitting.
// Returns nil only when no suppliers are provided.
func DetermineSupplier(
	suppliers []*entities.SupplierLink,
	quantity entities.Quantity,
	opts SelectionOptions,
) *entities.SupplierLink {
	sorted := sortByPriority(suppliers)
	if len(sorted) == 0 {
		return nil
	}

	// Highest-priority supplier that can cover the whole quantity
	if opts.PrioritizeStock {
		for _, s := range sorted {
			if s.StockLevel >= quantity {
				return s
			}
		}
	}

	var withStock []*entities.SupplierLink
	for _, s := range sorted {
		if s.StockLevel > opts.MinStockThreshold {
			withStock = append(withStock, s)
		}
	}

	if len(withStock) > 0 {
		if !opts.PrioritizeLeadTime {
			return withStock[0]
		}
		best := withStock[0]
		for _, s := range withStock[1:] {
			// strict comparison keeps the priority order on ties
			if s.LeadTimeDays < best.LeadTimeDays {
				best = s
			}
		}
		return best
	}

	// Nobody has stock: implicit backorder against the preferred supplier
	return sorted[0]
}

// AllocateToSupplier places a whole line on one supplier: whatever its stock
// covers, plus a backorder entry for the rest. A nil supplier or quantity <= 0
// gives an empty result.
func AllocateToSupplier(supplier *entities.SupplierLink, quantity entities.Quantity) []entities.AllocationEntry {
	if supplier == nil || quantity <= 0 {
		return []entities.AllocationEntry{}
	}

	entry := entities.AllocationEntry{
		SupplierID:   supplier.SupplierID,
		SupplierName: supplier.SupplierName,
		ProductID:    supplier.ProductID,
		Price:        supplier.Price,
	}

	allocation := make([]entities.AllocationEntry, 0, 2)
	inStock := quantity
	if inStock > supplier.StockLevel {
		inStock = supplier.StockLevel
	}
	if inStock > 0 {
		filled := entry
		filled.Quantity = inStock
		allocation = append(allocation, filled)
	}
	if remaining := quantity - max(inStock, 0); remaining > 0 {
		backorder := entry
		backorder.Quantity = remaining
		backorder.IsBackorder = true
		allocation = append(allocation, backorder)
	}
	return allocation
}

// AllocateAcrossSuppliers splits quantity across suppliers in priority order.
// Stock is read but never mutated; committing the result is the caller's job.
// Any quantity left once every supplier is exhausted becomes a single backorder
// entry on the highest-priority supplier.
func AllocateAcrossSuppliers(suppliers []*entities.SupplierLink, quantity entities.Quantity) []entities.AllocationEntry {
	sorted := sortByPriority(suppliers)
	if len(sorted) == 0 || quantity <= 0 {
		return []entities.AllocationEntry{}
	}

	allocation := make([]entities.AllocationEntry, 0, len(sorted)+1)
	remaining := quantity

	for _, s := range sorted {
		if remaining <= 0 {
			break
		}
		if s.StockLevel <= 0 {
			continue
		}

		allocQty := remaining
		if allocQty > s.StockLevel {
			allocQty = s.StockLevel
		}

		allocation = append(allocation, entities.AllocationEntry{
			SupplierID:   s.SupplierID,
			SupplierName: s.SupplierName,
			ProductID:    s.ProductID,
			Quantity:     allocQty,
			Price:        s.Price,
			IsBackorder:  false,
		})
		remaining -= allocQty
	}

	if remaining > 0 {
		primary := sorted[0]
		allocation = append(allocation, entities.AllocationEntry{
			SupplierID:   primary.SupplierID,
			SupplierName: primary.SupplierName,
			ProductID:    primary.ProductID,
			Quantity:     remaining,
			Price:        primary.Price,
			IsBackorder:  true,
		})
	}

	return allocation
}
