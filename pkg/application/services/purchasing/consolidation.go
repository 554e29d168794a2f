package purchasing

import (
	"fmt"
	"time"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// supplierGroup collects every PO line one supplier receives for an order
type supplierGroup struct {
	supplierID   entities.SupplierID
	supplierName string
	items        []entities.POItem
	maxLeadTime  int
}

// consolidate groups committed entries by supplier, in order of first appearance
func (b *PurchaseOrderBuilder) consolidate(order *entities.SalesOrder, committed []committedEntry) ([]*entities.PurchaseOrder, error) {
	var groups []*supplierGroup
	bySupplier := make(map[entities.SupplierID]*supplierGroup)

	for _, c := range committed {
		group, exists := bySupplier[c.entry.SupplierID]
		if !exists {
			group = &supplierGroup{
				supplierID:   c.entry.SupplierID,
				supplierName: c.entry.SupplierName,
			}
			bySupplier[c.entry.SupplierID] = group
			groups = append(groups, group)
		}

		item, err := entities.NewPOItem(
			c.line.ProductID,
			c.line.Title,
			c.line.VariantID,
			c.entry.Quantity,
			c.entry.Price,
			c.entry.IsBackorder,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid PO item for supplier %s: %w", c.entry.SupplierID, err)
		}
		group.items = append(group.items, *item)

		if c.leadTimeDays > group.maxLeadTime {
			group.maxLeadTime = c.leadTimeDays
		}
	}

	supplierIDs := make([]entities.SupplierID, len(groups))
	for i, g := range groups {
		supplierIDs[i] = g.supplierID
	}
	numbers := PONumbers(order.Reference, supplierIDs)

	now := b.config.Clock()
	today := startOfDay(now)

	purchaseOrders := make([]*entities.PurchaseOrder, 0, len(groups))
	for _, g := range groups {
		po, err := entities.NewPurchaseOrder(
			numbers[g.supplierID],
			g.supplierID,
			g.supplierName,
			order.Reference,
			g.items,
			order.ShippingAddress,
			today.AddDate(0, 0, g.maxLeadTime),
			now.UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create purchase order for supplier %s: %w", g.supplierID, err)
		}
		purchaseOrders = append(purchaseOrders, po)
	}

	return purchaseOrders, nil
}

// PONumbers assigns "PO-{orderReference}-{last4(supplierID)}" to each supplier.
// Suppliers whose last four characters collide within the order fall back to
// their full id so numbers stay unique.
func PONumbers(orderReference string, supplierIDs []entities.SupplierID) map[entities.SupplierID]string {
	suffixCount := make(map[string]int, len(supplierIDs))
	for _, id := range supplierIDs {
		suffixCount[lastN(string(id), 4)]++
	}

	numbers := make(map[entities.SupplierID]string, len(supplierIDs))
	for _, id := range supplierIDs {
		suffix := lastN(string(id), 4)
		if suffixCount[suffix] > 1 {
			suffix = string(id)
		}
		numbers[id] = fmt.Sprintf("PO-%s-%s", orderReference, suffix)
	}
	return numbers
}

func lastN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
