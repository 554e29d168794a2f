package dto

import (
	"time"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// ReorderFlag is one supplier link that needs replenishment
type ReorderFlag struct {
	SupplierID    entities.SupplierID `json:"supplier_id"`
	SupplierName  string              `json:"supplier_name"`
	ProductID     entities.ProductID  `json:"product_id"`
	StockLevel    entities.Quantity   `json:"stock_level"`
	ReorderAmount entities.Quantity   `json:"reorder_amount"`
}

// ReorderReport summarizes one sweep across the supplier catalog
type ReorderReport struct {
	CheckedAt time.Time     `json:"checked_at"`
	Checked   int           `json:"checked"`
	Flags     []ReorderFlag `json:"flags"`
}
