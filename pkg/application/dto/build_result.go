package dto

import (
	"time"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// LineAllocation records how one line item was split across suppliers
type LineAllocation struct {
	LineItem entities.OrderLineItem       `json:"line_item"`
	Entries  []entities.AllocationEntry   `json:"entries"`
	LeadTime *allocation.LeadTimeEstimate `json:"lead_time,omitempty"`
}

// BuildResult contains the complete output of building POs for one sales order
type BuildResult struct {
	OrderReference string                    `json:"order_reference"`
	PurchaseOrders []*entities.PurchaseOrder `json:"purchase_orders"`
	Lines          []LineAllocation          `json:"lines"`
	Warnings       []entities.Warning        `json:"warnings"`
	BuildTime      time.Duration             `json:"build_time"`
}

// WarningsOfKind filters the warnings by kind
func (r *BuildResult) WarningsOfKind(kind entities.WarningKind) []entities.Warning {
	var matching []entities.Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			matching = append(matching, w)
		}
	}
	return matching
}

// BatchResult holds one BuildResult per processed order, in input order
type BatchResult struct {
	Results []*BuildResult `json:"results"`
}

// PurchaseOrders flattens every generated purchase order across the batch
func (b *BatchResult) PurchaseOrders() []*entities.PurchaseOrder {
	var orders []*entities.PurchaseOrder
	for _, r := range b.Results {
		orders = append(orders, r.PurchaseOrders...)
	}
	return orders
}

// Warnings flattens every warning across the batch
func (b *BatchResult) Warnings() []entities.Warning {
	var warnings []entities.Warning
	for _, r := range b.Results {
		warnings = append(warnings, r.Warnings...)
	}
	return warnings
}
