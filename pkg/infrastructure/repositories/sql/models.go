package sql

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

type supplierLinkRecord struct {
	ID           uint            `gorm:"primaryKey"`
	SupplierID   string          `gorm:"size:64;not null;uniqueIndex:idx_supplier_product"`
	SupplierName string          `gorm:"size:255"`
	ProductID    string          `gorm:"size:128;not null;uniqueIndex:idx_supplier_product;index"`
	Priority     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	StockLevel   int64           `gorm:"not null"`
	LeadTimeDays int             `gorm:"not null"`
	MinimumOrder int64           `gorm:"not null;default:1"`
	UpdatedAt    time.Time
}

func (supplierLinkRecord) TableName() string { return "supplier_links" }

func newSupplierLinkRecord(link *entities.SupplierLink) supplierLinkRecord {
	return supplierLinkRecord{
		SupplierID:   string(link.SupplierID),
		SupplierName: link.SupplierName,
		ProductID:    string(link.ProductID),
		Priority:     link.Priority,
		Price:        link.Price,
		StockLevel:   int64(link.StockLevel),
		LeadTimeDays: link.LeadTimeDays,
		MinimumOrder: int64(link.MinimumOrder),
	}
}

func (r supplierLinkRecord) toEntity() *entities.SupplierLink {
	return &entities.SupplierLink{
		SupplierID:   entities.SupplierID(r.SupplierID),
		SupplierName: r.SupplierName,
		ProductID:    entities.ProductID(r.ProductID),
		Priority:     r.Priority,
		Price:        r.Price,
		StockLevel:   entities.Quantity(r.StockLevel),
		LeadTimeDays: r.LeadTimeDays,
		MinimumOrder: entities.Quantity(r.MinimumOrder),
	}
}

type purchaseOrderRecord struct {
	ID               string           `gorm:"primaryKey;size:36"`
	PONumber         string           `gorm:"size:191;not null;uniqueIndex"`
	SupplierID       string           `gorm:"size:64;not null"`
	SupplierName     string           `gorm:"size:255"`
	OrderReference   string           `gorm:"size:128;not null;index"`
	Status           string           `gorm:"size:32;not null"`
	ShippingAddress  entities.Address `gorm:"embedded;embeddedPrefix:ship_"`
	Subtotal         decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	Total            decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	RequiredBy       time.Time
	ApprovalRequired bool
	ApprovedBy       string `gorm:"size:128"`
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	Items            []purchaseOrderItemRecord `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

func (purchaseOrderRecord) TableName() string { return "purchase_orders" }

type purchaseOrderItemRecord struct {
	ID              uint   `gorm:"primaryKey"`
	PurchaseOrderID string `gorm:"size:36;not null;index"`
	Position        int    `gorm:"not null"`
	ProductID       string `gorm:"size:128;not null"`
	Title           string `gorm:"size:255"`
	VariantID       string `gorm:"size:128"`
	Quantity        int64
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	IsBackorder     bool
}

func (purchaseOrderItemRecord) TableName() string { return "purchase_order_items" }

func newPurchaseOrderRecord(po *entities.PurchaseOrder) purchaseOrderRecord {
	record := purchaseOrderRecord{
		ID:               po.ID.String(),
		PONumber:         po.PONumber,
		SupplierID:       string(po.SupplierID),
		SupplierName:     po.SupplierName,
		OrderReference:   po.OrderReference,
		Status:           string(po.Status),
		ShippingAddress:  po.ShippingAddress,
		Subtotal:         po.Subtotal,
		Total:            po.Total,
		RequiredBy:       po.RequiredBy,
		ApprovalRequired: po.ApprovalRequired,
		ApprovedBy:       po.ApprovedBy,
		ApprovedAt:       po.ApprovedAt,
		CreatedAt:        po.CreatedAt,
		Items:            make([]purchaseOrderItemRecord, len(po.Items)),
	}
	for i, item := range po.Items {
		record.Items[i] = purchaseOrderItemRecord{
			PurchaseOrderID: record.ID,
			Position:        i,
			ProductID:       string(item.ProductID),
			Title:           item.Title,
			VariantID:       item.VariantID,
			Quantity:        int64(item.Quantity),
			Price:           item.Price,
			LineTotal:       item.LineTotal,
			IsBackorder:     item.IsBackorder,
		}
	}
	return record
}

func (r purchaseOrderRecord) toEntity() (*entities.PurchaseOrder, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	status, err := entities.ParsePOStatus(r.Status)
	if err != nil {
		return nil, err
	}

	po := &entities.PurchaseOrder{
		ID:               id,
		PONumber:         r.PONumber,
		SupplierID:       entities.SupplierID(r.SupplierID),
		SupplierName:     r.SupplierName,
		OrderReference:   r.OrderReference,
		Status:           status,
		ShippingAddress:  r.ShippingAddress,
		Subtotal:         r.Subtotal,
		Total:            r.Total,
		RequiredBy:       r.RequiredBy.UTC(),
		ApprovalRequired: r.ApprovalRequired,
		ApprovedBy:       r.ApprovedBy,
		ApprovedAt:       r.ApprovedAt,
		CreatedAt:        r.CreatedAt.UTC(),
		Items:            make([]entities.POItem, len(r.Items)),
	}
	for i, item := range r.Items {
		po.Items[i] = entities.POItem{
			ProductID:   entities.ProductID(item.ProductID),
			Title:       item.Title,
			VariantID:   item.VariantID,
			Quantity:    entities.Quantity(item.Quantity),
			Price:       item.Price,
			LineTotal:   item.LineTotal,
			IsBackorder: item.IsBackorder,
		}
	}
	return po, nil
}
