package sql

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

// PurchaseOrderRepository persists purchase orders and their items
type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

var _ repositories.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// SavePurchaseOrders writes all orders in one transaction, replacing any
// order that already has the same PO number.
func (r *PurchaseOrderRepository) SavePurchaseOrders(ctx context.Context, orders []*entities.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, po := range orders {
			if po == nil {
				continue
			}

			var existing []purchaseOrderRecord
			if err := tx.Where("po_number = ?", po.PONumber).Find(&existing).Error; err != nil {
				return errors.Wrapf(err, "failed to look up %s", po.PONumber)
			}
			for _, old := range existing {
				if err := tx.Where("purchase_order_id = ?", old.ID).Delete(&purchaseOrderItemRecord{}).Error; err != nil {
					return errors.Wrapf(err, "failed to replace items of %s", po.PONumber)
				}
				if err := tx.Delete(&old).Error; err != nil {
					return errors.Wrapf(err, "failed to replace %s", po.PONumber)
				}
			}

			record := newPurchaseOrderRecord(po)
			if err := tx.Create(&record).Error; err != nil {
				return errors.Wrapf(err, "failed to insert %s", po.PONumber)
			}
		}
		return nil
	})
	return err
}

// GetPurchaseOrder loads one order with its items
func (r *PurchaseOrderRepository) GetPurchaseOrder(ctx context.Context, poNumber string) (*entities.PurchaseOrder, error) {
	var record purchaseOrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("po_number = ?", poNumber).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(repositories.ErrPurchaseOrderNotFound, poNumber)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", poNumber)
	}

	po, err := record.toEntity()
	return po, errors.Wrapf(err, "corrupt purchase order %s", poNumber)
}

// GetPurchaseOrdersByOrder loads every PO generated for a sales order, by PO number
func (r *PurchaseOrderRepository) GetPurchaseOrdersByOrder(ctx context.Context, orderReference string) ([]*entities.PurchaseOrder, error) {
	var records []purchaseOrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("order_reference = ?", orderReference).
		Order("po_number").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load purchase orders for %s", orderReference)
	}

	orders := make([]*entities.PurchaseOrder, 0, len(records))
	for _, record := range records {
		po, err := record.toEntity()
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt purchase order %s", record.PONumber)
		}
		orders = append(orders, po)
	}
	return orders, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
