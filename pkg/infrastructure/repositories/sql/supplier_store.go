package sql

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

// SupplierStore keeps the supplier catalog in the supplier_links table
type SupplierStore struct {
	db *gorm.DB
}

// NewSupplierStore creates a store on an opened, migrated database
func NewSupplierStore(db *gorm.DB) *SupplierStore {
	return &SupplierStore{db: db}
}

var _ repositories.SupplierStore = (*SupplierStore)(nil)

// LoadSupplierLinks upserts links keyed by supplier and product
func (s *SupplierStore) LoadSupplierLinks(ctx context.Context, links []*entities.SupplierLink) error {
	records := make([]supplierLinkRecord, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		records = append(records, newSupplierLinkRecord(link))
	}
	if len(records) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "supplier_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"supplier_name", "priority", "price", "stock_level", "lead_time_days", "minimum_order", "updated_at",
		}),
	}).CreateInBatches(records, 200).Error
	return errors.Wrap(err, "failed to load supplier links")
}

// GetSupplierLinks returns a product's links in catalog order
func (s *SupplierStore) GetSupplierLinks(ctx context.Context, productID entities.ProductID) ([]*entities.SupplierLink, error) {
	var records []supplierLinkRecord
	err := s.db.WithContext(ctx).
		Where("product_id = ?", string(productID)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query supplier links for %s", productID)
	}
	return toEntities(records), nil
}

// GetAllSupplierLinks returns every link in catalog order
func (s *SupplierStore) GetAllSupplierLinks(ctx context.Context) ([]*entities.SupplierLink, error) {
	var records []supplierLinkRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query supplier links")
	}
	return toEntities(records), nil
}

// DecrementStock subtracts quantity in a single conditional UPDATE so
// concurrent writers cannot take the same units twice.
func (s *SupplierStore) DecrementStock(
	ctx context.Context,
	supplierID entities.SupplierID,
	productID entities.ProductID,
	quantity entities.Quantity,
) error {
	if quantity <= 0 {
		return errors.Wrapf(entities.ErrInvalidQuantity, "decrement %s/%s by %d", supplierID, productID, quantity)
	}

	result := s.db.WithContext(ctx).
		Model(&supplierLinkRecord{}).
		Where("supplier_id = ? AND product_id = ? AND stock_level >= ?", string(supplierID), string(productID), int64(quantity)).
		Update("stock_level", gorm.Expr("stock_level - ?", int64(quantity)))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to decrement stock for %s/%s", supplierID, productID)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&supplierLinkRecord{}).
		Where("supplier_id = ? AND product_id = ?", string(supplierID), string(productID)).
		Count(&count).Error
	if err != nil {
		return errors.Wrapf(err, "failed to check supplier link %s/%s", supplierID, productID)
	}
	if count == 0 {
		return errors.Wrapf(repositories.ErrSupplierLinkNotFound, "%s/%s", supplierID, productID)
	}
	return errors.Wrapf(repositories.ErrInsufficientStock, "%s/%s needs %d", supplierID, productID, quantity)
}

func toEntities(records []supplierLinkRecord) []*entities.SupplierLink {
	links := make([]*entities.SupplierLink, len(records))
	for i, r := range records {
		links[i] = r.toEntity()
	}
	return links
}
