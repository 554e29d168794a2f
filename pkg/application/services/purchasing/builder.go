package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/dto"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/events"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/locking"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/metrics"
)

// BuilderConfig holds the collaborators and tunables of a PurchaseOrderBuilder
type BuilderConfig struct {
	Policy allocation.Policy
	Logger logrus.FieldLogger
	// Events and Metrics are optional
	Events  events.Publisher
	Metrics *metrics.Recorder
	// Locker serializes lookup, allocation and stock commit per product
	Locker locking.Locker
	// Clock supplies "today" for required-by dates
	Clock func() time.Time
	// SingleSource, when set, sends each line to one supplier picked by
	// DetermineSupplier instead of splitting it across the catalog
	SingleSource *allocation.SelectionOptions
}

// DefaultBuilderConfig returns the standard policy with an in-process locker
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		Policy: allocation.DefaultPolicy(),
		Logger: logrus.StandardLogger(),
		Locker: locking.NewKeyedMutex(),
		Clock:  time.Now,
	}
}

// PurchaseOrderBuilder turns a sales order into one purchase order per supplier
type PurchaseOrderBuilder struct {
	catalog  repositories.SupplierCatalog
	mutator  repositories.StockMutator
	config   BuilderConfig
	leadTime *allocation.LeadTimeCalculator
}

// NewPurchaseOrderBuilder creates a builder with default configuration
func NewPurchaseOrderBuilder(catalog repositories.SupplierCatalog, mutator repositories.StockMutator) *PurchaseOrderBuilder {
	return NewPurchaseOrderBuilderWithConfig(catalog, mutator, DefaultBuilderConfig())
}

// NewPurchaseOrderBuilderWithConfig creates a builder; zero-valued config fields fall back to defaults
func NewPurchaseOrderBuilderWithConfig(
	catalog repositories.SupplierCatalog,
	mutator repositories.StockMutator,
	config BuilderConfig,
) *PurchaseOrderBuilder {
	defaults := DefaultBuilderConfig()
	if config.Policy == (allocation.Policy{}) {
		config.Policy = defaults.Policy
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	if config.Locker == nil {
		config.Locker = defaults.Locker
	}
	if config.Clock == nil {
		config.Clock = defaults.Clock
	}

	return &PurchaseOrderBuilder{
		catalog:  catalog,
		mutator:  mutator,
		config:   config,
		leadTime: config.Policy.LeadTimeCalculator(),
	}
}

// committedEntry is an allocation entry together with the lead time of its supplier
type committedEntry struct {
	line         entities.OrderLineItem
	entry        entities.AllocationEntry
	leadTimeDays int
}

// BuildPurchaseOrders allocates every line of the order, commits stock for
// non-backorder entries and consolidates the result into one PO per supplier.
// A malformed order is rejected before any stock is touched. After that,
// line-level problems become warnings and only context cancellation is
// returned as an error.
func (b *PurchaseOrderBuilder) BuildPurchaseOrders(ctx context.Context, order *entities.SalesOrder) (*dto.BuildResult, error) {
	if order == nil {
		return nil, fmt.Errorf("sales order cannot be nil")
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sales order: %w", err)
	}

	startTime := time.Now()
	logger := b.config.Logger.WithField("order_reference", order.Reference)

	result := &dto.BuildResult{
		OrderReference: order.Reference,
		PurchaseOrders: []*entities.PurchaseOrder{},
		Lines:          make([]dto.LineAllocation, 0, len(order.LineItems)),
		Warnings:       []entities.Warning{},
	}

	var committed []committedEntry

	// Lines are processed in order: a later line may hit stock an earlier line already took
	for _, line := range order.LineItems {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if line.Quantity <= 0 {
			b.warn(result, logger, entities.Warning{
				Kind:           entities.InvalidQuantity,
				OrderReference: order.Reference,
				ProductID:      line.ProductID,
				Message:        fmt.Sprintf("%s, got %d", entities.ErrInvalidQuantity, line.Quantity),
			})
			continue
		}

		entries, err := b.allocateLine(ctx, order.Reference, line, result, logger)
		if err != nil {
			return nil, err
		}
		committed = append(committed, entries...)
	}

	purchaseOrders, err := b.consolidate(order, committed)
	if err != nil {
		return nil, err
	}
	result.PurchaseOrders = purchaseOrders

	for _, po := range purchaseOrders {
		b.publish(logger, po.OrderReference, events.NewPurchaseOrderCreatedEvent(*po))
	}

	result.BuildTime = time.Since(startTime)
	if b.config.Metrics != nil {
		b.config.Metrics.RecordPurchaseOrders(len(purchaseOrders))
		b.config.Metrics.ObserveOrderBuild(result.BuildTime)
	}

	logger.WithFields(logrus.Fields{
		"purchase_orders": len(purchaseOrders),
		"warnings":        len(result.Warnings),
	}).Info("built purchase orders")

	return result, nil
}

// allocateLine runs lookup, allocation and stock commit for one line under the product lock
func (b *PurchaseOrderBuilder) allocateLine(
	ctx context.Context,
	orderReference string,
	line entities.OrderLineItem,
	result *dto.BuildResult,
	logger logrus.FieldLogger,
) ([]committedEntry, error) {
	lineLogger := logger.WithField("product_id", line.ProductID)

	unlock, err := b.config.Locker.Lock(ctx, locking.ProductKey(string(line.ProductID)))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// stock decrements are compare-and-swap, so an unlocked run cannot oversell
		lineLogger.WithError(err).Warn("product lock unavailable, continuing without it")
		unlock = func() {}
	}
	defer unlock()

	links, err := b.catalog.GetSupplierLinks(ctx, line.ProductID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		b.warn(result, lineLogger, entities.Warning{
			Kind:           entities.NoSupplierFound,
			OrderReference: orderReference,
			ProductID:      line.ProductID,
			Message:        fmt.Sprintf("supplier lookup failed: %v", err),
		})
		return nil, nil
	}
	if len(links) == 0 {
		b.warn(result, lineLogger, entities.Warning{
			Kind:           entities.NoSupplierFound,
			OrderReference: orderReference,
			ProductID:      line.ProductID,
			Message:        "no supplier links in catalog",
		})
		return nil, nil
	}

	var entries []entities.AllocationEntry
	if b.config.SingleSource != nil {
		chosen := allocation.DetermineSupplier(links, line.Quantity, *b.config.SingleSource)
		entries = allocation.AllocateToSupplier(chosen, line.Quantity)
	} else {
		entries = allocation.AllocateAcrossSuppliers(links, line.Quantity)
	}

	leadTimes := make(map[entities.SupplierID]int, len(links))
	for _, l := range links {
		if _, seen := leadTimes[l.SupplierID]; !seen {
			leadTimes[l.SupplierID] = l.LeadTimeDays
		}
	}

	committed := make([]committedEntry, 0, len(entries))
	for _, entry := range entries {
		if b.config.Metrics != nil {
			b.config.Metrics.RecordAllocation(entry)
		}
		if !entry.IsBackorder {
			b.commitStock(ctx, orderReference, entry, result, lineLogger)
		}
		committed = append(committed, committedEntry{
			line:         line,
			entry:        entry,
			leadTimeDays: leadTimes[entry.SupplierID],
		})
	}

	lineAllocation := dto.LineAllocation{LineItem: line, Entries: entries}
	if estimate, ok := b.leadTime.Calculate(entries, links); ok {
		lineAllocation.LeadTime = &estimate
	}
	result.Lines = append(result.Lines, lineAllocation)

	return committed, nil
}

// commitStock decrements stock for a non-backorder entry. A failure is
// reported but the entry stays on the PO as allocated.
func (b *PurchaseOrderBuilder) commitStock(
	ctx context.Context,
	orderReference string,
	entry entities.AllocationEntry,
	result *dto.BuildResult,
	logger logrus.FieldLogger,
) {
	err := b.mutator.DecrementStock(ctx, entry.SupplierID, entry.ProductID, entry.Quantity)
	if b.config.Metrics != nil {
		b.config.Metrics.RecordStockMutation(err)
	}

	if err != nil {
		b.warn(result, logger.WithField("supplier_id", entry.SupplierID), entities.Warning{
			Kind:           entities.StockMutationFailed,
			OrderReference: orderReference,
			ProductID:      entry.ProductID,
			SupplierID:     entry.SupplierID,
			Message:        fmt.Sprintf("decrement of %d failed: %v", entry.Quantity, err),
		})
		b.publish(logger, string(entry.SupplierID), events.NewStockDecrementFailedEvent(orderReference, entry, err))
		return
	}

	b.publish(logger, string(entry.SupplierID), events.NewStockDecrementedEvent(orderReference, entry))
}

func (b *PurchaseOrderBuilder) warn(result *dto.BuildResult, logger logrus.FieldLogger, warning entities.Warning) {
	result.Warnings = append(result.Warnings, warning)
	if b.config.Metrics != nil {
		b.config.Metrics.RecordWarning(warning.Kind)
	}

	logger.WithField("warning", warning.Kind.String()).Warn(warning.Message)

	if warning.Kind != entities.StockMutationFailed {
		b.publish(logger, warning.OrderReference, events.NewLineSkippedEvent(warning))
	}
}

func (b *PurchaseOrderBuilder) publish(logger logrus.FieldLogger, streamID string, event events.Event) {
	if b.config.Events == nil {
		return
	}
	if err := b.config.Events.AppendEvent(streamID, event); err != nil {
		logger.WithError(err).WithField("event_type", event.Type()).Error("failed to publish event")
	}
}
