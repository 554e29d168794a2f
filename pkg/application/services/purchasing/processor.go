package purchasing

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/dto"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

// OrderProcessor builds purchase orders for many sales orders concurrently
// and hands them to the persistence sink.
type OrderProcessor struct {
	builder     *PurchaseOrderBuilder
	repo        repositories.PurchaseOrderRepository
	concurrency int
	logger      logrus.FieldLogger
}

// NewOrderProcessor creates a processor. A concurrency below 1 uses GOMAXPROCS;
// a nil repo skips persistence.
func NewOrderProcessor(
	builder *PurchaseOrderBuilder,
	repo repositories.PurchaseOrderRepository,
	concurrency int,
	logger logrus.FieldLogger,
) *OrderProcessor {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderProcessor{
		builder:     builder,
		repo:        repo,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessOrders builds and saves purchase orders for each order. Results keep
// the input order. A nil or malformed order rejects the batch before any work
// starts; after that the first persistence failure or context cancellation
// aborts it.
func (p *OrderProcessor) ProcessOrders(ctx context.Context, orders []*entities.SalesOrder) (*dto.BatchResult, error) {
	// the whole batch is checked before any order takes stock
	for i, order := range orders {
		if order == nil {
			return nil, fmt.Errorf("order %d is nil", i)
		}
		if err := order.Validate(); err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
	}

	results := make([]*dto.BuildResult, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			result, err := p.builder.BuildPurchaseOrders(gctx, order)
			if err != nil {
				return fmt.Errorf("failed to build purchase orders for %s: %w", order.Reference, err)
			}

			if p.repo != nil && len(result.PurchaseOrders) > 0 {
				if err := p.repo.SavePurchaseOrders(gctx, result.PurchaseOrders); err != nil {
					return fmt.Errorf("failed to save purchase orders for %s: %w", order.Reference, err)
				}
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &dto.BatchResult{Results: results}
	p.logger.WithFields(logrus.Fields{
		"orders":          len(orders),
		"purchase_orders": len(batch.PurchaseOrders()),
		"warnings":        len(batch.Warnings()),
	}).Info("processed order batch")

	return batch, nil
}
