package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/dto"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/events"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/metrics"
)

// ReorderSweep checks every supplier link in the catalog against the reorder point
type ReorderSweep struct {
	catalog repositories.SupplierCatalog
	monitor *allocation.ReorderMonitor
	events  events.Publisher
	metrics *metrics.Recorder
	logger  logrus.FieldLogger
	clock   func() time.Time
}

// NewReorderSweep creates a sweep using the policy's reorder settings.
// Publisher and recorder may be nil.
func NewReorderSweep(
	catalog repositories.SupplierCatalog,
	policy allocation.Policy,
	publisher events.Publisher,
	recorder *metrics.Recorder,
	logger logrus.FieldLogger,
) *ReorderSweep {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ReorderSweep{
		catalog: catalog,
		monitor: policy.ReorderMonitor(),
		events:  publisher,
		metrics: recorder,
		logger:  logger,
		clock:   time.Now,
	}
}

// Run performs one sweep and reports every link that needs replenishment
func (s *ReorderSweep) Run(ctx context.Context) (*dto.ReorderReport, error) {
	links, err := s.catalog.GetAllSupplierLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read supplier catalog: %w", err)
	}

	report := &dto.ReorderReport{
		CheckedAt: s.clock().UTC(),
		Checked:   len(links),
		Flags:     []dto.ReorderFlag{},
	}

	for _, link := range links {
		decision := s.monitor.Check(link)
		if !decision.NeedsReorder {
			continue
		}

		report.Flags = append(report.Flags, dto.ReorderFlag{
			SupplierID:    link.SupplierID,
			SupplierName:  link.SupplierName,
			ProductID:     link.ProductID,
			StockLevel:    link.StockLevel,
			ReorderAmount: decision.ReorderAmount,
		})

		if s.metrics != nil {
			s.metrics.RecordReorderFlag()
		}
		if s.events != nil {
			if err := s.events.AppendEvent(string(link.SupplierID), events.NewReorderNeededEvent(*link, decision.ReorderAmount)); err != nil {
				s.logger.WithError(err).Error("failed to publish reorder event")
			}
		}
	}

	s.logger.WithFields(logrus.Fields{
		"checked": report.Checked,
		"flagged": len(report.Flags),
	}).Info("reorder sweep complete")

	return report, nil
}
