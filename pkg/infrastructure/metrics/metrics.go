package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// Recorder holds the purchasing counters on its own registry
type Recorder struct {
	registry *prometheus.Registry

	purchaseOrdersBuilt prometheus.Counter
	allocationEntries   *prometheus.CounterVec
	warnings            *prometheus.CounterVec
	stockMutations      *prometheus.CounterVec
	reorderFlags        prometheus.Counter
	orderBuildDuration  prometheus.Histogram
}

// NewRecorder creates a recorder with every collector registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		purchaseOrdersBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poengine_purchase_orders_built_total",
			Help: "Total number of purchase orders generated.",
		}),
		allocationEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poengine_allocation_entries_total",
			Help: "Allocation entries produced, split by backorder flag.",
		}, []string{"backorder"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poengine_warnings_total",
			Help: "Non-fatal warnings raised while building purchase orders.",
		}, []string{"kind"}),
		stockMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poengine_stock_mutations_total",
			Help: "Stock decrements attempted, split by result.",
		}, []string{"result"}),
		reorderFlags: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poengine_reorder_flags_total",
			Help: "Supplier links flagged for replenishment.",
		}),
		orderBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "poengine_order_build_duration_seconds",
			Help:    "Time spent building purchase orders for one sales order.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	r.registry.MustRegister(
		r.purchaseOrdersBuilt,
		r.allocationEntries,
		r.warnings,
		r.stockMutations,
		r.reorderFlags,
		r.orderBuildDuration,
	)
	return r
}

// Registry exposes the underlying registry for scraping or tests
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordPurchaseOrders(n int) {
	r.purchaseOrdersBuilt.Add(float64(n))
}

func (r *Recorder) RecordAllocation(entry entities.AllocationEntry) {
	label := "false"
	if entry.IsBackorder {
		label = "true"
	}
	r.allocationEntries.WithLabelValues(label).Inc()
}

func (r *Recorder) RecordWarning(kind entities.WarningKind) {
	r.warnings.WithLabelValues(kind.String()).Inc()
}

func (r *Recorder) RecordStockMutation(err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	r.stockMutations.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordReorderFlag() {
	r.reorderFlags.Inc()
}

func (r *Recorder) ObserveOrderBuild(d time.Duration) {
	r.orderBuildDuration.Observe(d.Seconds())
}
