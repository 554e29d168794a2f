package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.RecordPurchaseOrders(2)
	r.RecordAllocation(entities.AllocationEntry{Quantity: 1})
	r.RecordAllocation(entities.AllocationEntry{Quantity: 1, IsBackorder: true})
	r.RecordAllocation(entities.AllocationEntry{Quantity: 1, IsBackorder: true})
	r.RecordWarning(entities.NoSupplierFound)
	r.RecordStockMutation(nil)
	r.RecordStockMutation(errors.New("insufficient stock"))
	r.RecordReorderFlag()
	r.ObserveOrderBuild(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.purchaseOrdersBuilt))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.allocationEntries.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.allocationEntries.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.warnings.WithLabelValues("NoSupplierFound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stockMutations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stockMutations.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reorderFlags))

	count, err := testutil.GatherAndCount(r.Registry(), "poengine_order_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RecordPurchaseOrders(1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "poengine_purchase_orders_built_total 1"))
}
