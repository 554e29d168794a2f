package purchasing

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/events"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/metrics"
	testhelpers "github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/testing"
)

func TestReorderSweep_FlagsLowStock(t *testing.T) {
	catalog := testhelpers.BuildFastenerCatalog()
	store := events.NewInMemoryEventStore(nil)
	logger, _ := logtest.NewNullLogger()
	sweep := NewReorderSweep(catalog, allocation.DefaultPolicy(), store, metrics.NewRecorder(), logger)

	report, err := sweep.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, report.Checked)
	var flagged []string
	for _, f := range report.Flags {
		flagged = append(flagged, string(f.SupplierID)+"/"+string(f.ProductID))
		assert.Equal(t, entities.Quantity(allocation.DefaultReorderQuantity), f.ReorderAmount)
	}
	assert.Equal(t, []string{"SUP-0012/WASHER_M12", "SUP-0031/WASHER_M12", "SUP-0031/GASKET_40"}, flagged)
	assert.Len(t, store.ReadEventsByType(events.ReorderNeededEvent), 3)
}

func TestReorderSweep_AfterAllocation(t *testing.T) {
	catalog := testhelpers.BuildFastenerCatalog()
	logger, _ := logtest.NewNullLogger()
	policy := allocation.Policy{BackorderPenaltyDays: 14, ReorderPoint: 0, ReorderQuantity: 25}

	_, err := newTestBuilder(catalog).BuildPurchaseOrders(context.Background(), testhelpers.Order("R1",
		testhelpers.LineItem("BOLT_M12", 8),
	))
	require.NoError(t, err)

	report, err := NewReorderSweep(catalog, policy, nil, nil, logger).Run(context.Background())
	require.NoError(t, err)

	// washers were never stocked; the bolt link was just drained
	require.Len(t, report.Flags, 3)
	assert.Equal(t, entities.SupplierID("SUP-0007"), report.Flags[0].SupplierID)
	assert.Equal(t, entities.ProductID("BOLT_M12"), report.Flags[0].ProductID)
	assert.Equal(t, entities.Quantity(25), report.Flags[0].ReorderAmount)
}

func TestReorderSweep_CatalogError(t *testing.T) {
	_, err := NewReorderSweep(failingCatalog{}, allocation.DefaultPolicy(), nil, nil, nil).Run(context.Background())
	assert.Error(t, err)
}
