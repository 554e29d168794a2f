package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	entry := entities.AllocationEntry{SupplierID: "SUP-1", ProductID: "BOLT_M12", Quantity: 4, Price: decimal.NewFromInt(2)}
	require.NoError(t, store.AppendEvent("SUP-1", NewStockDecrementedEvent("1001", entry)))
	require.NoError(t, store.AppendEvent("SUP-1", NewStockDecrementFailedEvent("1002", entry, errors.New("insufficient stock"))))
	require.NoError(t, store.AppendEvent("SUP-2", NewStockDecrementedEvent("1003", entry)))

	stream, err := store.ReadEvents("SUP-1", 0)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 1, stream[0].Version())
	assert.Equal(t, 2, stream[1].Version())
	assert.Equal(t, StockDecrementFailedEvent, stream[1].Type())

	failed, ok := stream[1].Data().(StockDecrementFailed)
	require.True(t, ok)
	assert.Equal(t, "insufficient stock", failed.Reason)
	assert.Equal(t, "1002", failed.Order)

	fromSecond, err := store.ReadEvents("SUP-1", 2)
	require.NoError(t, err)
	assert.Len(t, fromSecond, 1)

	missing, err := store.ReadEvents("SUP-9", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)

	all, err := store.ReadAllEvents(1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Len(t, store.ReadEventsByType(StockDecrementedEvent), 2)
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	store := NewInMemoryEventStore(logger)

	var mu sync.Mutex
	var received []string
	handler := &HandlerFunc{
		Types: []string{ReorderNeededEvent},
		Fn: func(e Event) error {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, e.StreamID())
			return nil
		},
	}
	failing := &HandlerFunc{
		Types: []string{ReorderNeededEvent},
		Fn:    func(Event) error { return errors.New("boom") },
	}
	require.NoError(t, store.Subscribe([]string{ReorderNeededEvent}, handler))
	require.NoError(t, store.Subscribe([]string{ReorderNeededEvent}, failing))

	link := entities.SupplierLink{SupplierID: "SUP-1", ProductID: "BOLT_M12", StockLevel: 2}
	require.NoError(t, store.AppendEvent("SUP-1", NewReorderNeededEvent(link, 10)))
	store.Wait()

	mu.Lock()
	assert.Equal(t, []string{"SUP-1"}, received)
	mu.Unlock()

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, ReorderNeededEvent, hook.LastEntry().Data["event_type"])

	require.NoError(t, store.Unsubscribe(handler))
	require.NoError(t, store.AppendEvent("SUP-1", NewReorderNeededEvent(link, 10)))
	store.Wait()

	mu.Lock()
	assert.Len(t, received, 1)
	mu.Unlock()
}

func TestNewLineSkippedEvent(t *testing.T) {
	noSupplier := NewLineSkippedEvent(entities.Warning{Kind: entities.NoSupplierFound, OrderReference: "1001"})
	assert.Equal(t, SupplierNotFoundEvent, noSupplier.Type())
	assert.Equal(t, "1001", noSupplier.StreamID())

	invalid := NewLineSkippedEvent(entities.Warning{Kind: entities.InvalidQuantity, OrderReference: "1001"})
	assert.Equal(t, InvalidQuantityEvent, invalid.Type())
}
