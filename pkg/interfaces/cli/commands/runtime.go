package commands

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/purchasing"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/config"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/events"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/locking"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/metrics"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/csv"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/memory"
	sqlstore "github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/sql"
)

// Runtime wires the configured stores, locker and observers for one CLI run
type Runtime struct {
	Config         *config.Config
	Logger         logrus.FieldLogger
	Catalog        repositories.SupplierStore
	PurchaseOrders repositories.PurchaseOrderRepository
	Locker         locking.Locker
	Events         *events.InMemoryEventStore
	Metrics        *metrics.Recorder

	closers []func() error
}

// NewRuntime opens the backends named by cfg
func NewRuntime(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Runtime, error) {
	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Events:  events.NewInMemoryEventStore(logger),
		Metrics: metrics.NewRecorder(),
	}

	if err := rt.openStore(); err != nil {
		return nil, err
	}
	if err := rt.openLocker(ctx); err != nil {
		rt.Close()
		return nil, err
	}

	err := rt.Events.Subscribe(events.PurchasingEventTypes, &events.HandlerFunc{
		Types: events.PurchasingEventTypes,
		Fn: func(event events.Event) error {
			logger.WithFields(logrus.Fields{
				"event_type": event.Type(),
				"stream":     event.StreamID(),
			}).Debug("event")
			return nil
		},
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	return rt, nil
}

func (rt *Runtime) openStore() error {
	switch rt.Config.Store {
	case config.StoreMemory:
		catalog := memory.NewSupplierCatalog(0)
		rt.Catalog = catalog
		rt.PurchaseOrders = memory.NewPurchaseOrderRepository()
		return nil
	case config.StoreSQLite, config.StoreMySQL:
		db, err := sqlstore.Open(rt.Config.Store, rt.Config.DatabaseDSN, rt.Logger)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return errors.Wrap(err, "failed to access connection pool")
		}
		rt.closers = append(rt.closers, sqlDB.Close)
		rt.Catalog = sqlstore.NewSupplierStore(db)
		rt.PurchaseOrders = sqlstore.NewPurchaseOrderRepository(db)
		return nil
	default:
		return errors.Errorf("unsupported store %q", rt.Config.Store)
	}
}

func (rt *Runtime) openLocker(ctx context.Context) error {
	if rt.Config.RedisAddr == "" {
		rt.Locker = locking.NewKeyedMutex()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rt.Config.RedisAddr,
		Password: rt.Config.RedisPassword,
	})
	rt.closers = append(rt.closers, client.Close)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return errors.Wrapf(err, "redis at %s is unreachable", rt.Config.RedisAddr)
	}

	rt.Locker = locking.NewRedisLocker(client, rt.Config.LockTTL, rt.Logger)
	return nil
}

// Policy maps the configured constants onto the allocation policy
func (rt *Runtime) Policy() allocation.Policy {
	return allocation.Policy{
		BackorderPenaltyDays: rt.Config.BackorderPenaltyDays,
		ReorderPoint:         rt.Config.ReorderPoint,
		ReorderQuantity:      rt.Config.ReorderQuantity,
	}
}

// BuilderConfig wires the runtime's collaborators into a builder configuration
func (rt *Runtime) BuilderConfig() purchasing.BuilderConfig {
	return purchasing.BuilderConfig{
		Policy:  rt.Policy(),
		Logger:  rt.Logger,
		Events:  rt.Events,
		Metrics: rt.Metrics,
		Locker:  rt.Locker,
		Clock:   time.Now,
	}
}

// Builder creates a purchase order builder over the runtime's stores
func (rt *Runtime) Builder(config purchasing.BuilderConfig) *purchasing.PurchaseOrderBuilder {
	return purchasing.NewPurchaseOrderBuilderWithConfig(rt.Catalog, rt.Catalog, config)
}

// LoadCatalogFile reads a catalog CSV into the configured store
func (rt *Runtime) LoadCatalogFile(ctx context.Context, path string) (int, error) {
	links, err := csv.NewLoader().LoadSupplierLinks(path)
	if err != nil {
		return 0, err
	}
	if err := rt.Catalog.LoadSupplierLinks(ctx, links); err != nil {
		return 0, err
	}

	rt.Logger.WithFields(logrus.Fields{
		"file":  path,
		"links": len(links),
		"store": rt.Config.Store,
	}).Info("loaded supplier catalog")
	return len(links), nil
}

// CatalogSize counts the links currently in the store
func (rt *Runtime) CatalogSize(ctx context.Context) (int, error) {
	links, err := rt.Catalog.GetAllSupplierLinks(ctx)
	return len(links), err
}

// Close waits for event handlers and releases connections
func (rt *Runtime) Close() error {
	rt.Events.Wait()

	var firstErr error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	rt.closers = nil
	return firstErr
}
