package sql

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to the database and migrates the purchasing schema.
// SQLite connections are limited to one so ":memory:" databases are shared.
func Open(driver, dsn string, logger logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	config := &gorm.Config{Logger: gormlogger.Discard}
	if logger != nil {
		config.Logger = gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", driver)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to access sqlite pool")
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the purchasing tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&supplierLinkRecord{}, &purchaseOrderRecord{}, &purchaseOrderItemRecord{}); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	return nil
}
