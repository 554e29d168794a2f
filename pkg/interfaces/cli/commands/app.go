package commands

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/config"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/logging"
)

const (
	runtimeKey = "runtime"
	loggerKey  = "logger"
)

// NewApp builds the poengine command line application
func NewApp() *cli.App {
	return &cli.App{
		Name:  "poengine",
		Usage: "allocate sales orders across suppliers and consolidate purchase orders",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "env-file", Usage: "load environment from these files instead of ./.env"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides POENGINE_LOG_LEVEL"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json, overrides POENGINE_LOG_FORMAT"},
			&cli.StringFlag{Name: "store", Usage: "memory, sqlite or mysql, overrides POENGINE_STORE"},
			&cli.StringFlag{Name: "dsn", Usage: "database DSN, overrides POENGINE_DATABASE_DSN"},
			&cli.StringFlag{Name: "redis-addr", Usage: "enables the redis product lock, overrides POENGINE_REDIS_ADDR"},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			allocateCommand(),
			reorderCommand(),
			watchCommand(),
			importCatalogCommand(),
			generateCommand(),
		},
	}
}

// setup loads configuration, applies flag overrides and opens the runtime
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.StringSlice("env-file")...)
	if err != nil {
		return err
	}
	applyFlagOverrides(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewWithOutput(cfg.LogLevel, cfg.LogFormat, errWriter(c))
	if err != nil {
		return err
	}

	c.App.Metadata = map[string]interface{}{loggerKey: logger}

	// generate only writes files; it needs no stores
	if c.Args().First() == "generate" {
		return nil
	}

	rt, err := NewRuntime(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	return nil
}

func teardown(c *cli.Context) error {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt.Close()
	}
	return nil
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("dsn") {
		cfg.DatabaseDSN = c.String("dsn")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
}

func runtimeFrom(c *cli.Context) *Runtime {
	return c.App.Metadata[runtimeKey].(*Runtime)
}

func outWriter(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// loggerFrom returns the configured logger, or the standard logger before setup ran
func loggerFrom(c *cli.Context) logrus.FieldLogger {
	if logger, ok := c.App.Metadata[loggerKey].(logrus.FieldLogger); ok {
		return logger
	}
	return logrus.StandardLogger()
}
