package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/purchasing"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/config"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/interfaces/cli/output"
)

func reorderCommand() *cli.Command {
	return &cli.Command{
		Name:  "reorder",
		Usage: "run one reorder sweep over the supplier catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "catalog", Usage: "catalog CSV to load first (required for the memory store)"},
			&cli.StringFlag{Name: "format", Usage: "text, json or csv", Value: "text"},
			&cli.StringFlag{Name: "output", Usage: "directory for json/csv results"},
		},
		Action: func(c *cli.Context) error {
			rt := runtimeFrom(c)
			if err := loadCatalogForSweep(c, rt); err != nil {
				return err
			}

			sweep := purchasing.NewReorderSweep(rt.Catalog, rt.Policy(), rt.Events, rt.Metrics, rt.Logger)
			report, err := sweep.Run(c.Context)
			if err != nil {
				return err
			}

			return output.GenerateReorderReport(report, output.Config{
				Format:    c.String("format"),
				OutputDir: c.String("output"),
				Writer:    outWriter(c),
			})
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "run reorder sweeps on a cron schedule until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "catalog", Usage: "catalog CSV to load first (required for the memory store)"},
			&cli.StringFlag{Name: "schedule", Usage: "cron spec, overrides POENGINE_REORDER_SCHEDULE"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve prometheus metrics on this address, e.g. :9102"},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	rt := runtimeFrom(c)
	if err := loadCatalogForSweep(c, rt); err != nil {
		return err
	}

	schedule := rt.Config.ReorderSchedule
	if c.IsSet("schedule") {
		schedule = c.String("schedule")
	}

	ctx := c.Context
	sweep := purchasing.NewReorderSweep(rt.Catalog, rt.Policy(), rt.Events, rt.Metrics, rt.Logger)

	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		report, err := sweep.Run(ctx)
		if err != nil {
			rt.Logger.WithError(err).Error("reorder sweep failed")
			return
		}
		if err := output.GenerateReorderReport(report, output.Config{Format: "text", Writer: outWriter(c)}); err != nil {
			rt.Logger.WithError(err).Error("failed to render reorder report")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	if addr := c.String("metrics-addr"); addr != "" {
		server := &http.Server{Addr: addr, Handler: rt.Metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.Logger.WithError(err).Error("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	scheduler.Start()
	rt.Logger.WithField("schedule", schedule).Info("reorder watch started")

	<-ctx.Done()
	<-scheduler.Stop().Done()
	rt.Logger.Info("reorder watch stopped")
	return nil
}

func loadCatalogForSweep(c *cli.Context, rt *Runtime) error {
	if c.IsSet("catalog") {
		if _, err := rt.LoadCatalogFile(c.Context, c.String("catalog")); err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}
		return nil
	}
	if rt.Config.Store == config.StoreMemory {
		return fmt.Errorf("--catalog is required with the memory store")
	}
	return nil
}
