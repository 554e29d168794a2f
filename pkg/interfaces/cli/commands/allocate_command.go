package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/allocation"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/purchasing"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/config"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/yaml"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/interfaces/cli/output"
)

func allocateCommand() *cli.Command {
	return &cli.Command{
		Name:  "allocate",
		Usage: "build purchase orders for every sales order in an orders file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "orders", Usage: "orders YAML file", Required: true},
			&cli.StringFlag{Name: "catalog", Usage: "catalog CSV to load before allocating (required for the memory store)"},
			&cli.StringFlag{Name: "format", Usage: "text, json or csv", Value: "text"},
			&cli.StringFlag{Name: "output", Usage: "directory for json/csv results"},
			&cli.IntFlag{Name: "concurrency", Usage: "orders processed in parallel, overrides POENGINE_CONCURRENCY"},
			&cli.BoolFlag{Name: "single-source", Usage: "send each line to one supplier instead of splitting it"},
			&cli.BoolFlag{Name: "verbose", Usage: "print PO items"},
		},
		Action: runAllocate,
	}
}

func runAllocate(c *cli.Context) error {
	ctx := c.Context
	rt := runtimeFrom(c)

	if c.IsSet("catalog") {
		if _, err := rt.LoadCatalogFile(ctx, c.String("catalog")); err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}
	} else if rt.Config.Store == config.StoreMemory {
		return fmt.Errorf("--catalog is required with the memory store")
	}

	orders, err := yaml.NewOrderSource(c.String("orders")).GetOrders(ctx)
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}

	concurrency := rt.Config.Concurrency
	if c.IsSet("concurrency") {
		concurrency = c.Int("concurrency")
	}

	builderConfig := rt.BuilderConfig()
	if c.Bool("single-source") {
		opts := allocation.DefaultSelectionOptions()
		builderConfig.SingleSource = &opts
	}

	processor := purchasing.NewOrderProcessor(rt.Builder(builderConfig), rt.PurchaseOrders, concurrency, rt.Logger)

	startTime := time.Now()
	batch, err := processor.ProcessOrders(ctx, orders)
	if err != nil {
		return fmt.Errorf("error building purchase orders: %w", err)
	}
	buildTime := time.Since(startTime)

	rt.Logger.WithFields(logrus.Fields{
		"orders":   len(orders),
		"duration": buildTime,
	}).Debug("allocation finished")

	return output.Generate(batch, output.Config{
		Format:    c.String("format"),
		OutputDir: c.String("output"),
		Verbose:   c.Bool("verbose"),
		BuildTime: buildTime,
		Writer:    outWriter(c),
	})
}
