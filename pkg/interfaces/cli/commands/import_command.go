package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/config"
)

func importCatalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "import-catalog",
		Usage: "upsert a catalog CSV into the SQL store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "catalog", Usage: "catalog CSV file", Required: true},
		},
		Action: func(c *cli.Context) error {
			rt := runtimeFrom(c)
			if rt.Config.Store == config.StoreMemory {
				return fmt.Errorf("import-catalog needs --store sqlite or mysql")
			}

			loaded, err := rt.LoadCatalogFile(c.Context, c.String("catalog"))
			if err != nil {
				return err
			}
			total, err := rt.CatalogSize(c.Context)
			if err != nil {
				return err
			}

			fmt.Fprintf(outWriter(c), "Imported %d supplier links (%d in catalog)\n", loaded, total)
			return nil
		},
	}
}
