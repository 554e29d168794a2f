package commands

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/csv"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/yaml"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Products     int     // Number of distinct products in the catalog
	MaxSuppliers int     // Upper bound of supplier links per product
	Orders       int     // Number of sales orders to generate
	MaxLines     int     // Upper bound of line items per order
	Stock        float64 // Stock multiplier (e.g., 0.5 = half of expected demand in stock)
	OutputDir    string  // Output directory for generated files
	Seed         int64   // Random seed for reproducible generation
}

// GenerateCommand writes a synthetic catalog.csv and orders.yaml
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	logger logrus.FieldLogger
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, logger logrus.FieldLogger) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "write a synthetic catalog.csv and orders.yaml for load testing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "products", Value: 50},
			&cli.IntFlag{Name: "max-suppliers", Value: 3},
			&cli.IntFlag{Name: "orders", Value: 20},
			&cli.IntFlag{Name: "max-lines", Value: 5},
			&cli.Float64Flag{Name: "stock", Value: 1.0, Usage: "stock multiplier relative to expected demand"},
			&cli.StringFlag{Name: "output", Value: "scenario", Usage: "output directory"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 for time based"},
		},
		Action: func(c *cli.Context) error {
			return NewGenerateCommand(GenerateConfig{
				Products:     c.Int("products"),
				MaxSuppliers: c.Int("max-suppliers"),
				Orders:       c.Int("orders"),
				MaxLines:     c.Int("max-lines"),
				Stock:        c.Float64("stock"),
				OutputDir:    c.String("output"),
				Seed:         c.Int64("seed"),
			}, loggerFrom(c)).Execute()
		},
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute() error {
	if cmd.config.Products < 1 || cmd.config.MaxSuppliers < 1 || cmd.config.Orders < 0 || cmd.config.MaxLines < 1 {
		return fmt.Errorf("products, max-suppliers and max-lines must be at least 1")
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	products := cmd.generateProducts()
	orders := cmd.generateOrders(products)
	links := cmd.generateCatalog(products, orders)

	catalogPath := filepath.Join(cmd.config.OutputDir, "catalog.csv")
	if err := writeFile(catalogPath, func(f *os.File) error { return csv.WriteSupplierLinks(f, links) }); err != nil {
		return fmt.Errorf("failed to generate catalog: %w", err)
	}

	ordersPath := filepath.Join(cmd.config.OutputDir, "orders.yaml")
	if err := writeFile(ordersPath, func(f *os.File) error { return yaml.WriteOrders(f, orders) }); err != nil {
		return fmt.Errorf("failed to generate orders: %w", err)
	}

	cmd.logger.WithFields(logrus.Fields{
		"catalog": catalogPath,
		"orders":  ordersPath,
		"links":   len(links),
		"sales":   len(orders),
	}).Info("generated scenario")
	return nil
}

func (cmd *GenerateCommand) generateProducts() []entities.ProductID {
	products := make([]entities.ProductID, cmd.config.Products)
	for i := range products {
		products[i] = entities.ProductID(fmt.Sprintf("PRD-%05d", i+1))
	}
	return products
}

func (cmd *GenerateCommand) generateOrders(products []entities.ProductID) []*entities.SalesOrder {
	orders := make([]*entities.SalesOrder, 0, cmd.config.Orders)
	for i := 0; i < cmd.config.Orders; i++ {
		lineCount := 1 + cmd.rand.Intn(cmd.config.MaxLines)
		lines := make([]entities.OrderLineItem, 0, lineCount)
		for j := 0; j < lineCount; j++ {
			product := products[cmd.rand.Intn(len(products))]
			lines = append(lines, entities.OrderLineItem{
				ProductID: product,
				Title:     "Product " + string(product),
				Quantity:  entities.Quantity(1 + cmd.rand.Intn(20)),
				VariantID: fmt.Sprintf("%s-V%d", product, 1+cmd.rand.Intn(3)),
			})
		}

		orders = append(orders, &entities.SalesOrder{
			Reference:       fmt.Sprintf("%d", 10001+i),
			LineItems:       lines,
			ShippingAddress: cmd.generateAddress(),
		})
	}
	return orders
}

// generateCatalog gives each product 1..MaxSuppliers links whose combined
// stock is the product's total demand scaled by the stock multiplier
func (cmd *GenerateCommand) generateCatalog(products []entities.ProductID, orders []*entities.SalesOrder) []*entities.SupplierLink {
	demand := make(map[entities.ProductID]entities.Quantity, len(products))
	for _, order := range orders {
		for _, line := range order.LineItems {
			demand[line.ProductID] += line.Quantity
		}
	}

	supplierPool := max(cmd.config.MaxSuppliers*2, 4)

	var links []*entities.SupplierLink
	for _, product := range products {
		supplierCount := 1 + cmd.rand.Intn(cmd.config.MaxSuppliers)
		totalStock := int64(float64(demand[product]) * cmd.config.Stock)
		basePrice := decimal.NewFromInt(int64(50 + cmd.rand.Intn(5000))).Shift(-2)

		used := make(map[int]bool, supplierCount)
		for priority := 1; priority <= supplierCount; priority++ {
			supplier := cmd.rand.Intn(supplierPool)
			for used[supplier] {
				supplier = (supplier + 1) % supplierPool
			}
			used[supplier] = true

			stock := totalStock / int64(supplierCount)
			if priority == 1 {
				stock += totalStock % int64(supplierCount)
			}

			markup := decimal.NewFromInt(int64(100 + cmd.rand.Intn(30))).Shift(-2)
			links = append(links, &entities.SupplierLink{
				SupplierID:   entities.SupplierID(fmt.Sprintf("SUP-%04d", supplier+1)),
				SupplierName: fmt.Sprintf("Supplier %d", supplier+1),
				ProductID:    product,
				Priority:     priority,
				Price:        basePrice.Mul(markup).Round(2),
				StockLevel:   entities.Quantity(stock),
				LeadTimeDays: 1 + cmd.rand.Intn(21),
				MinimumOrder: 1,
			})
		}
	}
	return links
}

func (cmd *GenerateCommand) generateAddress() entities.Address {
	cities := []string{"Pretoria", "Johannesburg", "Cape Town", "Durban", "Gqeberha"}
	city := cities[cmd.rand.Intn(len(cities))]
	return entities.Address{
		Name:     "Receiving",
		Company:  fmt.Sprintf("Customer %03d", cmd.rand.Intn(1000)),
		Address1: fmt.Sprintf("%d Main Road", 1+cmd.rand.Intn(400)),
		City:     city,
		Country:  "ZA",
	}
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
