package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/services/purchasing"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	catalog := memory.NewSupplierCatalog(4)
	setupFastenerCatalog(catalog)

	builder := purchasing.NewPurchaseOrderBuilderWithConfig(catalog, catalog, purchasing.BuilderConfig{
		Logger: logrus.New(),
	})

	bolts, _ := entities.NewOrderLineItem("BOLT_M12", "Hex bolt M12x40", 10, "BOLT_M12-ZP")
	nuts, _ := entities.NewOrderLineItem("NUT_M12", "Hex nut M12", 20, "NUT_M12-ZP")
	washers, _ := entities.NewOrderLineItem("WASHER_M12", "Flat washer M12", 5, "")

	order, err := entities.NewSalesOrder("1001", []entities.OrderLineItem{*bolts, *nuts, *washers}, entities.Address{
		Name:     "Receiving Dock",
		Company:  "Northwind Fabrication",
		Address1: "14 Foundry Road",
		City:     "Pretoria",
		Country:  "ZA",
	})
	if err != nil {
		fmt.Printf("invalid order: %v\n", err)
		return
	}

	result, err := builder.BuildPurchaseOrders(ctx, order)
	if err != nil {
		fmt.Printf("build failed: %v\n", err)
		return
	}

	fmt.Printf("Sales order %s -> %d purchase orders\n\n", order.Reference, len(result.PurchaseOrders))
	for _, po := range result.PurchaseOrders {
		fmt.Printf("%s  %s  total %s  required by %s\n",
			po.PONumber, po.SupplierName, po.Total.StringFixed(2), po.RequiredBy.Format("2006-01-02"))
		for _, item := range po.Items {
			backorder := ""
			if item.IsBackorder {
				backorder = " (backorder)"
			}
			fmt.Printf("    %-12s x%-4d @ %s%s\n", item.ProductID, item.Quantity, item.Price.StringFixed(2), backorder)
		}
	}

	for _, line := range result.Lines {
		if line.LeadTime != nil {
			fmt.Printf("\n%s arrives in %d-%d days", line.LineItem.ProductID, line.LeadTime.MinDays, line.LeadTime.MaxDays)
		}
	}
	fmt.Println()

	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func setupFastenerCatalog(catalog *memory.SupplierCatalog) {
	links := []struct {
		supplier, name, product string
		priority                int
		price                   string
		stock                   entities.Quantity
		leadTime                int
	}{
		{"SUP-0007", "Acme Fasteners", "BOLT_M12", 1, "1.25", 8, 3},
		{"SUP-0012", "Bolt Brothers", "BOLT_M12", 2, "1.40", 15, 5},
		{"SUP-0007", "Acme Fasteners", "NUT_M12", 1, "0.30", 100, 3},
		{"SUP-0012", "Bolt Brothers", "WASHER_M12", 1, "0.10", 0, 5},
	}

	for _, l := range links {
		link, err := entities.NewSupplierLink(
			entities.SupplierID(l.supplier), l.name, entities.ProductID(l.product),
			l.priority, decimal.RequireFromString(l.price), l.stock, l.leadTime, 1,
		)
		if err != nil {
			panic(err)
		}
		if err := catalog.AddSupplierLink(*link); err != nil {
			panic(err)
		}
	}
}
