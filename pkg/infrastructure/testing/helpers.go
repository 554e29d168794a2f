package testing

import (
	"github.com/shopspring/decimal"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/infrastructure/repositories/memory"
)

// SampleAddress is the shipping address used by fixture orders
var SampleAddress = entities.Address{
	Name:     "Receiving Dock",
	Company:  "Northwind Fabrication",
	Address1: "14 Foundry Road",
	City:     "Pretoria",
	Province: "Gauteng",
	Zip:      "0001",
	Country:  "ZA",
	Phone:    "+27 12 555 0100",
}

// Link builds a supplier link without validation, for table setups
func Link(supplierID, productID string, priority int, price string, stock entities.Quantity, leadTime int) entities.SupplierLink {
	return entities.SupplierLink{
		SupplierID:   entities.SupplierID(supplierID),
		SupplierName: "Supplier " + supplierID,
		ProductID:    entities.ProductID(productID),
		Priority:     priority,
		Price:        decimal.RequireFromString(price),
		StockLevel:   stock,
		LeadTimeDays: leadTime,
		MinimumOrder: 1,
	}
}

// FastenerCatalogLinks returns the links of the fastener scenario:
//
//	BOLT_M12:   SUP-0007 (prio 1, 8 in stock, 3 days), SUP-0012 (prio 2, 15 in stock, 5 days)
//	NUT_M12:    SUP-0007 (prio 1, 100 in stock, 3 days)
//	WASHER_M12: SUP-0012 (prio 1, 0 in stock, 5 days), SUP-0031 (prio 2, 0 in stock, 10 days)
//	GASKET_40:  SUP-0031 (prio 1, 2 in stock, 10 days)
func FastenerCatalogLinks() []entities.SupplierLink {
	return []entities.SupplierLink{
		Link("SUP-0007", "BOLT_M12", 1, "1.25", 8, 3),
		Link("SUP-0012", "BOLT_M12", 2, "1.40", 15, 5),
		Link("SUP-0007", "NUT_M12", 1, "0.30", 100, 3),
		Link("SUP-0012", "WASHER_M12", 1, "0.10", 0, 5),
		Link("SUP-0031", "WASHER_M12", 2, "0.08", 0, 10),
		Link("SUP-0031", "GASKET_40", 1, "4.75", 2, 10),
	}
}

// BuildFastenerCatalog loads FastenerCatalogLinks into a fresh in-memory catalog
func BuildFastenerCatalog() *memory.SupplierCatalog {
	links := FastenerCatalogLinks()
	catalog := memory.NewSupplierCatalog(len(links))
	for _, l := range links {
		if err := catalog.AddSupplierLink(l); err != nil {
			panic(err)
		}
	}
	return catalog
}

// LineItem builds an order line without validation so invalid quantities can be exercised
func LineItem(productID string, quantity entities.Quantity) entities.OrderLineItem {
	return entities.OrderLineItem{
		ProductID: entities.ProductID(productID),
		Title:     productID,
		Quantity:  quantity,
		VariantID: "var-" + productID,
	}
}

// Order builds a sales order for the sample address
func Order(reference string, lines ...entities.OrderLineItem) *entities.SalesOrder {
	return &entities.SalesOrder{
		Reference:       reference,
		LineItems:       lines,
		ShippingAddress: SampleAddress,
	}
}
