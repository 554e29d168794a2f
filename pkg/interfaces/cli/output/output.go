package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	BuildTime time.Duration
	// Writer receives stdout output; nil means os.Stdout
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate renders a batch result in the configured format
func Generate(result *dto.BatchResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return writeJSON(result, "purchase_orders.json", config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.BatchResult, config Config) error {
	w := config.writer()
	orders := result.PurchaseOrders()
	warnings := result.Warnings()

	fmt.Fprintf(w, "Purchase Order Summary\n")
	fmt.Fprintf(w, "======================\n\n")

	fmt.Fprintf(w, "Sales Orders: %d\n", len(result.Results))
	fmt.Fprintf(w, "Purchase Orders: %d\n", len(orders))
	fmt.Fprintf(w, "Warnings: %d\n", len(warnings))
	fmt.Fprintf(w, "Build Time: %v\n\n", config.BuildTime)

	if len(orders) > 0 {
		fmt.Fprintf(w, "Purchase Orders:\n")
		fmt.Fprintf(w, "%-22s %-12s %-10s %-8s %-12s %-12s %-10s\n",
			"PO Number", "Supplier", "Order", "Units", "Total", "Required By", "Backorder")
		fmt.Fprintf(w, "%-22s %-12s %-10s %-8s %-12s %-12s %-10s\n",
			"----------------------", "------------", "----------", "--------", "------------", "------------", "----------")

		for _, po := range orders {
			fmt.Fprintf(w, "%-22s %-12s %-10s %-8d %-12s %-12s %-10t\n",
				po.PONumber,
				po.SupplierID,
				po.OrderReference,
				po.TotalQuantity(),
				po.Total.StringFixed(2),
				po.RequiredBy.Format("2006-01-02"),
				po.HasBackorder())

			if config.Verbose {
				for _, item := range po.Items {
					fmt.Fprintf(w, "    %-18s x%-6d @ %-10s = %s\n",
						item.ProductID, item.Quantity, item.Price.StringFixed(2), item.LineTotal.StringFixed(2))
				}
			}
		}
		fmt.Fprintln(w)
	}

	if len(warnings) > 0 {
		fmt.Fprintf(w, "Warnings:\n")
		fmt.Fprintf(w, "%-20s %-10s %-15s %s\n", "Kind", "Order", "Product", "Message")
		fmt.Fprintf(w, "%-20s %-10s %-15s %s\n", "--------------------", "----------", "---------------", "-------")
		for _, warning := range warnings {
			fmt.Fprintf(w, "%-20s %-10s %-15s %s\n",
				warning.Kind, warning.OrderReference, warning.ProductID, warning.Message)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// GenerateReorderReport renders a reorder sweep in the configured format
func GenerateReorderReport(report *dto.ReorderReport, config Config) error {
	switch config.Format {
	case "text":
		w := config.writer()
		fmt.Fprintf(w, "Reorder sweep at %s: %d links checked, %d flagged\n",
			report.CheckedAt.Format(time.RFC3339), report.Checked, len(report.Flags))
		if len(report.Flags) > 0 {
			fmt.Fprintf(w, "%-12s %-15s %-8s %-8s\n", "Supplier", "Product", "Stock", "Reorder")
			for _, f := range report.Flags {
				fmt.Fprintf(w, "%-12s %-15s %-8d %-8d\n", f.SupplierID, f.ProductID, f.StockLevel, f.ReorderAmount)
			}
		}
		return nil
	case "json":
		return writeJSON(report, "reorder_report.json", config)
	case "csv":
		return writeCSVFile(config, "reorder_flags.csv", reorderRows(report))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeJSON(v interface{}, filename string, config Config) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "JSON results saved to: %s\n", path)
	}
	return nil
}

// generateCSVOutput writes purchase_orders.csv and warnings.csv
func generateCSVOutput(result *dto.BatchResult, config Config) error {
	if err := writeCSVFile(config, "purchase_orders.csv", purchaseOrderRows(result)); err != nil {
		return fmt.Errorf("failed to write purchase orders CSV: %w", err)
	}
	if err := writeCSVFile(config, "warnings.csv", warningRows(result)); err != nil {
		return fmt.Errorf("failed to write warnings CSV: %w", err)
	}
	return nil
}

func writeCSVFile(config Config, filename string, rows [][]string) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "CSV saved to: %s\n", path)
	}
	return nil
}

// purchaseOrderRows flattens POs to one row per item
func purchaseOrderRows(result *dto.BatchResult) [][]string {
	rows := [][]string{{
		"po_number", "supplier_id", "supplier_name", "order_reference", "status", "required_by",
		"product_id", "variant_id", "quantity", "price", "line_total", "is_backorder", "po_total",
	}}
	for _, po := range result.PurchaseOrders() {
		for _, item := range po.Items {
			rows = append(rows, []string{
				po.PONumber,
				string(po.SupplierID),
				po.SupplierName,
				po.OrderReference,
				po.Status.String(),
				po.RequiredBy.Format("2006-01-02"),
				string(item.ProductID),
				item.VariantID,
				strconv.FormatInt(int64(item.Quantity), 10),
				item.Price.String(),
				item.LineTotal.String(),
				strconv.FormatBool(item.IsBackorder),
				po.Total.String(),
			})
		}
	}
	return rows
}

func warningRows(result *dto.BatchResult) [][]string {
	rows := [][]string{{"kind", "order_reference", "product_id", "supplier_id", "message"}}
	for _, w := range result.Warnings() {
		rows = append(rows, []string{
			w.Kind.String(),
			w.OrderReference,
			string(w.ProductID),
			string(w.SupplierID),
			w.Message,
		})
	}
	return rows
}

func reorderRows(report *dto.ReorderReport) [][]string {
	rows := [][]string{{"supplier_id", "supplier_name", "product_id", "stock_level", "reorder_amount"}}
	for _, f := range report.Flags {
		rows = append(rows, []string{
			string(f.SupplierID),
			f.SupplierName,
			string(f.ProductID),
			strconv.FormatInt(int64(f.StockLevel), 10),
			strconv.FormatInt(int64(f.ReorderAmount), 10),
		})
	}
	return rows
}
