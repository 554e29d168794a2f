package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

// CatalogHeader is the required first row of a supplier catalog file
var CatalogHeader = []string{
	"supplier_id", "supplier_name", "product_id", "priority", "price", "stock_level", "lead_time_days", "minimum_order",
}

// Loader handles loading supplier catalogs from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSupplierLinks loads supplier links from a CSV file
func (l *Loader) LoadSupplierLinks(filename string) ([]*entities.SupplierLink, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadSupplierLinks(file)
}

// ReadSupplierLinks parses a catalog from any reader. Rows keep file order,
// which is the catalog order ties in priority fall back to.
func (l *Loader) ReadSupplierLinks(r io.Reader) ([]*entities.SupplierLink, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("catalog CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, CatalogHeader) {
		return nil, fmt.Errorf("catalog CSV header mismatch. Expected: %v, Got: %v", CatalogHeader, header)
	}

	links := make([]*entities.SupplierLink, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(CatalogHeader) {
			return nil, fmt.Errorf("catalog CSV row %d: expected %d columns, got %d", i+2, len(CatalogHeader), len(record))
		}

		link, err := parseSupplierLink(record)
		if err != nil {
			return nil, fmt.Errorf("catalog CSV row %d: %w", i+2, err)
		}

		links = append(links, link)
	}

	return links, nil
}

// WriteSupplierLinks writes links with CatalogHeader in the format ReadSupplierLinks accepts
func WriteSupplierLinks(w io.Writer, links []*entities.SupplierLink) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CatalogHeader); err != nil {
		return err
	}
	for _, link := range links {
		err := writer.Write([]string{
			string(link.SupplierID),
			link.SupplierName,
			string(link.ProductID),
			strconv.Itoa(link.Priority),
			link.Price.String(),
			strconv.FormatInt(int64(link.StockLevel), 10),
			strconv.Itoa(link.LeadTimeDays),
			strconv.FormatInt(int64(link.MinimumOrder), 10),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseSupplierLink(record []string) (*entities.SupplierLink, error) {
	priority, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid priority: %s", record[3])
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid price: %s", record[4])
	}

	stockLevel, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stock_level: %s", record[5])
	}

	leadTimeDays, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %s", record[6])
	}

	minimumOrder := int64(1)
	if s := strings.TrimSpace(record[7]); s != "" {
		minimumOrder, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum_order: %s", record[7])
		}
	}

	return entities.NewSupplierLink(
		entities.SupplierID(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		entities.ProductID(strings.TrimSpace(record[2])),
		priority,
		price,
		entities.Quantity(stockLevel),
		leadTimeDays,
		entities.Quantity(minimumOrder),
	)
}
