package yaml

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/repositories"
)

type orderDocument struct {
	Reference       string             `yaml:"reference"`
	ShippingAddress entities.Address   `yaml:"shipping_address"`
	LineItems       []lineItemDocument `yaml:"line_items"`
}

type lineItemDocument struct {
	ProductID string `yaml:"product_id"`
	Title     string `yaml:"title"`
	Quantity  int64  `yaml:"quantity"`
	VariantID string `yaml:"variant_id"`
}

// OrderSource reads sales orders from a YAML file holding a list of orders
type OrderSource struct {
	path string
}

func NewOrderSource(path string) *OrderSource {
	return &OrderSource{path: path}
}

var _ repositories.OrderSource = (*OrderSource)(nil)

// GetOrders reads the whole file on every call
func (s *OrderSource) GetOrders(ctx context.Context) ([]*entities.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open orders file %s", s.path)
	}
	defer file.Close()

	orders, err := ReadOrders(file)
	return orders, errors.Wrap(err, s.path)
}

// ReadOrders decodes orders from r. Line quantities are kept as given;
// non-positive quantities are reported later as warnings.
func ReadOrders(r io.Reader) ([]*entities.SalesOrder, error) {
	var documents []orderDocument
	if err := yaml.NewDecoder(r).Decode(&documents); err != nil {
		if errors.Is(err, io.EOF) {
			return []*entities.SalesOrder{}, nil
		}
		return nil, errors.Wrap(err, "failed to decode orders")
	}

	orders := make([]*entities.SalesOrder, 0, len(documents))
	seen := make(map[string]bool, len(documents))
	for i, doc := range documents {
		lines := make([]entities.OrderLineItem, 0, len(doc.LineItems))
		for j, item := range doc.LineItems {
			if item.ProductID == "" {
				return nil, errors.Errorf("order %d line %d: product id cannot be empty", i+1, j+1)
			}
			lines = append(lines, entities.OrderLineItem{
				ProductID: entities.ProductID(item.ProductID),
				Title:     item.Title,
				Quantity:  entities.Quantity(item.Quantity),
				VariantID: item.VariantID,
			})
		}

		order, err := entities.NewSalesOrder(doc.Reference, lines, doc.ShippingAddress)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d", i+1)
		}
		if seen[order.Reference] {
			return nil, errors.Errorf("order %d: duplicate reference %s", i+1, order.Reference)
		}
		seen[order.Reference] = true

		orders = append(orders, order)
	}
	return orders, nil
}

// WriteOrders encodes orders in the format ReadOrders accepts
func WriteOrders(w io.Writer, orders []*entities.SalesOrder) error {
	documents := make([]orderDocument, 0, len(orders))
	for _, order := range orders {
		doc := orderDocument{
			Reference:       order.Reference,
			ShippingAddress: order.ShippingAddress,
			LineItems:       make([]lineItemDocument, len(order.LineItems)),
		}
		for i, line := range order.LineItems {
			doc.LineItems[i] = lineItemDocument{
				ProductID: string(line.ProductID),
				Title:     line.Title,
				Quantity:  int64(line.Quantity),
				VariantID: line.VariantID,
			}
		}
		documents = append(documents, doc)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(documents); err != nil {
		return errors.Wrap(err, "failed to encode orders")
	}
	return errors.Wrap(encoder.Close(), "failed to flush orders")
}
