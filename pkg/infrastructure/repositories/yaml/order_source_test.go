package yaml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iconsana/price-list-generator-v2-sub000/pkg/domain/entities"
)

const sampleOrders = `
- reference: "1001"
  shipping_address:
    name: Receiving Dock
    company: Northwind Fabrication
    address1: 14 Foundry Road
    city: Pretoria
    country: ZA
  line_items:
    - product_id: BOLT_M12
      title: Hex bolt M12
      quantity: 10
      variant_id: v-100
    - product_id: NUT_M12
      quantity: 0
- reference: "1002"
  line_items:
    - product_id: GASKET_40
      quantity: 2
`

func TestOrderSource_GetOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOrders), 0o600))

	orders, err := NewOrderSource(path).GetOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "1001", first.Reference)
	assert.Equal(t, "Northwind Fabrication", first.ShippingAddress.Company)
	assert.Equal(t, "ZA", first.ShippingAddress.Country)
	require.Len(t, first.LineItems, 2)
	assert.Equal(t, entities.OrderLineItem{
		ProductID: "BOLT_M12",
		Title:     "Hex bolt M12",
		Quantity:  10,
		VariantID: "v-100",
	}, first.LineItems[0])
	assert.Equal(t, entities.Quantity(0), first.LineItems[1].Quantity, "invalid quantities are passed through")

	assert.Equal(t, "1002", orders[1].Reference)
}

func TestReadOrders_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing reference", "- line_items: []\n", "order reference cannot be empty"},
		{"missing product", "- reference: A\n  line_items:\n    - quantity: 1\n", "product id cannot be empty"},
		{"duplicate reference", "- reference: A\n- reference: A\n", "duplicate reference"},
		{"not a list", "reference: A\n", "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOrders(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadOrders_Empty(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderSource_MissingFile(t *testing.T) {
	_, err := NewOrderSource(filepath.Join(t.TempDir(), "absent.yaml")).GetOrders(context.Background())
	assert.Error(t, err)
}

func TestWriteOrders_ReadsBack(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(sampleOrders))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteOrders(&buf, orders))

	reread, err := ReadOrders(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, orders, reread)
}
